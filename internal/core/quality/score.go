package quality

import "github.com/agencyops/crmcore/internal/core/model"

// Score weights. Each record sitting in a duplicate group costs 5 points;
// each record missing a critical field costs 3.
const (
	DuplicateItemWeight   = 5
	CriticalMissingWeight = 3
)

// Score computes the data-health score in [0,100]. Empty collections score
// a vacuous 100.
func Score(totalDuplicateItems, criticalMissingCount int) int {
	score := 100 - DuplicateItemWeight*totalDuplicateItems - CriticalMissingWeight*criticalMissingCount
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ScoreReport derives the score from detector output and missing-field
// reports. Duplicate cost counts every grouped record, not the group count;
// critical cost counts records, not fields.
func ScoreReport(contactGroups, companyGroups []model.DuplicateGroup, reports []model.MissingFieldReport) int {
	totalItems := 0
	for _, g := range contactGroups {
		totalItems += len(g.Items)
	}
	for _, g := range companyGroups {
		totalItems += len(g.Items)
	}

	critical := 0
	for _, r := range reports {
		if r.HasCritical() {
			critical++
		}
	}

	return Score(totalItems, critical)
}
