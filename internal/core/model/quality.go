package model

// MatchField names the field a duplicate group was keyed on.
type MatchField string

const (
	MatchTaxID MatchField = "tax_id"
	MatchEmail MatchField = "email"
	MatchPhone MatchField = "phone"
	MatchName  MatchField = "name"
)

// DuplicateGroup is a set of records believed to represent the same
// real-world contact or company. Derived on every detection pass, never
// persisted. All items share the matched-field value after normalization,
// except name groups where substring containment substitutes for equality.
type DuplicateGroup struct {
	Items        []Record   `json:"items"`
	Reason       string     `json:"reason"`
	MatchedField MatchField `json:"matched_field"`
}

// Importance weights a missing field in the quality report. Only critical
// fields affect the score.
type Importance string

const (
	ImportanceCritical  Importance = "critical"
	ImportanceImportant Importance = "important"
	ImportanceOptional  Importance = "optional"
)

type MissingField struct {
	Field      string     `json:"field"`
	Label      string     `json:"label"`
	Importance Importance `json:"importance"`
}

type MissingFieldReport struct {
	Record        Record         `json:"record"`
	MissingFields []MissingField `json:"missing_fields"`
}

func (r MissingFieldReport) HasCritical() bool {
	for _, f := range r.MissingFields {
		if f.Importance == ImportanceCritical {
			return true
		}
	}
	return false
}

// QualityReport is the full data-health snapshot returned by the API.
type QualityReport struct {
	ContactGroups  []DuplicateGroup     `json:"contact_groups"`
	CompanyGroups  []DuplicateGroup     `json:"company_groups"`
	MissingReports []MissingFieldReport `json:"missing_reports"`
	Score          int                  `json:"score"`
}

// CleanupReport summarizes a bulk auto-cleanup run. FailedIDs lists records
// whose delete call failed; the run continues past them.
type CleanupReport struct {
	DeletedCount int      `json:"deleted_count"`
	FailedIDs    []string `json:"failed_ids,omitempty"`
}
