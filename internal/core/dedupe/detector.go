package dedupe

import (
	"fmt"
	"strings"

	"github.com/agencyops/crmcore/internal/core/model"
)

// Pass precedence per record kind, strongest identifier first. The last
// entry is always the fuzzy name pass; the ones before it are exact-key
// passes. A record claimed by an earlier pass never reappears in a later one.
var (
	ContactPasses = []model.MatchField{model.MatchEmail, model.MatchPhone, model.MatchName}
	CompanyPasses = []model.MatchField{model.MatchTaxID, model.MatchEmail, model.MatchName}
)

// Detector groups likely-duplicate records. It is stateless; every Detect*
// call runs all passes fresh over the full collection it is given.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// DetectContacts expects the complete, unfiltered contact collection.
// Grouping order: shared email, then shared phone, then similar name.
func (d *Detector) DetectContacts(contacts []model.Contact) []model.DuplicateGroup {
	records := make([]model.Record, len(contacts))
	for i, c := range contacts {
		records[i] = c
	}
	return detect(records, ContactPasses, contactKey, true)
}

// DetectCompanies expects the complete, unfiltered company collection.
// Grouping order: shared tax id, then shared email, then identical name.
func (d *Detector) DetectCompanies(companies []model.Company) []model.DuplicateGroup {
	records := make([]model.Record, len(companies))
	for i, c := range companies {
		records[i] = c
	}
	return detect(records, CompanyPasses, companyKey, false)
}

func contactKey(field model.MatchField, r model.Record) string {
	c, ok := r.(model.Contact)
	if !ok {
		return ""
	}
	switch field {
	case model.MatchEmail:
		return NormalizeEmail(c.Email)
	case model.MatchPhone:
		return NormalizePhone(c.Phone)
	}
	return ""
}

func companyKey(field model.MatchField, r model.Record) string {
	c, ok := r.(model.Company)
	if !ok {
		return ""
	}
	switch field {
	case model.MatchTaxID:
		return NormalizeTaxID(c.TaxID)
	case model.MatchEmail:
		return NormalizeEmail(c.Email)
	}
	return ""
}

type keyFunc func(model.MatchField, model.Record) string

func detect(records []model.Record, passes []model.MatchField, key keyFunc, substringNames bool) []model.DuplicateGroup {
	// Processed set: once a record is claimed by a group it is excluded
	// from every later, looser check.
	processed := make(map[string]bool)
	var groups []model.DuplicateGroup

	for _, field := range passes[:len(passes)-1] {
		groups = append(groups, exactPass(records, field, key, processed)...)
	}
	groups = append(groups, fuzzyNamePass(records, processed, substringNames)...)

	return groups
}

// exactPass buckets unclaimed records by normalized key and turns every
// bucket of two or more into a group. Records with an empty key are simply
// skipped, never excluded from later passes.
func exactPass(records []model.Record, field model.MatchField, key keyFunc, processed map[string]bool) []model.DuplicateGroup {
	buckets := make(map[string][]model.Record)
	var order []string

	for _, r := range records {
		if processed[r.RecordID()] {
			continue
		}
		k := key(field, r)
		if k == "" {
			continue
		}
		if _, seen := buckets[k]; !seen {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], r)
	}

	var groups []model.DuplicateGroup
	for _, k := range order {
		items := buckets[k]
		if len(items) < 2 {
			continue
		}
		for _, r := range items {
			processed[r.RecordID()] = true
		}
		groups = append(groups, model.DuplicateGroup{
			Items:        items,
			Reason:       fmt.Sprintf("%d records share the same %s (%s)", len(items), fieldLabel(field), k),
			MatchedField: field,
		})
	}
	return groups
}

// fuzzyNamePass pairs remaining records whose normalized names are equal,
// or (contacts only) where one name contains the other and both exceed five
// characters. First match wins: each record is claimed as soon as it is
// paired, so transitively similar triples produce at most one pair and the
// leftover record stays unflagged. Known limitation, kept on purpose.
func fuzzyNamePass(records []model.Record, processed map[string]bool, substringNames bool) []model.DuplicateGroup {
	var groups []model.DuplicateGroup

	for i := 0; i < len(records); i++ {
		if processed[records[i].RecordID()] {
			continue
		}
		a := NormalizeName(records[i].RecordName())
		if a == "" {
			continue
		}
		for j := i + 1; j < len(records); j++ {
			if processed[records[j].RecordID()] {
				continue
			}
			b := NormalizeName(records[j].RecordName())
			if b == "" {
				continue
			}
			if !namesMatch(a, b, substringNames) {
				continue
			}
			processed[records[i].RecordID()] = true
			processed[records[j].RecordID()] = true
			groups = append(groups, model.DuplicateGroup{
				Items:        []model.Record{records[i], records[j]},
				Reason:       fmt.Sprintf("similar names: %q / %q", records[i].RecordName(), records[j].RecordName()),
				MatchedField: model.MatchName,
			})
			break
		}
	}
	return groups
}

func namesMatch(a, b string, substring bool) bool {
	if a == b {
		return true
	}
	if !substring {
		return false
	}
	if len(a) <= 5 || len(b) <= 5 {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func fieldLabel(field model.MatchField) string {
	switch field {
	case model.MatchTaxID:
		return "tax ID"
	case model.MatchEmail:
		return "email"
	case model.MatchPhone:
		return "phone number"
	case model.MatchName:
		return "name"
	}
	return string(field)
}
