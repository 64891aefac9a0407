package core

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agencyops/crmcore/internal/core/model"
)

// Record value accessors. The driver hands values back as interface{} and
// absent properties come back nil; everything funnels through these.

func recString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recFloat(rec *neo4j.Record, key string) float64 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func recStrings(rec *neo4j.Record, key string) []string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func contactFromRecord(rec *neo4j.Record) model.Contact {
	return model.Contact{
		UUID:        recString(rec, "uuid"),
		Name:        recString(rec, "name"),
		Email:       recString(rec, "email"),
		Phone:       recString(rec, "phone"),
		CompanyUUID: recString(rec, "company_uuid"),
		Role:        recString(rec, "role"),
		ContactType: recString(rec, "contact_type"),
		AvatarURL:   recString(rec, "avatar_url"),
	}
}

func companyFromRecord(rec *neo4j.Record) model.Company {
	return model.Company{
		UUID:           recString(rec, "uuid"),
		Name:           recString(rec, "name"),
		Email:          recString(rec, "email"),
		Phone:          recString(rec, "phone"),
		Address:        recString(rec, "address"),
		City:           recString(rec, "city"),
		Industry:       recString(rec, "industry"),
		TaxID:          recString(rec, "tax_id"),
		BETSpecialties: recStrings(rec, "bet_specialties"),
	}
}

func leadFromRecord(rec *neo4j.Record) model.Lead {
	return model.Lead{
		UUID:        recString(rec, "uuid"),
		Title:       recString(rec, "title"),
		ContactUUID: recString(rec, "contact_uuid"),
		CompanyUUID: recString(rec, "company_uuid"),
		Amount:      recFloat(rec, "amount"),
		Stage:       recString(rec, "stage"),
		Notes:       recString(rec, "notes"),
	}
}
