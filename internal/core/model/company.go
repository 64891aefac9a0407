package model

import "time"

// Industry codes follow the source CRM's category vocabulary. BET is a
// technical design office (bureau d'études techniques); only BET companies
// carry specialty codes.
const (
	IndustryArchitecture = "architecture"
	IndustryBET          = "bet"
	IndustryConstruction = "construction"
	IndustryPromotion    = "promotion"
	IndustryOther        = "other"
)

type Company struct {
	UUID           string    `json:"uuid"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	Industry       string    `json:"industry,omitempty"`
	TaxID          string    `json:"tax_id,omitempty"` // SIRET
	BETSpecialties []string  `json:"bet_specialties,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c Company) RecordID() string   { return c.UUID }
func (c Company) RecordName() string { return c.Name }
func (c Company) RecordKind() Kind   { return KindCompany }
