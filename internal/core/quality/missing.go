package quality

import "github.com/agencyops/crmcore/internal/core/model"

// Missing-field rules. Email is the only critical field for both kinds:
// without it neither outreach nor duplicate keying works well. The rest is
// surfaced in the report but does not move the score.

func ContactMissingFields(c model.Contact) []model.MissingField {
	var missing []model.MissingField
	if c.Email == "" {
		missing = append(missing, model.MissingField{Field: "email", Label: "Email address", Importance: model.ImportanceCritical})
	}
	if c.Phone == "" {
		missing = append(missing, model.MissingField{Field: "phone", Label: "Phone number", Importance: model.ImportanceImportant})
	}
	if c.CompanyUUID == "" {
		missing = append(missing, model.MissingField{Field: "company_uuid", Label: "Company link", Importance: model.ImportanceOptional})
	}
	if c.Role == "" {
		missing = append(missing, model.MissingField{Field: "role", Label: "Role", Importance: model.ImportanceOptional})
	}
	return missing
}

func CompanyMissingFields(c model.Company) []model.MissingField {
	var missing []model.MissingField
	if c.Email == "" {
		missing = append(missing, model.MissingField{Field: "email", Label: "Email address", Importance: model.ImportanceCritical})
	}
	if c.Phone == "" {
		missing = append(missing, model.MissingField{Field: "phone", Label: "Phone number", Importance: model.ImportanceImportant})
	}
	if c.Address == "" {
		missing = append(missing, model.MissingField{Field: "address", Label: "Address", Importance: model.ImportanceImportant})
	}
	if c.Industry == "" {
		missing = append(missing, model.MissingField{Field: "industry", Label: "Industry", Importance: model.ImportanceImportant})
	}
	if c.TaxID == "" {
		missing = append(missing, model.MissingField{Field: "tax_id", Label: "SIRET", Importance: model.ImportanceImportant})
	}
	if c.City == "" {
		missing = append(missing, model.MissingField{Field: "city", Label: "City", Importance: model.ImportanceOptional})
	}
	return missing
}

// MissingReports recomputes the report list from current collections. Only
// records with at least one missing field appear.
func MissingReports(contacts []model.Contact, companies []model.Company) []model.MissingFieldReport {
	var reports []model.MissingFieldReport
	for _, c := range contacts {
		if fields := ContactMissingFields(c); len(fields) > 0 {
			reports = append(reports, model.MissingFieldReport{Record: c, MissingFields: fields})
		}
	}
	for _, c := range companies {
		if fields := CompanyMissingFields(c); len(fields) > 0 {
			reports = append(reports, model.MissingFieldReport{Record: c, MissingFields: fields})
		}
	}
	return reports
}
