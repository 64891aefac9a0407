package model

// ExtractedLead is the JSON shape the intake prompt asks the LLM for.
type ExtractedLead struct {
	Title        string  `json:"title"`
	ContactName  string  `json:"contact_name"`
	ContactEmail string  `json:"contact_email,omitempty"`
	ContactPhone string  `json:"contact_phone,omitempty"`
	CompanyName  string  `json:"company_name,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// EmailDraft is the JSON shape the follow-up email prompt asks the LLM for.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
