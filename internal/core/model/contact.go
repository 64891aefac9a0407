package model

import "time"

type Contact struct {
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CompanyUUID string    `json:"company_uuid,omitempty"`
	Role        string    `json:"role,omitempty"`
	ContactType string    `json:"contact_type,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c Contact) RecordID() string   { return c.UUID }
func (c Contact) RecordName() string { return c.Name }
func (c Contact) RecordKind() Kind   { return KindContact }
