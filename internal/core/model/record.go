package model

// Kind discriminates the two identity record types the quality subsystem
// operates on. Code switching on Kind must handle both values.
type Kind string

const (
	KindContact Kind = "contact"
	KindCompany Kind = "company"
)

// Record is the tagged view of a Contact or Company used by the duplicate
// detector and the cleanup executor. Implementations return their stable id,
// display name and kind; field access beyond that goes through a type switch.
type Record interface {
	RecordID() string
	RecordName() string
	RecordKind() Kind
}
