package models

import "time"

// Complaint aggregate statuses. The stored column is written at intake and
// on slot transitions, but readers re-derive it from slot state.
const (
	ComplaintDispatched = "dispatched"
	ComplaintResolved   = "resolved"
)

// Complaint is a single incident report. Created once at intake and
// immutable afterwards except for the derived aggregate status.
type Complaint struct {
	ID      string `gorm:"primaryKey;size:32"`
	PhoneNo string `gorm:"size:32;not null"`
	Name    string `gorm:"size:128"`
	// Type is the abuse-type label supplied by the reporter. The dispatch
	// core echoes it without constraining the set.
	Type        string `gorm:"size:32;not null"`
	Description string `gorm:"type:text"`
	// Location is the incident coordinate as "lat,lon" decimal degrees.
	Location   string `gorm:"size:64;not null"`
	Status     string `gorm:"size:16;default:dispatched;index"`
	ReportedAt time.Time

	Dispatches []DispatchRecord `gorm:"foreignKey:ComplaintID"`
}
