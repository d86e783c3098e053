package models

import "time"

// Volunteer categories. Closed set: every volunteer holds exactly one,
// fixed at creation.
const (
	CategoryLegal  = "legal"
	CategoryPolice = "police"
	CategoryMental = "mental"
)

// Categories lists all volunteer categories in dispatch order.
var Categories = []string{CategoryLegal, CategoryPolice, CategoryMental}

// Volunteer activation states.
const (
	VolunteerPending   = "pending"
	VolunteerEmailSent = "email_sent"
	VolunteerActive    = "active"
	VolunteerBanned    = "banned"
)

// Volunteer is a registered responder in one support category. Registration
// and approval happen outside this system; the dispatch core only reads
// volunteers, filtered to active ones.
type Volunteer struct {
	ID       string `gorm:"primaryKey;size:32"`
	Name     string `gorm:"size:128;not null"`
	Email    string `gorm:"size:128"`
	Category string `gorm:"size:16;not null;index"`
	Status   string `gorm:"size:16;default:pending;index"`
	// Location is the last-known coordinate as "lat,lon" decimal degrees.
	Location  string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidCategory reports whether c is a member of the closed category set.
func ValidCategory(c string) bool {
	switch c {
	case CategoryLegal, CategoryPolice, CategoryMental:
		return true
	}
	return false
}
