package models

import "time"

// Per-slot lifecycle statuses. A slot moves forward only:
// auto_dispatched → in_progress → resolved, with in_progress skippable.
// Slots whose category had no active volunteer at dispatch time are
// permanently unassigned.
const (
	SlotAutoDispatched = "auto_dispatched"
	SlotInProgress     = "in_progress"
	SlotResolved       = "resolved"
	SlotUnassigned     = "unassigned"
)

// DispatchRecord binds one complaint to up to three volunteer assignments,
// one per category. The record itself is immutable after creation; only
// slot statuses change.
type DispatchRecord struct {
	ID          string `gorm:"primaryKey;size:32"`
	ComplaintID string `gorm:"size:32;not null;index"`
	CreatedAt   time.Time

	Complaint Complaint      `gorm:"foreignKey:ComplaintID"`
	Slots     []DispatchSlot `gorm:"foreignKey:DispatchID"`
}

// DispatchSlot is one role-slot of a dispatch record: the assignment for a
// single category. VolunteerID is nil when no active volunteer of that
// category existed at dispatch time; such a slot never transitions.
type DispatchSlot struct {
	DispatchID  string  `gorm:"primaryKey;size:32"`
	Category    string  `gorm:"primaryKey;size:16"`
	VolunteerID *string `gorm:"size:32;index"`
	Status      string  `gorm:"size:16;not null"`
	UpdatedAt   time.Time

	Dispatch  DispatchRecord `gorm:"foreignKey:DispatchID"`
	Volunteer *Volunteer     `gorm:"foreignKey:VolunteerID"`
}

// Assigned reports whether the slot references a volunteer.
func (s DispatchSlot) Assigned() bool {
	return s.VolunteerID != nil
}

// Terminal reports whether the slot can never transition again.
func (s DispatchSlot) Terminal() bool {
	return !s.Assigned() || s.Status == SlotResolved
}

// Slot returns the role-slot for the given category, or nil if the record
// carries no slot for it.
func (r *DispatchRecord) Slot(category string) *DispatchSlot {
	for i := range r.Slots {
		if r.Slots[i].Category == category {
			return &r.Slots[i]
		}
	}
	return nil
}

// AggregateStatus derives the complaint-level status from slot state: the
// complaint is resolved only when every assigned slot is resolved. A record
// with no assigned slots stays dispatched; there is nobody to resolve it.
func (r *DispatchRecord) AggregateStatus() string {
	assigned := 0
	for _, s := range r.Slots {
		if !s.Assigned() {
			continue
		}
		assigned++
		if s.Status != SlotResolved {
			return ComplaintDispatched
		}
	}
	if assigned == 0 {
		return ComplaintDispatched
	}
	return ComplaintResolved
}
