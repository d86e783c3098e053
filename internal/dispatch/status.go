package dispatch

import (
	"fmt"

	"github.com/arjunvn/sahaya/internal/faults"
	"github.com/arjunvn/sahaya/internal/models"
	"github.com/arjunvn/sahaya/internal/volunteer"
	"gorm.io/gorm"
)

// UpdateOpts holds parameters for a volunteer status update. VolunteerID is
// the verified caller identity supplied by the auth collaborator; the
// volunteer's category scopes the update to their own role-slot.
// DispatchID is optional: without it the volunteer's single non-terminal
// assignment is used, and holding more than one is an error rather than a
// guess.
type UpdateOpts struct {
	VolunteerID string
	DispatchID  string
	To          string
}

// UpdateStatus advances the caller's role-slot to opts.To. Only forward
// lifecycle moves are allowed, the other two slots are untouched, and the
// complaint's aggregate status is recomputed in the same transaction. The
// slot's current status guards the UPDATE, so a concurrent double-submit
// loses cleanly instead of silently overwriting.
func UpdateStatus(db *gorm.DB, opts UpdateOpts) (*models.DispatchRecord, error) {
	if !ValidSlotStatus(opts.To) {
		return nil, fmt.Errorf("dispatch: status %q is not in the slot lifecycle: %w", opts.To, faults.ErrValidation)
	}

	v, err := volunteer.Get(db, opts.VolunteerID)
	if err != nil {
		return nil, err
	}

	var dispatchID string

	err = db.Transaction(func(tx *gorm.DB) error {
		slot, err := resolveSlot(tx, v, opts.DispatchID)
		if err != nil {
			return err
		}
		dispatchID = slot.DispatchID

		if !isValidTransition(slot.Status, opts.To) {
			return fmt.Errorf("dispatch: slot %s/%s cannot move %s → %s: %w",
				slot.DispatchID, slot.Category, slot.Status, opts.To, faults.ErrConflict)
		}

		result := tx.Model(&models.DispatchSlot{}).
			Where("dispatch_id = ? AND category = ? AND volunteer_id = ? AND status = ?",
				slot.DispatchID, slot.Category, v.ID, slot.Status).
			Update("status", opts.To)
		if result.Error != nil {
			return fmt.Errorf("dispatch: update slot: %w: %w", faults.ErrStorage, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("dispatch: slot %s/%s changed concurrently: %w",
				slot.DispatchID, slot.Category, faults.ErrConflict)
		}

		return recomputeAggregate(tx, slot.DispatchID)
	})
	if err != nil {
		return nil, err
	}

	return Get(db, dispatchID)
}

// resolveSlot finds the caller's role-slot. With an explicit dispatch ID
// the slot is addressed directly; otherwise the volunteer must hold exactly
// one non-terminal assignment.
func resolveSlot(tx *gorm.DB, v *models.Volunteer, dispatchID string) (*models.DispatchSlot, error) {
	q := tx.Model(&models.DispatchSlot{}).
		Where("volunteer_id = ? AND category = ?", v.ID, v.Category)
	if dispatchID != "" {
		q = q.Where("dispatch_id = ?", dispatchID)
	}

	var slots []models.DispatchSlot
	if err := q.Order("dispatch_id ASC").Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("dispatch: find assignment for %s: %w: %w", v.ID, faults.ErrStorage, err)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("dispatch: no assignment for volunteer %s: %w", v.ID, faults.ErrNotFound)
	}

	open := slots[:0]
	for _, s := range slots {
		if s.Status != models.SlotResolved {
			open = append(open, s)
		}
	}
	if len(open) == 0 {
		return nil, fmt.Errorf("dispatch: no active assignment for volunteer %s: %w", v.ID, faults.ErrConflict)
	}
	if len(open) > 1 {
		return nil, fmt.Errorf("dispatch: volunteer %s holds %d active assignments, pass an explicit dispatch ID: %w",
			v.ID, len(open), faults.ErrConflict)
	}
	return &open[0], nil
}

// recomputeAggregate re-derives the complaint's stored aggregate status
// from the current slot state of all its dispatch records.
func recomputeAggregate(tx *gorm.DB, dispatchID string) error {
	var r models.DispatchRecord
	if err := tx.First(&r, "id = ?", dispatchID).Error; err != nil {
		return fmt.Errorf("dispatch: reload record %s: %w: %w", dispatchID, faults.ErrStorage, err)
	}

	records, err := ListByComplaint(tx, r.ComplaintID)
	if err != nil {
		return err
	}
	status := models.ComplaintResolved
	for i := range records {
		if records[i].AggregateStatus() != models.ComplaintResolved {
			status = models.ComplaintDispatched
			break
		}
	}

	if err := tx.Model(&models.Complaint{}).Where("id = ?", r.ComplaintID).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("dispatch: update complaint %s status: %w: %w", r.ComplaintID, faults.ErrStorage, err)
	}
	return nil
}
