// Package dispatch implements the coordinator that routes a complaint to
// the nearest active volunteer in each support category, and the
// caller-scoped status updates on the resulting role-slots.
package dispatch

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/arjunvn/sahaya/internal/complaint"
	"github.com/arjunvn/sahaya/internal/faults"
	"github.com/arjunvn/sahaya/internal/geo"
	"github.com/arjunvn/sahaya/internal/models"
	"github.com/arjunvn/sahaya/internal/volunteer"
	"gorm.io/gorm"
)

// GenerateID creates a unique dispatch ID in dsp-xxxxx format (5-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("dispatch: generate ID: %w", err)
	}
	return "dsp-" + hex.EncodeToString(b)[:5], nil
}

// Dispatch files a complaint and assigns the nearest active volunteer of
// each category to a new dispatch record. A category with no active
// volunteers yields an unassigned slot; that is not an error. The
// complaint, record, and all three slots commit together or not at all.
//
// The returned record carries all three slots with volunteers preloaded so
// the caller can notify each assignee. Notification is the caller's
// concern and must not roll anything back.
func Dispatch(db *gorm.DB, in complaint.Intake) (*models.DispatchRecord, error) {
	if err := complaint.ValidateIntake(in); err != nil {
		return nil, err
	}
	target, err := geo.ParseLocation(in.Location)
	if err != nil {
		return nil, err
	}

	var record models.DispatchRecord

	err = db.Transaction(func(tx *gorm.DB) error {
		cmpID, err := complaint.GenerateID()
		if err != nil {
			return err
		}
		c := models.Complaint{
			ID:          cmpID,
			PhoneNo:     in.PhoneNo,
			Name:        in.Name,
			Type:        in.Type,
			Description: in.Description,
			Location:    in.Location,
			Status:      models.ComplaintDispatched,
			ReportedAt:  time.Now(),
		}
		if err := tx.Create(&c).Error; err != nil {
			return fmt.Errorf("dispatch: create complaint: %w: %w", faults.ErrStorage, err)
		}

		dspID, err := GenerateID()
		if err != nil {
			return err
		}
		record = models.DispatchRecord{
			ID:          dspID,
			ComplaintID: cmpID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("dispatch: create record: %w: %w", faults.ErrStorage, err)
		}

		for _, category := range models.Categories {
			slot, err := buildSlot(tx, dspID, category, target)
			if err != nil {
				return err
			}
			if err := tx.Create(slot).Error; err != nil {
				return fmt.Errorf("dispatch: create %s slot: %w: %w", category, faults.ErrStorage, err)
			}
			record.Slots = append(record.Slots, *slot)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Preload volunteers for the caller's notification pass.
	full, err := Get(db, record.ID)
	if err != nil {
		return &record, nil
	}
	return full, nil
}

// buildSlot runs the nearest scan for one category and returns the slot to
// persist. Volunteers with no usable coordinate are skipped as candidates.
func buildSlot(tx *gorm.DB, dispatchID, category string, target geo.Coordinate) (*models.DispatchSlot, error) {
	vols, err := volunteer.FindActiveByCategory(tx, category)
	if err != nil {
		return nil, err
	}

	candidates := make([]geo.Candidate, 0, len(vols))
	for _, v := range vols {
		at, err := geo.ParseLocation(v.Location)
		if err != nil {
			continue
		}
		candidates = append(candidates, geo.Candidate{ID: v.ID, At: at})
	}

	slot := models.DispatchSlot{
		DispatchID: dispatchID,
		Category:   category,
		Status:     models.SlotUnassigned,
	}
	if id, ok := geo.Nearest(target, candidates); ok {
		slot.VolunteerID = &id
		slot.Status = models.SlotAutoDispatched
	}
	return &slot, nil
}

// Get returns a dispatch record with slots, volunteers, and complaint
// preloaded.
func Get(db *gorm.DB, id string) (*models.DispatchRecord, error) {
	var r models.DispatchRecord
	err := db.Preload("Slots.Volunteer").Preload("Complaint").First(&r, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("dispatch: %s: %w", id, faults.ErrNotFound)
		}
		return nil, fmt.Errorf("dispatch: get %s: %w: %w", id, faults.ErrStorage, err)
	}
	return &r, nil
}

// ListByComplaint returns all dispatch records for a complaint, oldest
// first. The current coordinator creates exactly one per complaint, but
// the query does not assume it.
func ListByComplaint(db *gorm.DB, complaintID string) ([]models.DispatchRecord, error) {
	var rs []models.DispatchRecord
	err := db.Preload("Slots.Volunteer").Where("complaint_id = ?", complaintID).
		Order("created_at ASC").Find(&rs).Error
	if err != nil {
		return nil, fmt.Errorf("dispatch: list for %s: %w: %w", complaintID, faults.ErrStorage, err)
	}
	return rs, nil
}

// List returns all dispatch records, newest first.
func List(db *gorm.DB) ([]models.DispatchRecord, error) {
	var rs []models.DispatchRecord
	err := db.Preload("Slots.Volunteer").Preload("Complaint").
		Order("created_at DESC").Find(&rs).Error
	if err != nil {
		return nil, fmt.Errorf("dispatch: list: %w: %w", faults.ErrStorage, err)
	}
	return rs, nil
}
