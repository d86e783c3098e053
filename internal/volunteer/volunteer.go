// Package volunteer provides the volunteer directory and the admin-side
// activation lifecycle. Dispatching only ever reads active volunteers;
// everything else here stands in for the external registration and
// approval collaborators.
package volunteer

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/arjunvn/sahaya/internal/faults"
	"github.com/arjunvn/sahaya/internal/geo"
	"github.com/arjunvn/sahaya/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for registering a new volunteer.
type CreateOpts struct {
	Name     string
	Email    string
	Category string // legal, police, mental
	Location string // "lat,lon"
}

// ListFilters holds optional filters for listing volunteers.
type ListFilters struct {
	Category string
	Status   string
}

// ValidTransitions maps each activation state to its valid next states.
// Banning is allowed from any non-banned state.
var ValidTransitions = map[string][]string{
	models.VolunteerPending:   {models.VolunteerEmailSent, models.VolunteerBanned},
	models.VolunteerEmailSent: {models.VolunteerActive, models.VolunteerBanned},
	models.VolunteerActive:    {models.VolunteerBanned},
	models.VolunteerBanned:    {},
}

// GenerateID creates a unique volunteer ID in vol-xxxxx format (5-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("volunteer: generate ID: %w", err)
	}
	return "vol-" + hex.EncodeToString(b)[:5], nil
}

// Create registers a new volunteer in pending state.
func Create(db *gorm.DB, opts CreateOpts) (*models.Volunteer, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("volunteer: name is required: %w", faults.ErrValidation)
	}
	if !models.ValidCategory(opts.Category) {
		return nil, fmt.Errorf("volunteer: category %q is not one of legal, police, mental: %w", opts.Category, faults.ErrValidation)
	}
	if opts.Location != "" {
		if _, err := geo.ParseLocation(opts.Location); err != nil {
			return nil, err
		}
	}

	id, err := generateUniqueID(db)
	if err != nil {
		return nil, err
	}

	v := models.Volunteer{
		ID:       id,
		Name:     opts.Name,
		Email:    opts.Email,
		Category: opts.Category,
		Status:   models.VolunteerPending,
		Location: opts.Location,
	}
	if err := db.Create(&v).Error; err != nil {
		return nil, fmt.Errorf("volunteer: create: %w: %w", faults.ErrStorage, err)
	}
	return &v, nil
}

// generateUniqueID retries GenerateID until it finds an unused ID.
func generateUniqueID(db *gorm.DB) (string, error) {
	for i := 0; i < 10; i++ {
		id, err := GenerateID()
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&models.Volunteer{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return "", fmt.Errorf("volunteer: check ID %s: %w", id, err)
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("volunteer: could not generate unique ID after 10 attempts")
}

// Get returns a volunteer by ID.
func Get(db *gorm.DB, id string) (*models.Volunteer, error) {
	var v models.Volunteer
	if err := db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("volunteer: %s: %w", id, faults.ErrNotFound)
		}
		return nil, fmt.Errorf("volunteer: get %s: %w: %w", id, faults.ErrStorage, err)
	}
	return &v, nil
}

// List returns volunteers matching the filters, ordered by ID.
func List(db *gorm.DB, f ListFilters) ([]models.Volunteer, error) {
	q := db.Model(&models.Volunteer{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var vols []models.Volunteer
	if err := q.Order("id ASC").Find(&vols).Error; err != nil {
		return nil, fmt.Errorf("volunteer: list: %w: %w", faults.ErrStorage, err)
	}
	return vols, nil
}

// FindActiveByCategory returns every active volunteer of the given
// category. Order is by ID so ties in the nearest scan break
// deterministically. An empty result is not an error.
func FindActiveByCategory(db *gorm.DB, category string) ([]models.Volunteer, error) {
	if !models.ValidCategory(category) {
		return nil, fmt.Errorf("volunteer: category %q: %w", category, faults.ErrValidation)
	}
	var vols []models.Volunteer
	if err := db.Where("category = ? AND status = ?", category, models.VolunteerActive).
		Order("id ASC").Find(&vols).Error; err != nil {
		return nil, fmt.Errorf("volunteer: find active %s: %w: %w", category, faults.ErrStorage, err)
	}
	return vols, nil
}

// Transition moves a volunteer to a new activation state, enforcing the
// forward-only lifecycle. The status guard in the WHERE clause makes
// concurrent transitions race safely: the loser sees zero rows.
func Transition(db *gorm.DB, id, to string) (*models.Volunteer, error) {
	v, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(v.Status, to) {
		return nil, fmt.Errorf("volunteer: %s cannot move %s → %s: %w", id, v.Status, to, faults.ErrConflict)
	}

	result := db.Model(&models.Volunteer{}).
		Where("id = ? AND status = ?", id, v.Status).
		Update("status", to)
	if result.Error != nil {
		return nil, fmt.Errorf("volunteer: transition %s: %w: %w", id, faults.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("volunteer: %s changed state concurrently: %w", id, faults.ErrConflict)
	}
	v.Status = to
	return v, nil
}

// isValidTransition reports whether from → to is allowed.
func isValidTransition(from, to string) bool {
	for _, allowed := range ValidTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
