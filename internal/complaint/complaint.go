// Package complaint provides complaint intake validation and queries.
// Creation itself happens inside the dispatch coordinator so a complaint
// and its dispatch record commit together.
package complaint

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/arjunvn/sahaya/internal/faults"
	"github.com/arjunvn/sahaya/internal/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Intake holds the reporter-supplied fields for a new complaint.
type Intake struct {
	PhoneNo     string `validate:"required"`
	Name        string
	Type        string `validate:"required"`
	Description string
	Location    string `validate:"required"`
}

var validate = validator.New()

// ValidateIntake checks required intake fields. Location syntax is checked
// separately by geo.ParseLocation; this only enforces presence.
func ValidateIntake(in Intake) error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return fmt.Errorf("complaint: missing required fields %v: %w", missing, faults.ErrValidation)
		}
		return fmt.Errorf("complaint: validate intake: %w", err)
	}
	return nil
}

// GenerateID creates a unique complaint ID in cmp-xxxxx format (5-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("complaint: generate ID: %w", err)
	}
	return "cmp-" + hex.EncodeToString(b)[:5], nil
}

// ListFilters holds optional filters for listing complaints.
type ListFilters struct {
	Status string
	Type   string
}

// Get returns a complaint with its dispatch records and slots preloaded.
// The aggregate status is re-derived from slot state rather than read from
// the stored column, so a stale column can never leak to callers.
func Get(db *gorm.DB, id string) (*models.Complaint, error) {
	var c models.Complaint
	err := db.Preload("Dispatches.Slots").First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("complaint: %s: %w", id, faults.ErrNotFound)
		}
		return nil, fmt.Errorf("complaint: get %s: %w: %w", id, faults.ErrStorage, err)
	}
	c.Status = DeriveStatus(&c)
	return &c, nil
}

// List returns complaints matching the filters, newest first, with derived
// aggregate statuses. The status filter applies to the derived value.
func List(db *gorm.DB, f ListFilters) ([]models.Complaint, error) {
	q := db.Model(&models.Complaint{}).Preload("Dispatches.Slots")
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	var cs []models.Complaint
	if err := q.Order("reported_at DESC").Find(&cs).Error; err != nil {
		return nil, fmt.Errorf("complaint: list: %w: %w", faults.ErrStorage, err)
	}

	out := cs[:0]
	for i := range cs {
		cs[i].Status = DeriveStatus(&cs[i])
		if f.Status != "" && cs[i].Status != f.Status {
			continue
		}
		out = append(out, cs[i])
	}
	return out, nil
}

// DeriveStatus computes the complaint's aggregate status from its dispatch
// records: resolved only when every assigned role-slot across all records
// is resolved. A complaint with no dispatch records stays dispatched.
func DeriveStatus(c *models.Complaint) string {
	if len(c.Dispatches) == 0 {
		return models.ComplaintDispatched
	}
	for i := range c.Dispatches {
		if c.Dispatches[i].AggregateStatus() != models.ComplaintResolved {
			return models.ComplaintDispatched
		}
	}
	return models.ComplaintResolved
}
