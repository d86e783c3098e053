package dashboard

import (
	"time"

	"github.com/arjunvn/sahaya/internal/complaint"
	"github.com/arjunvn/sahaya/internal/models"
	"gorm.io/gorm"
)

// ComplaintRow holds complaint data for display, with the aggregate status
// derived from slot state.
type ComplaintRow struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Location   string    `json:"location"`
	ReportedAt time.Time `json:"reported_at"`
	Legal      string    `json:"legal"`
	Police     string    `json:"police"`
	Mental     string    `json:"mental"`
}

// ComplaintSummary returns all complaints, newest first, with one column
// per role-slot showing "volunteer-id status" or "unassigned".
func ComplaintSummary(db *gorm.DB) ([]ComplaintRow, error) {
	cs, err := complaint.List(db, complaint.ListFilters{})
	if err != nil {
		return nil, err
	}

	rows := make([]ComplaintRow, len(cs))
	for i := range cs {
		c := &cs[i]
		rows[i] = ComplaintRow{
			ID:         c.ID,
			Type:       c.Type,
			Status:     c.Status,
			Location:   c.Location,
			ReportedAt: c.ReportedAt,
			Legal:      slotCell(c, models.CategoryLegal),
			Police:     slotCell(c, models.CategoryPolice),
			Mental:     slotCell(c, models.CategoryMental),
		}
	}
	return rows, nil
}

// slotCell renders the latest dispatch record's slot for one category.
func slotCell(c *models.Complaint, category string) string {
	if len(c.Dispatches) == 0 {
		return "—"
	}
	s := c.Dispatches[len(c.Dispatches)-1].Slot(category)
	if s == nil || !s.Assigned() {
		return "unassigned"
	}
	return *s.VolunteerID + " " + s.Status
}

// CategoryLoad holds per-category directory and slot counts.
type CategoryLoad struct {
	Category   string `json:"category"`
	Active     int    `json:"active_volunteers"`
	OpenSlots  int    `json:"open_slots"`
	Unassigned int    `json:"unassigned_slots"`
}

// LoadSummary returns per-category counts: active volunteers, assigned
// slots still unresolved, and slots that never found a volunteer.
func LoadSummary(db *gorm.DB) ([]CategoryLoad, error) {
	loads := make([]CategoryLoad, 0, len(models.Categories))
	for _, category := range models.Categories {
		var active, open, unassigned int64
		if err := db.Model(&models.Volunteer{}).
			Where("category = ? AND status = ?", category, models.VolunteerActive).
			Count(&active).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&models.DispatchSlot{}).
			Where("category = ? AND volunteer_id IS NOT NULL AND status != ?", category, models.SlotResolved).
			Count(&open).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&models.DispatchSlot{}).
			Where("category = ? AND volunteer_id IS NULL", category).
			Count(&unassigned).Error; err != nil {
			return nil, err
		}
		loads = append(loads, CategoryLoad{
			Category:   category,
			Active:     int(active),
			OpenSlots:  int(open),
			Unassigned: int(unassigned),
		})
	}
	return loads, nil
}

// VolunteerRow holds volunteer data for the roster table.
type VolunteerRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Location string `json:"location"`
}

// VolunteerRoster returns all volunteers ordered by category then ID.
func VolunteerRoster(db *gorm.DB) ([]VolunteerRow, error) {
	var vols []models.Volunteer
	if err := db.Order("category ASC, id ASC").Find(&vols).Error; err != nil {
		return nil, err
	}
	rows := make([]VolunteerRow, len(vols))
	for i, v := range vols {
		rows[i] = VolunteerRow{
			ID:       v.ID,
			Name:     v.Name,
			Category: v.Category,
			Status:   v.Status,
			Location: v.Location,
		}
	}
	return rows, nil
}
