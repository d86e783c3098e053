package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/arjunvn/sahaya/internal/models"
	"gorm.io/gorm"
)

// DigestReport holds the open-dispatch summary posted on the digest schedule.
type DigestReport struct {
	GeneratedAt     time.Time
	OpenComplaints  int
	UnassignedSlots map[string]int // category → count of slots with no volunteer
	OpenSlots       map[string]int // category → count of assigned, unresolved slots
	OldestOpen      *models.Complaint
}

// BuildDigest summarizes every dispatch that still has an unresolved or
// unassigned slot. Returns nil when nothing is open, so quiet periods post
// nothing.
func BuildDigest(db *gorm.DB) (*DigestReport, error) {
	var records []models.DispatchRecord
	err := db.Preload("Slots").Preload("Complaint").Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("notify: digest query: %w", err)
	}

	report := &DigestReport{
		GeneratedAt:     time.Now(),
		UnassignedSlots: make(map[string]int),
		OpenSlots:       make(map[string]int),
	}
	openComplaints := make(map[string]bool)

	for i := range records {
		r := &records[i]
		open := false
		for _, s := range r.Slots {
			switch {
			case !s.Assigned():
				report.UnassignedSlots[s.Category]++
				open = true
			case s.Status != models.SlotResolved:
				report.OpenSlots[s.Category]++
				open = true
			}
		}
		if open && !openComplaints[r.ComplaintID] {
			openComplaints[r.ComplaintID] = true
			if report.OldestOpen == nil {
				c := r.Complaint
				report.OldestOpen = &c
			}
		}
	}
	report.OpenComplaints = len(openComplaints)

	if report.OpenComplaints == 0 {
		return nil, nil
	}
	return report, nil
}

// FormatDigest renders the digest report for posting.
func FormatDigest(report *DigestReport) (title, body string) {
	title = fmt.Sprintf("Sahaya digest: %d open complaint(s)", report.OpenComplaints)

	var b strings.Builder
	for _, category := range models.Categories {
		open := report.OpenSlots[category]
		unassigned := report.UnassignedSlots[category]
		if open == 0 && unassigned == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %d in progress, %d without a volunteer\n", category, open, unassigned)
	}
	if report.OldestOpen != nil {
		age := report.GeneratedAt.Sub(report.OldestOpen.ReportedAt).Round(time.Minute)
		fmt.Fprintf(&b, "Oldest open: %s (%s, reported %s ago)\n",
			report.OldestOpen.ID, report.OldestOpen.Type, age)
	}
	return title, strings.TrimRight(b.String(), "\n")
}

// PostDigest builds and posts one digest. Returns the report (nil when
// nothing was open) so callers can print a summary.
func PostDigest(db *gorm.DB, n Notifier) (*DigestReport, error) {
	report, err := BuildDigest(db)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil
	}
	if n != nil {
		title, body := FormatDigest(report)
		if err := n.Post(title, body); err != nil {
			return report, fmt.Errorf("notify: post digest: %w", err)
		}
	}
	return report, nil
}
