// Package notify delivers dispatch notifications and periodic digests to a
// chat platform. Delivery is best-effort: a failed post is logged and never
// rolls back the dispatch it announces.
package notify

import (
	"fmt"
	"log"
	"strings"

	"github.com/arjunvn/sahaya/internal/config"
	"github.com/arjunvn/sahaya/internal/models"
	"github.com/arjunvn/sahaya/internal/notify/discord"
	"github.com/arjunvn/sahaya/internal/notify/slack"
)

// Notifier posts a titled message to the configured channel.
type Notifier interface {
	Post(title, body string) error
}

// FromConfig builds the configured platform notifier. Returns nil when no
// platform is configured; callers treat a nil notifier as "disabled".
func FromConfig(cfg config.NotifyConfig) (Notifier, error) {
	switch cfg.Platform {
	case "":
		return nil, nil
	case "slack":
		return slack.New(slack.Opts{
			BotToken:  cfg.Slack.BotToken,
			ChannelID: cfg.Slack.ChannelID,
		})
	case "discord":
		return discord.New(discord.Opts{
			BotToken:  cfg.Discord.BotToken,
			ChannelID: cfg.Discord.ChannelID,
		})
	default:
		return nil, fmt.Errorf("notify: unknown platform %q", cfg.Platform)
	}
}

// SendDispatch announces a freshly created dispatch record. Best-effort:
// errors are logged, not returned, so notification failure can never undo
// a committed dispatch.
func SendDispatch(n Notifier, r *models.DispatchRecord) {
	if n == nil {
		return
	}
	title, body := FormatDispatch(r)
	if err := n.Post(title, body); err != nil {
		log.Printf("notify: dispatch %s: %v", r.ID, err)
	}
}

// FormatDispatch renders the notification for a new dispatch record.
func FormatDispatch(r *models.DispatchRecord) (title, body string) {
	title = fmt.Sprintf("New dispatch %s for complaint %s", r.ID, r.ComplaintID)

	var b strings.Builder
	if r.Complaint.Type != "" {
		fmt.Fprintf(&b, "Type: %s\n", r.Complaint.Type)
	}
	if r.Complaint.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", r.Complaint.Location)
	}
	for _, category := range models.Categories {
		s := r.Slot(category)
		switch {
		case s == nil || !s.Assigned():
			fmt.Fprintf(&b, "%s: no active volunteer\n", category)
		case s.Volunteer != nil:
			fmt.Fprintf(&b, "%s: %s (%s)\n", category, s.Volunteer.Name, *s.VolunteerID)
		default:
			fmt.Fprintf(&b, "%s: %s\n", category, *s.VolunteerID)
		}
	}
	return title, strings.TrimRight(b.String(), "\n")
}
