package notify

import (
	"errors"
	"strings"
	"testing"

	"github.com/arjunvn/sahaya/internal/config"
	"github.com/arjunvn/sahaya/internal/models"
)

type mockNotifier struct {
	titles []string
	bodies []string
	err    error
}

func (m *mockNotifier) Post(title, body string) error {
	if m.err != nil {
		return m.err
	}
	m.titles = append(m.titles, title)
	m.bodies = append(m.bodies, body)
	return nil
}

func strptr(s string) *string { return &s }

func sampleRecord() *models.DispatchRecord {
	return &models.DispatchRecord{
		ID:          "dsp-abc12",
		ComplaintID: "cmp-def34",
		Complaint: models.Complaint{
			ID: "cmp-def34", Type: "harassment", Location: "12.01,12.01",
		},
		Slots: []models.DispatchSlot{
			{
				Category:    models.CategoryLegal,
				VolunteerID: strptr("vol-00001"),
				Status:      models.SlotAutoDispatched,
				Volunteer:   &models.Volunteer{ID: "vol-00001", Name: "Asha"},
			},
			{Category: models.CategoryPolice, Status: models.SlotUnassigned},
			{
				Category:    models.CategoryMental,
				VolunteerID: strptr("vol-00002"),
				Status:      models.SlotAutoDispatched,
			},
		},
	}
}

func TestFormatDispatch(t *testing.T) {
	title, body := FormatDispatch(sampleRecord())
	if !strings.Contains(title, "dsp-abc12") || !strings.Contains(title, "cmp-def34") {
		t.Errorf("title = %q", title)
	}
	for _, want := range []string{
		"Type: harassment",
		"Location: 12.01,12.01",
		"legal: Asha (vol-00001)",
		"police: no active volunteer",
		"mental: vol-00002",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestSendDispatch(t *testing.T) {
	m := &mockNotifier{}
	SendDispatch(m, sampleRecord())
	if len(m.titles) != 1 {
		t.Fatalf("posted %d messages, want 1", len(m.titles))
	}
}

func TestSendDispatch_NilNotifierIsNoop(t *testing.T) {
	SendDispatch(nil, sampleRecord())
}

func TestSendDispatch_ErrorIsSwallowed(t *testing.T) {
	m := &mockNotifier{err: errors.New("channel gone")}
	// Must not panic or propagate; delivery is best-effort.
	SendDispatch(m, sampleRecord())
}

func TestFromConfig_Disabled(t *testing.T) {
	n, err := FromConfig(config.NotifyConfig{})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if n != nil {
		t.Error("expected nil notifier for empty platform")
	}
}

func TestFromConfig_Slack(t *testing.T) {
	n, err := FromConfig(config.NotifyConfig{
		Platform: "slack",
		Slack:    config.SlackConfig{BotToken: "xoxb-test", ChannelID: "C1"},
	})
	if err != nil || n == nil {
		t.Fatalf("FromConfig slack = %v, %v", n, err)
	}
}

func TestFromConfig_UnknownPlatform(t *testing.T) {
	if _, err := FromConfig(config.NotifyConfig{Platform: "pager"}); err == nil {
		t.Fatal("expected error for unknown platform")
	}
}
