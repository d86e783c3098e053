package main

import (
	"fmt"

	"github.com/arjunvn/sahaya/internal/config"
	"github.com/arjunvn/sahaya/internal/db"
	"github.com/arjunvn/sahaya/internal/models"
	"gorm.io/gorm"
)

// connectFromConfig loads config and returns a GORM DB connection.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	return cfg, gormDB, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatSlot renders a role-slot as "volunteer-id status" or "unassigned".
func formatSlot(s *models.DispatchSlot) string {
	if s == nil || !s.Assigned() {
		return "unassigned"
	}
	return fmt.Sprintf("%s %s", *s.VolunteerID, s.Status)
}

// dash replaces an empty string with "-" for table output.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
