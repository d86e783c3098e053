package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arjunvn/sahaya/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Volunteer{}, &models.Complaint{}, &models.DispatchRecord{}, &models.DispatchSlot{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// newTestRouter builds the dashboard router without binding a port.
func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	tmpl, err := parseTemplates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	router.SetHTMLTemplate(tmpl)
	registerRoutes(router, db)
	return router
}

func seedData(t *testing.T, db *gorm.DB) {
	t.Helper()
	vols := []models.Volunteer{
		{ID: "vol-00001", Name: "Asha", Category: models.CategoryLegal, Status: models.VolunteerActive, Location: "12,12"},
		{ID: "vol-00002", Name: "Bilal", Category: models.CategoryPolice, Status: models.VolunteerPending, Location: "13,13"},
	}
	for i := range vols {
		if err := db.Create(&vols[i]).Error; err != nil {
			t.Fatalf("seed volunteer: %v", err)
		}
	}

	c := models.Complaint{
		ID:         "cmp-00001",
		PhoneNo:    "5550001",
		Type:       "harassment",
		Location:   "12.01,12.01",
		Status:     models.ComplaintDispatched,
		ReportedAt: time.Now(),
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed complaint: %v", err)
	}
	volID := "vol-00001"
	rec := models.DispatchRecord{
		ID:          "dsp-00001",
		ComplaintID: c.ID,
		CreatedAt:   time.Now(),
		Slots: []models.DispatchSlot{
			{Category: models.CategoryLegal, VolunteerID: &volID, Status: models.SlotAutoDispatched},
			{Category: models.CategoryPolice, Status: models.SlotUnassigned},
			{Category: models.CategoryMental, Status: models.SlotUnassigned},
		},
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed dispatch: %v", err)
	}
}

func TestStart_NilDB(t *testing.T) {
	err := Start(context.Background(), StartOpts{DB: nil})
	if err == nil {
		t.Fatal("expected error for nil db")
	}
	if !strings.Contains(err.Error(), "db is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "db is required")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	data, err := templatesFS.ReadFile("templates/layout.html")
	if err != nil {
		t.Fatalf("layout.html not embedded: %v", err)
	}
	if !strings.Contains(string(data), "Sahaya") {
		t.Error("layout.html does not contain 'Sahaya'")
	}
}

func TestIndex_RendersSeededData(t *testing.T) {
	db := openTestDB(t)
	seedData(t, db)
	router := newTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"cmp-00001", "vol-00001 auto_dispatched", "unassigned", "Asha", "Bilal"} {
		if !strings.Contains(body, want) {
			t.Errorf("index body missing %q", want)
		}
	}
}

func TestIndex_EmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No complaints on file") {
		t.Error("index body missing empty-state message")
	}
}

func TestAPIComplaints(t *testing.T) {
	db := openTestDB(t)
	seedData(t, db)
	router := newTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/complaints", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var rows []ComplaintRow
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Legal != "vol-00001 auto_dispatched" {
		t.Errorf("legal cell = %q, want %q", rows[0].Legal, "vol-00001 auto_dispatched")
	}
	if rows[0].Police != "unassigned" {
		t.Errorf("police cell = %q, want %q", rows[0].Police, "unassigned")
	}
}

func TestAPILoad(t *testing.T) {
	db := openTestDB(t)
	seedData(t, db)
	router := newTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/load", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var loads []CategoryLoad
	if err := json.Unmarshal(w.Body.Bytes(), &loads); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(loads) != len(models.Categories) {
		t.Fatalf("len(loads) = %d, want %d", len(loads), len(models.Categories))
	}
	byCategory := make(map[string]CategoryLoad, len(loads))
	for _, l := range loads {
		byCategory[l.Category] = l
	}
	if got := byCategory[models.CategoryLegal]; got.Active != 1 || got.OpenSlots != 1 || got.Unassigned != 0 {
		t.Errorf("legal load = %+v, want active=1 open=1 unassigned=0", got)
	}
	if got := byCategory[models.CategoryPolice]; got.Active != 0 || got.OpenSlots != 0 || got.Unassigned != 1 {
		t.Errorf("police load = %+v, want active=0 open=0 unassigned=1", got)
	}
}

func TestAPIVolunteers(t *testing.T) {
	db := openTestDB(t)
	seedData(t, db)
	router := newTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/volunteers", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var rows []VolunteerRow
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].ID != "vol-00001" {
		t.Errorf("rows[0].ID = %q, want vol-00001", rows[0].ID)
	}
}

func TestLoadSummary_EmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	loads, err := LoadSummary(db)
	if err != nil {
		t.Fatalf("LoadSummary: %v", err)
	}
	if len(loads) != len(models.Categories) {
		t.Fatalf("len(loads) = %d, want %d", len(loads), len(models.Categories))
	}
	for _, l := range loads {
		if l.Active != 0 || l.OpenSlots != 0 || l.Unassigned != 0 {
			t.Errorf("%s load = %+v, want zeros", l.Category, l)
		}
	}
}
