package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arcana-labs/reportwriter/internal/models"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "reportwriter-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateReport assigns id and timestamp", func(t *testing.T) {
		report := &models.Report{
			Type:       models.ReportYearly,
			Person1ID:  1,
			TokensUsed: 120,
			Cost:       0.0024,
			UserID:     "u1",
		}

		if err := store.CreateReport(ctx, report); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}
		if report.ID == 0 {
			t.Error("Expected report ID to be assigned")
		}
		if report.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}

		retrieved, err := store.GetReport(ctx, report.ID)
		if err != nil {
			t.Fatalf("GetReport failed: %v", err)
		}
		if retrieved == nil {
			t.Fatal("GetReport returned nil for existing report")
		}
		if retrieved.Type != models.ReportYearly || retrieved.TokensUsed != 120 {
			t.Errorf("retrieved = %+v, want type/tokens preserved", retrieved)
		}
		if retrieved.Person2ID != nil || retrieved.CustomAge != nil || retrieved.PDFURL != nil {
			t.Errorf("nullable fields = %+v, want all nil", retrieved)
		}
	})

	t.Run("relationship report round-trips person2", func(t *testing.T) {
		partner := int64(2)
		age := 35
		report := &models.Report{
			Type:      models.ReportRelationship,
			Person1ID: 1,
			Person2ID: &partner,
			CustomAge: &age,
			UserID:    "u1",
		}
		if err := store.CreateReport(ctx, report); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}

		retrieved, err := store.GetReport(ctx, report.ID)
		if err != nil || retrieved == nil {
			t.Fatalf("GetReport = %v, %v", retrieved, err)
		}
		if retrieved.Person2ID == nil || *retrieved.Person2ID != 2 {
			t.Errorf("Person2ID = %v, want 2", retrieved.Person2ID)
		}
		if retrieved.CustomAge == nil || *retrieved.CustomAge != 35 {
			t.Errorf("CustomAge = %v, want 35", retrieved.CustomAge)
		}
	})

	t.Run("ids survive deletion of the highest", func(t *testing.T) {
		a := &models.Report{Type: models.ReportLife, Person1ID: 1, UserID: "u2"}
		b := &models.Report{Type: models.ReportLife, Person1ID: 1, UserID: "u2"}
		if err := store.CreateReport(ctx, a); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}
		if err := store.CreateReport(ctx, b); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}

		if ok, err := store.DeleteReport(ctx, b.ID, "u2"); err != nil || !ok {
			t.Fatalf("DeleteReport = %v, %v", ok, err)
		}

		c := &models.Report{Type: models.ReportLife, Person1ID: 1, UserID: "u2"}
		if err := store.CreateReport(ctx, c); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}
		if c.ID <= b.ID {
			t.Errorf("id %d reused after deleting %d", c.ID, b.ID)
		}
	})

	t.Run("UpdateReport by non-owner is a no-op", func(t *testing.T) {
		content := "hijack"
		updated, err := store.UpdateReport(ctx, 1, "other-user", models.ReportPatch{Content: &content})
		if err != nil {
			t.Fatalf("UpdateReport failed: %v", err)
		}
		if updated != nil {
			t.Errorf("UpdateReport by non-owner = %+v, want nil", updated)
		}
	})

	t.Run("GetReport returns nil for nonexistent report", func(t *testing.T) {
		report, err := store.GetReport(ctx, 9999)
		if err != nil {
			t.Fatalf("GetReport failed: %v", err)
		}
		if report != nil {
			t.Errorf("GetReport(9999) = %+v, want nil", report)
		}
	})

	t.Run("people round-trip", func(t *testing.T) {
		p := &models.Person{UserID: "u1", Name: "Grace", Birthdate: "1985-12-09", OriginalDateFormat: "12/9/1985"}
		if err := store.CreatePerson(ctx, p); err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}
		got, err := store.GetPerson(ctx, p.ID)
		if err != nil || got == nil {
			t.Fatalf("GetPerson = %v, %v", got, err)
		}
		if got.Birthdate != "1985-12-09" || got.OriginalDateFormat != "12/9/1985" {
			t.Errorf("GetPerson = %+v, want birthdate fields preserved", got)
		}

		people, err := store.ListPeople(ctx, "u1")
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if len(people) != 1 {
			t.Errorf("ListPeople returned %d people, want 1", len(people))
		}
	})

	t.Run("settings upsert", func(t *testing.T) {
		if got, err := store.GetSettings(ctx, "u1"); err != nil || got != nil {
			t.Fatalf("GetSettings before put = %v, %v; want nil, nil", got, err)
		}
		limit := 10
		if err := store.PutSettings(ctx, &models.Settings{UserID: "u1", ReportLimit: &limit}); err != nil {
			t.Fatalf("PutSettings failed: %v", err)
		}
		limit = 3
		if err := store.PutSettings(ctx, &models.Settings{UserID: "u1", ReportLimit: &limit}); err != nil {
			t.Fatalf("PutSettings (upsert) failed: %v", err)
		}
		got, err := store.GetSettings(ctx, "u1")
		if err != nil || got == nil || got.ReportLimit == nil || *got.ReportLimit != 3 {
			t.Fatalf("GetSettings = %+v, %v; want limit 3", got, err)
		}
	})

	t.Run("admin settings default then replace", func(t *testing.T) {
		admin, err := store.GetAdminSettings(ctx)
		if err != nil {
			t.Fatalf("GetAdminSettings failed: %v", err)
		}
		if admin.CostPerToken != models.DefaultCostPerToken {
			t.Errorf("default CostPerToken = %v, want %v", admin.CostPerToken, models.DefaultCostPerToken)
		}

		admin.CostPerToken = 0.0001
		if err := store.PutAdminSettings(ctx, admin); err != nil {
			t.Fatalf("PutAdminSettings failed: %v", err)
		}
		got, _ := store.GetAdminSettings(ctx)
		if got.CostPerToken != 0.0001 {
			t.Errorf("CostPerToken = %v after put, want 0.0001", got.CostPerToken)
		}
	})
}
