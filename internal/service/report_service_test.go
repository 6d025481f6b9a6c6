package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"github.com/arcana-labs/reportwriter/internal/models"
	"github.com/arcana-labs/reportwriter/internal/storage"
	"github.com/arcana-labs/reportwriter/internal/storage/jsonfile"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupReportTest(t *testing.T) (*ReportService, *PersonService, storage.Store) {
	t.Helper()
	store, err := jsonfile.New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	logger := testLogger()
	return NewReportService(store, logger), NewPersonService(store, logger), store
}

func mustCreatePerson(t *testing.T, people *PersonService, userID, name, birthdate string) *models.Person {
	t.Helper()
	p, err := people.Create(context.Background(), userID, name, birthdate)
	if err != nil {
		t.Fatalf("creating person %s: %v", name, err)
	}
	return p
}

func TestGenerateAndList(t *testing.T) {
	ctx := context.Background()
	reports, people, _ := setupReportTest(t)
	ada := mustCreatePerson(t, people, "u1", "Ada", "7/4/1990")

	t.Run("generate records usage and content", func(t *testing.T) {
		r, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportLife, Person1ID: ada.ID})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if r.ID == 0 || r.Content == "" || r.TokensUsed <= 0 || r.Cost <= 0 {
			t.Errorf("Generate = %+v, want id, content, tokens and cost", r)
		}
		if r.CreatedAt.IsZero() {
			t.Error("CreatedAt not stamped")
		}
	})

	t.Run("list enriches person names", func(t *testing.T) {
		list, err := reports.List(ctx, "u1")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(list) != 1 || list[0].Person1Name != "Ada" {
			t.Fatalf("List = %+v, want one report named after Ada", list)
		}
	})

	t.Run("deleted person becomes Unknown, not an error", func(t *testing.T) {
		ghost := mustCreatePerson(t, people, "u1", "Ghost", "1970-01-01")
		if _, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportYearly, Person1ID: ghost.ID}); err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if ok, _ := people.Delete(ctx, ghost.ID, "u1"); !ok {
			t.Fatal("deleting person failed")
		}

		list, err := reports.List(ctx, "u1")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		var found bool
		for _, r := range list {
			if r.Person1ID == ghost.ID {
				found = true
				if r.Person1Name != "Unknown" {
					t.Errorf("Person1Name = %q, want Unknown", r.Person1Name)
				}
			}
		}
		if !found {
			t.Error("report for deleted person missing from list")
		}
	})

	t.Run("relationship invariant", func(t *testing.T) {
		bob := mustCreatePerson(t, people, "u1", "Bob", "02/29/1988")

		if _, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportRelationship, Person1ID: ada.ID}); !errors.Is(err, ErrPartnerRequired) {
			t.Errorf("relationship without partner: err = %v, want ErrPartnerRequired", err)
		}
		if _, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportLife, Person1ID: ada.ID, Person2ID: &bob.ID}); !errors.Is(err, ErrPartnerNotAllowed) {
			t.Errorf("life report with partner: err = %v, want ErrPartnerNotAllowed", err)
		}

		r, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportRelationship, Person1ID: ada.ID, Person2ID: &bob.ID})
		if err != nil {
			t.Fatalf("relationship Generate failed: %v", err)
		}
		if r.Person2ID == nil || *r.Person2ID != bob.ID {
			t.Errorf("Person2ID = %v, want %d", r.Person2ID, bob.ID)
		}
	})

	t.Run("unknown type and foreign person rejected", func(t *testing.T) {
		if _, err := reports.Generate(ctx, "u1", GenerateRequest{Type: "horoscope", Person1ID: ada.ID}); !errors.Is(err, ErrInvalidReportType) {
			t.Errorf("err = %v, want ErrInvalidReportType", err)
		}
		if _, err := reports.Generate(ctx, "u2", GenerateRequest{Type: models.ReportLife, Person1ID: ada.ID}); !errors.Is(err, ErrPersonNotFound) {
			t.Errorf("foreign person: err = %v, want ErrPersonNotFound", err)
		}
	})
}

func TestDeleteKeepsOthersAndNeverReusesIds(t *testing.T) {
	ctx := context.Background()
	reports, people, _ := setupReportTest(t)
	ada := mustCreatePerson(t, people, "u1", "Ada", "1990-07-04")

	var ids []int64
	for i := 0; i < 3; i++ {
		r, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportYearly, Person1ID: ada.ID})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		ids = append(ids, r.ID)
	}

	if ok, err := reports.Delete(ctx, ids[1], "u1"); err != nil || !ok {
		t.Fatalf("Delete(%d) = %v, %v", ids[1], ok, err)
	}

	list, err := reports.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d reports, want 2", len(list))
	}
	remaining := map[int64]bool{}
	for _, r := range list {
		remaining[r.ID] = true
	}
	if !remaining[ids[0]] || !remaining[ids[2]] || remaining[ids[1]] {
		t.Errorf("remaining ids = %v, want exactly first and third", remaining)
	}

	r, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportYearly, Person1ID: ada.ID})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, id := range ids {
		if r.ID == id {
			t.Errorf("new report reused id %d", id)
		}
	}
}

func TestUsageSummary(t *testing.T) {
	ctx := context.Background()
	reports, people, store := setupReportTest(t)
	ada := mustCreatePerson(t, people, "u1", "Ada", "1990-07-04")

	// Fixed token/cost figures make the sums exact, so seed the ledger
	// directly rather than through Generate.
	seed := []struct {
		tokens int64
		cost   float64
	}{
		{100, 0.002},
		{50, 0.001},
	}
	for _, s := range seed {
		err := store.CreateReport(ctx, &models.Report{
			Type: models.ReportLife, Person1ID: ada.ID, UserID: "u1",
			TokensUsed: s.tokens, Cost: s.cost,
		})
		if err != nil {
			t.Fatalf("seeding report: %v", err)
		}
	}
	limit := 5
	if err := store.PutSettings(ctx, &models.Settings{UserID: "u1", ReportLimit: &limit}); err != nil {
		t.Fatalf("PutSettings failed: %v", err)
	}

	usage, err := reports.Usage(ctx, "u1")
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if usage.TotalReports != 2 {
		t.Errorf("TotalReports = %d, want 2", usage.TotalReports)
	}
	if usage.TotalTokens != 150 {
		t.Errorf("TotalTokens = %d, want 150", usage.TotalTokens)
	}
	if math.Abs(usage.TotalCost-0.003) > 1e-9 {
		t.Errorf("TotalCost = %v, want 0.003", usage.TotalCost)
	}
	if usage.ReportLimit == nil || *usage.ReportLimit != 5 {
		t.Errorf("ReportLimit = %v, want 5", usage.ReportLimit)
	}
	if usage.RemainingReports == nil || *usage.RemainingReports != 3 {
		t.Errorf("RemainingReports = %v, want 3", usage.RemainingReports)
	}
	if !usage.CanGenerate {
		t.Error("CanGenerate = false, want true")
	}

	t.Run("unlimited when no settings", func(t *testing.T) {
		usage, err := reports.Usage(ctx, "someone-new")
		if err != nil {
			t.Fatalf("Usage failed: %v", err)
		}
		if usage.ReportLimit != nil || usage.RemainingReports != nil || !usage.CanGenerate {
			t.Errorf("Usage for fresh user = %+v, want unlimited and can-generate", usage)
		}
	})
}

func TestQuotaRefusesGeneration(t *testing.T) {
	ctx := context.Background()
	reports, people, store := setupReportTest(t)
	ada := mustCreatePerson(t, people, "u1", "Ada", "1990-07-04")

	limit := 1
	if err := store.PutSettings(ctx, &models.Settings{UserID: "u1", ReportLimit: &limit}); err != nil {
		t.Fatalf("PutSettings failed: %v", err)
	}

	if _, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportLife, Person1ID: ada.ID}); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	if _, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportLife, Person1ID: ada.ID}); !errors.Is(err, ErrLimitReached) {
		t.Errorf("second Generate err = %v, want ErrLimitReached", err)
	}

	// Deleting a report frees quota again.
	list, _ := reports.List(ctx, "u1")
	if ok, _ := reports.Delete(ctx, list[0].ID, "u1"); !ok {
		t.Fatal("Delete failed")
	}
	if _, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportLife, Person1ID: ada.ID}); err != nil {
		t.Errorf("Generate after delete failed: %v", err)
	}
}

func TestUpdateByNonOwnerLeavesRecord(t *testing.T) {
	ctx := context.Background()
	reports, people, _ := setupReportTest(t)
	ada := mustCreatePerson(t, people, "u1", "Ada", "1990-07-04")

	r, err := reports.Generate(ctx, "u1", GenerateRequest{Type: models.ReportFinancial, Person1ID: ada.ID})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	original := r.Content

	content := "forged"
	updated, err := reports.Update(ctx, r.ID, "intruder", models.ReportPatch{Content: &content})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated != nil {
		t.Fatalf("Update by non-owner = %+v, want nil", updated)
	}

	got, err := reports.Get(ctx, r.ID)
	if err != nil || got == nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got.Content != original {
		t.Error("stored record changed after non-owner update")
	}

	// Owner patch works and cannot move ownership.
	url := "/pdfs/out.pdf"
	updated, err = reports.Update(ctx, r.ID, "u1", models.ReportPatch{PDFURL: &url})
	if err != nil || updated == nil {
		t.Fatalf("owner Update = %v, %v", updated, err)
	}
	if updated.UserID != "u1" || updated.PDFURL == nil || *updated.PDFURL != url {
		t.Errorf("owner Update = %+v, want pdfUrl set, owner unchanged", updated)
	}
}
