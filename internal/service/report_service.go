package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arcana-labs/reportwriter/internal/cards"
	"github.com/arcana-labs/reportwriter/internal/dates"
	"github.com/arcana-labs/reportwriter/internal/metrics"
	"github.com/arcana-labs/reportwriter/internal/models"
	"github.com/arcana-labs/reportwriter/internal/storage"
)

var (
	ErrInvalidReportType = errors.New("unknown report type")
	ErrPartnerRequired   = errors.New("relationship reports require a second person")
	ErrPartnerNotAllowed = errors.New("only relationship reports take a second person")
	ErrPersonNotFound    = errors.New("person not found")
	ErrLimitReached      = errors.New("report limit reached")
)

// unknownName is shown when a referenced person no longer exists.
// A dangling reference is never an error at this layer.
const unknownName = "Unknown"

// ReportService owns the report ledger: generation, history, patching,
// deletion, and the derived usage summary.
type ReportService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewReportService creates a ReportService over the given store.
func NewReportService(store storage.Store, logger *slog.Logger) *ReportService {
	return &ReportService{store: store, logger: logger}
}

// GenerateRequest is the shape the request layer supplies for a new
// report.
type GenerateRequest struct {
	Type      models.ReportType `json:"type"`
	Person1ID int64             `json:"person1Id"`
	Person2ID *int64            `json:"person2Id"`
	CustomAge *int              `json:"customAge"`
}

// Generate validates the request, enforces the user's quota, produces
// the placeholder content, prices it, and records the report.
func (s *ReportService) Generate(ctx context.Context, userID string, req GenerateRequest) (*models.Report, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidReportType
	}
	if req.Type.RequiresPartner() && req.Person2ID == nil {
		return nil, ErrPartnerRequired
	}
	if !req.Type.RequiresPartner() && req.Person2ID != nil {
		return nil, ErrPartnerNotAllowed
	}

	usage, err := s.Usage(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !usage.CanGenerate {
		metrics.GenerationRefused.Inc()
		s.logger.Warn("Generation refused, limit reached",
			"user_id", userID, "total_reports", usage.TotalReports)
		return nil, ErrLimitReached
	}

	subject, err := s.subject(ctx, userID, req.Person1ID, req.CustomAge)
	if err != nil {
		return nil, err
	}

	var partner *cards.Subject
	if req.Person2ID != nil {
		partner, err = s.subject(ctx, userID, *req.Person2ID, nil)
		if err != nil {
			return nil, err
		}
	}

	content := cards.Generate(req.Type, *subject, partner)
	tokens := cards.EstimateTokens(content)

	admin, err := s.store.GetAdminSettings(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		Type:       req.Type,
		Person1ID:  req.Person1ID,
		Person2ID:  req.Person2ID,
		CustomAge:  req.CustomAge,
		Content:    content,
		TokensUsed: tokens,
		Cost:       float64(tokens) * admin.CostPerToken,
		UserID:     userID,
	}
	if err := s.store.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	metrics.ReportsGenerated.WithLabelValues(string(req.Type)).Inc()
	metrics.TokensCharged.Add(float64(tokens))
	s.logger.Info("Report generated",
		"report_id", report.ID,
		"type", report.Type,
		"user_id", userID,
		"tokens", tokens,
		"cost", report.Cost,
	)
	return report, nil
}

// subject resolves a person owned by userID into a generation subject,
// computing the age from the canonical birthdate unless overridden.
func (s *ReportService) subject(ctx context.Context, userID string, personID int64, customAge *int) (*cards.Subject, error) {
	person, err := s.store.GetPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	if person == nil || person.UserID != userID {
		return nil, fmt.Errorf("%w: id %d", ErrPersonNotFound, personID)
	}

	birth, err := dates.Parse(person.Birthdate)
	if err != nil {
		// The store invariant says birthdate is always canonical; a
		// violation surfaces as the parse failure rather than a shifted
		// date.
		return nil, err
	}

	age := birth.Age(time.Now())
	if customAge != nil {
		age = *customAge
	}
	return &cards.Subject{Name: person.Name, Birth: birth, Age: age}, nil
}

// List returns all reports owned by userID, each enriched with the
// subjects' display names. No ordering is applied here.
func (s *ReportService) List(ctx context.Context, userID string) ([]*models.ReportWithNames, error) {
	reports, err := s.store.ListReports(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.ReportWithNames, 0, len(reports))
	for _, r := range reports {
		enriched := &models.ReportWithNames{Report: *r, Person1Name: unknownName}
		if p, err := s.store.GetPerson(ctx, r.Person1ID); err == nil && p != nil {
			enriched.Person1Name = p.Name
		}
		if r.Person2ID != nil {
			enriched.Person2Name = unknownName
			if p, err := s.store.GetPerson(ctx, *r.Person2ID); err == nil && p != nil {
				enriched.Person2Name = p.Name
			}
		}
		out = append(out, enriched)
	}
	return out, nil
}

// Get retrieves a report by id without an ownership filter; callers
// needing authorization check the owner themselves.
func (s *ReportService) Get(ctx context.Context, id int64) (*models.Report, error) {
	return s.store.GetReport(ctx, id)
}

// Update patches content/pdfUrl on the caller's report. A miss, whether
// the id is absent or owned by someone else, returns nil.
func (s *ReportService) Update(ctx context.Context, id int64, userID string, patch models.ReportPatch) (*models.Report, error) {
	updated, err := s.store.UpdateReport(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		s.logger.Debug("Report update missed", "report_id", id, "user_id", userID)
		return nil, nil
	}
	s.logger.Info("Report updated", "report_id", id, "user_id", userID)
	return updated, nil
}

// Delete removes the caller's report, reporting whether anything was
// removed.
func (s *ReportService) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	ok, err := s.store.DeleteReport(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info("Report deleted", "report_id", id, "user_id", userID)
	} else {
		s.logger.Debug("Report delete missed", "report_id", id, "user_id", userID)
	}
	return ok, nil
}

// Usage computes the user's usage summary fresh from the report
// collection, so it is always consistent with the ledger at read time.
func (s *ReportService) Usage(ctx context.Context, userID string) (*models.UsageSummary, error) {
	reports, err := s.store.ListReports(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &models.UsageSummary{
		TotalReports: len(reports),
		CanGenerate:  true,
	}
	for _, r := range reports {
		summary.TotalTokens += r.TokensUsed
		summary.TotalCost += r.Cost
	}

	settings, err := s.store.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings != nil && settings.ReportLimit != nil {
		limit := *settings.ReportLimit
		summary.ReportLimit = &limit

		remaining := limit - summary.TotalReports
		if remaining < 0 {
			remaining = 0
		}
		summary.RemainingReports = &remaining
		summary.CanGenerate = summary.TotalReports < limit
	}
	return summary, nil
}
