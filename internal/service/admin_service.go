package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/arcana-labs/reportwriter/internal/models"
	"github.com/arcana-labs/reportwriter/internal/storage"
)

// UserWithUsage pairs an account with its current usage summary for the
// admin user list.
type UserWithUsage struct {
	ID          string               `json:"id"`
	Email       string               `json:"email"`
	DisplayName string               `json:"displayName"`
	Role        string               `json:"role"`
	CreatedAt   time.Time            `json:"createdAt"`
	Usage       *models.UsageSummary `json:"usage"`
}

// AdminService covers user management and global settings.
type AdminService struct {
	store   storage.Store
	reports *ReportService
	logger  *slog.Logger
}

// NewAdminService creates an AdminService. Usage figures come from the
// same ReportService computation users see, so the two views can never
// disagree.
func NewAdminService(store storage.Store, reports *ReportService, logger *slog.Logger) *AdminService {
	return &AdminService{store: store, reports: reports, logger: logger}
}

// ListUsers returns every account with its usage summary.
func (s *AdminService) ListUsers(ctx context.Context) ([]*UserWithUsage, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*UserWithUsage, 0, len(users))
	for _, u := range users {
		usage, err := s.reports.Usage(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &UserWithUsage{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Role:        u.Role,
			CreatedAt:   u.CreatedAt,
			Usage:       usage,
		})
	}
	return out, nil
}

// SetReportLimit sets or clears (nil) a user's report limit. Returns
// false when the user does not exist.
func (s *AdminService) SetReportLimit(ctx context.Context, userID string, limit *int) (bool, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	if err := s.store.PutSettings(ctx, &models.Settings{UserID: userID, ReportLimit: limit}); err != nil {
		return false, err
	}

	if limit != nil {
		s.logger.Info("Report limit set", "user_id", userID, "limit", *limit)
	} else {
		s.logger.Info("Report limit cleared", "user_id", userID)
	}
	return true, nil
}

// Settings returns the global admin settings.
func (s *AdminService) Settings(ctx context.Context) (*models.AdminSettings, error) {
	return s.store.GetAdminSettings(ctx)
}

// UpdateSettings replaces the global admin settings. A non-positive
// cost-per-token falls back to the default so generation never becomes
// free by accident.
func (s *AdminService) UpdateSettings(ctx context.Context, settings *models.AdminSettings) error {
	if settings.CostPerToken <= 0 {
		settings.CostPerToken = models.DefaultCostPerToken
	}
	if err := s.store.PutAdminSettings(ctx, settings); err != nil {
		return err
	}
	s.logger.Info("Admin settings updated", "cost_per_token", settings.CostPerToken)
	return nil
}
