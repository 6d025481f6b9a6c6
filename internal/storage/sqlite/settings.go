package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arcana-labs/reportwriter/internal/models"
)

// GetSettings retrieves per-user settings; (nil, nil) when the user
// has none.
func (s *SQLiteStore) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	var limit sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT report_limit FROM settings WHERE user_id = ?`, userID,
	).Scan(&limit)

	if err == sql.ErrNoRows {
		return nil, nil // No settings for this user
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := &models.Settings{UserID: userID}
	if limit.Valid {
		v := int(limit.Int64)
		settings.ReportLimit = &v
	}
	return settings, nil
}

// PutSettings creates or replaces per-user settings.
func (s *SQLiteStore) PutSettings(ctx context.Context, settings *models.Settings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (user_id, report_limit) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET report_limit = excluded.report_limit`,
		settings.UserID, nullableInt(settings.ReportLimit),
	)
	if err != nil {
		return fmt.Errorf("failed to put settings: %w", err)
	}
	return nil
}

// GetAdminSettings retrieves the global settings, falling back to
// defaults when never configured.
func (s *SQLiteStore) GetAdminSettings(ctx context.Context) (*models.AdminSettings, error) {
	settings := &models.AdminSettings{}
	err := s.db.QueryRowContext(ctx,
		`SELECT api_key, cost_per_token, logo_url, footer_text FROM admin_settings WHERE id = 1`,
	).Scan(&settings.APIKey, &settings.CostPerToken, &settings.LogoURL, &settings.FooterText)

	if err == sql.ErrNoRows {
		return &models.AdminSettings{CostPerToken: models.DefaultCostPerToken}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin settings: %w", err)
	}
	return settings, nil
}

// PutAdminSettings replaces the global settings.
func (s *SQLiteStore) PutAdminSettings(ctx context.Context, settings *models.AdminSettings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_settings (id, api_key, cost_per_token, logo_url, footer_text)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   api_key = excluded.api_key,
		   cost_per_token = excluded.cost_per_token,
		   logo_url = excluded.logo_url,
		   footer_text = excluded.footer_text`,
		settings.APIKey, settings.CostPerToken, settings.LogoURL, settings.FooterText,
	)
	if err != nil {
		return fmt.Errorf("failed to put admin settings: %w", err)
	}
	return nil
}
