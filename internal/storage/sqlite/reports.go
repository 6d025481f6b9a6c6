package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arcana-labs/reportwriter/internal/models"
)

const reportColumns = `id, type, person1_id, person2_id, custom_age, content, pdf_url, tokens_used, cost, user_id, created_at`

// CreateReport inserts a new report and populates report.ID from the
// AUTOINCREMENT rowid, which never reissues a deleted id.
func (s *SQLiteStore) CreateReport(ctx context.Context, report *models.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO reports (type, person1_id, person2_id, custom_age, content, pdf_url, tokens_used, cost, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		string(report.Type),
		report.Person1ID,
		nullableInt64(report.Person2ID),
		nullableInt(report.CustomAge),
		report.Content,
		nullableString(report.PDFURL),
		report.TokensUsed,
		report.Cost,
		report.UserID,
		report.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read report id: %w", err)
	}
	report.ID = id
	return nil
}

// GetReport retrieves a report by id, regardless of owner.
func (s *SQLiteStore) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ?`

	report, err := scanReport(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil // Report not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}

// ListReports retrieves all reports owned by userID.
func (s *SQLiteStore) ListReports(ctx context.Context, userID string) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE user_id = ?`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// UpdateReport merges patch over the report matching (id, userID) in a
// transaction. A miss returns (nil, nil) with no mutation.
func (s *SQLiteStore) UpdateReport(ctx context.Context, id int64, userID string, patch models.ReportPatch) (*models.Report, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ? AND user_id = ?`
	report, err := scanReport(tx.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil // No matching (id, owner) pair
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report for update: %w", err)
	}

	if patch.Content != nil {
		report.Content = *patch.Content
	}
	if patch.PDFURL != nil {
		url := *patch.PDFURL
		report.PDFURL = &url
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE reports SET content = ?, pdf_url = ? WHERE id = ? AND user_id = ?`,
		report.Content, nullableString(report.PDFURL), id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return report, nil
}

// DeleteReport removes the report matching (id, userID).
func (s *SQLiteStore) DeleteReport(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete report: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*models.Report, error) {
	report := &models.Report{}
	var (
		typ        string
		person2ID  sql.NullInt64
		customAge  sql.NullInt64
		pdfURL     sql.NullString
		createdAt  string
	)

	err := row.Scan(
		&report.ID,
		&typ,
		&report.Person1ID,
		&person2ID,
		&customAge,
		&report.Content,
		&pdfURL,
		&report.TokensUsed,
		&report.Cost,
		&report.UserID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	report.Type = models.ReportType(typ)
	if person2ID.Valid {
		v := person2ID.Int64
		report.Person2ID = &v
	}
	if customAge.Valid {
		v := int(customAge.Int64)
		report.CustomAge = &v
	}
	if pdfURL.Valid {
		v := pdfURL.String
		report.PDFURL = &v
	}
	report.CreatedAt, _ = time.Parse(timeLayout, createdAt)

	return report, nil
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
