package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arcana-labs/reportwriter/internal/models"
)

// CreatePerson inserts a new person and populates person.ID.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	if person.CreatedAt.IsZero() {
		person.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO people (user_id, name, birthdate, original_date_format, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		person.UserID,
		person.Name,
		person.Birthdate,
		person.OriginalDateFormat,
		person.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read person id: %w", err)
	}
	person.ID = id
	return nil
}

// GetPerson retrieves a person by id, regardless of owner.
func (s *SQLiteStore) GetPerson(ctx context.Context, id int64) (*models.Person, error) {
	query := `
		SELECT id, user_id, name, birthdate, original_date_format, created_at
		FROM people
		WHERE id = ?
	`

	person := &models.Person{}
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&person.ID,
		&person.UserID,
		&person.Name,
		&person.Birthdate,
		&person.OriginalDateFormat,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Person not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	person.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return person, nil
}

// ListPeople retrieves all people owned by userID.
func (s *SQLiteStore) ListPeople(ctx context.Context, userID string) ([]*models.Person, error) {
	query := `
		SELECT id, user_id, name, birthdate, original_date_format, created_at
		FROM people
		WHERE user_id = ?
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := make([]*models.Person, 0)
	for rows.Next() {
		person := &models.Person{}
		var createdAt string
		if err := rows.Scan(
			&person.ID,
			&person.UserID,
			&person.Name,
			&person.Birthdate,
			&person.OriginalDateFormat,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		person.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		people = append(people, person)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return people, nil
}

// UpdatePerson replaces the mutable fields of the person matching
// (person.ID, person.UserID). Returns nil on a miss.
func (s *SQLiteStore) UpdatePerson(ctx context.Context, person *models.Person) (*models.Person, error) {
	query := `
		UPDATE people
		SET name = ?, birthdate = ?, original_date_format = ?
		WHERE id = ? AND user_id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		person.Name,
		person.Birthdate,
		person.OriginalDateFormat,
		person.ID,
		person.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update person: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, nil // No matching (id, owner) pair
	}

	return s.GetPerson(ctx, person.ID)
}

// DeletePerson removes the person matching (id, userID).
func (s *SQLiteStore) DeletePerson(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}
