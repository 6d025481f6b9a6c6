// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/arcana-labs/reportwriter/internal/models"
)

// ErrPersistence wraps underlying read/write failures. It is never
// retried here; callers own any retry policy.
var ErrPersistence = errors.New("storage failure")

// Store defines the persistence operations for the report ledger and
// its collaborator collections. The abstraction allows swapping
// backends (flat JSON document, SQLite, ...) without changing the
// service layer.
//
// Lookup conventions: single-record getters return (nil, nil) when no
// record exists. Owner-scoped mutations match on (id, userId) and
// report a miss the same way whether the record is absent or owned by
// someone else, so callers cannot distinguish the two cases.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int, error)

	// CreatePerson persists a new person and assigns Person.ID.
	CreatePerson(ctx context.Context, person *models.Person) error

	// GetPerson retrieves a person by id, regardless of owner.
	GetPerson(ctx context.Context, id int64) (*models.Person, error)

	// ListPeople retrieves all people owned by userID.
	ListPeople(ctx context.Context, userID string) ([]*models.Person, error)

	// UpdatePerson replaces the mutable fields of the person matching
	// (person.ID, person.UserID). Returns the stored record, or nil on
	// a miss.
	UpdatePerson(ctx context.Context, person *models.Person) (*models.Person, error)

	// DeletePerson removes the person matching (id, userID) and
	// reports whether a removal occurred.
	DeletePerson(ctx context.Context, id int64, userID string) (bool, error)

	// CreateReport persists a new report, assigning Report.ID from a
	// durable monotonic counter and stamping CreatedAt. Assignment and
	// persistence are atomic with respect to concurrent creates.
	CreateReport(ctx context.Context, report *models.Report) error

	// GetReport retrieves a report by id, regardless of owner.
	GetReport(ctx context.Context, id int64) (*models.Report, error)

	// ListReports retrieves all reports owned by userID. No ordering
	// is guaranteed; ordering is a presentation concern.
	ListReports(ctx context.Context, userID string) ([]*models.Report, error)

	// UpdateReport merges patch over the report matching (id, userID).
	// Returns the updated record, or nil on a miss with no mutation.
	UpdateReport(ctx context.Context, id int64, userID string, patch models.ReportPatch) (*models.Report, error)

	// DeleteReport removes the report matching (id, userID) and
	// reports whether a removal occurred.
	DeleteReport(ctx context.Context, id int64, userID string) (bool, error)

	// GetSettings retrieves per-user settings; (nil, nil) when the
	// user has none.
	GetSettings(ctx context.Context, userID string) (*models.Settings, error)

	// PutSettings creates or replaces per-user settings.
	PutSettings(ctx context.Context, settings *models.Settings) error

	// GetAdminSettings retrieves the global settings, or defaults when
	// never configured.
	GetAdminSettings(ctx context.Context) (*models.AdminSettings, error)

	// PutAdminSettings replaces the global settings.
	PutAdminSettings(ctx context.Context, settings *models.AdminSettings) error

	// Close releases any resources held by the store.
	Close() error
}
