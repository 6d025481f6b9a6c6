package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/arcana-labs/reportwriter/internal/dates"
	"github.com/arcana-labs/reportwriter/internal/models"
	"github.com/arcana-labs/reportwriter/internal/storage"
)

var ErrNameRequired = errors.New("name is required")

// PersonService manages the report subjects. Birthdates are
// canonicalized on the way in; the literal text the user typed is kept
// alongside for exact redisplay.
type PersonService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPersonService creates a PersonService over the given store.
func NewPersonService(store storage.Store, logger *slog.Logger) *PersonService {
	return &PersonService{store: store, logger: logger}
}

// Create validates and stores a new person for userID. The birthdate
// input may be in any recognized form; a *dates.FormatError is returned
// for anything else.
func (s *PersonService) Create(ctx context.Context, userID, name, birthdate string) (*models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	canonical, err := dates.ToCanonical(birthdate)
	if err != nil {
		return nil, err
	}

	person := &models.Person{
		UserID:             userID,
		Name:               name,
		Birthdate:          canonical,
		OriginalDateFormat: birthdate,
	}
	if err := s.store.CreatePerson(ctx, person); err != nil {
		return nil, err
	}

	s.logger.Info("Person created", "person_id", person.ID, "user_id", userID)
	return person, nil
}

// Get retrieves one of the caller's people; nil when the id is absent
// or owned by someone else.
func (s *PersonService) Get(ctx context.Context, id int64, userID string) (*models.Person, error) {
	person, err := s.store.GetPerson(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil || person.UserID != userID {
		return nil, nil
	}
	return person, nil
}

// List retrieves all people owned by userID.
func (s *PersonService) List(ctx context.Context, userID string) ([]*models.Person, error) {
	return s.store.ListPeople(ctx, userID)
}

// Update replaces name and birthdate of the caller's person; nil on a
// miss.
func (s *PersonService) Update(ctx context.Context, id int64, userID, name, birthdate string) (*models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	canonical, err := dates.ToCanonical(birthdate)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdatePerson(ctx, &models.Person{
		ID:                 id,
		UserID:             userID,
		Name:               name,
		Birthdate:          canonical,
		OriginalDateFormat: birthdate,
	})
	if err != nil {
		return nil, err
	}
	if updated != nil {
		s.logger.Info("Person updated", "person_id", id, "user_id", userID)
	}
	return updated, nil
}

// Delete removes the caller's person, reporting whether anything was
// removed. Reports referencing the person keep their id and fall back
// to "Unknown" in listings.
func (s *PersonService) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	ok, err := s.store.DeletePerson(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info("Person deleted", "person_id", id, "user_id", userID)
	}
	return ok, nil
}
