// Package jsonfile implements storage.Store over a single flat JSON
// document. Every mutation rewrites the whole file; an internal RWMutex
// makes each read-modify-write sequence atomic with respect to
// concurrent callers, and writes go through a temp file plus rename so
// a crash never leaves a partially-written document behind.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arcana-labs/reportwriter/internal/models"
	"github.com/arcana-labs/reportwriter/internal/storage"
)

// Ensure JSONStore implements storage.Store
var _ storage.Store = (*JSONStore)(nil)

// document is the at-rest envelope: the users/people/reports/settings
// collections plus durable id counters. The counters keep report and
// person ids monotonic even after the highest-id record is deleted.
type document struct {
	Users        []*models.User        `json:"users"`
	People       []*models.Person      `json:"people"`
	Reports      []*models.Report      `json:"reports"`
	Settings     []*models.Settings    `json:"settings"`
	Admin        *models.AdminSettings `json:"adminSettings,omitempty"`
	LastPersonID int64                 `json:"lastPersonId"`
	LastReportID int64                 `json:"lastReportId"`
}

// JSONStore implements storage.Store using one JSON file.
type JSONStore struct {
	path string

	mu  sync.RWMutex
	doc *document
}

// New opens the document at path, creating parent directories and an
// empty document when none exists yet. Id counters are healed to at
// least the highest id present, so files written by tooling that
// predates the counters still open safely.
func New(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: creating store directory: %v", storage.ErrPersistence, err)
	}

	s := &JSONStore{path: path, doc: &document{}}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := s.save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("%w: reading %s: %v", storage.ErrPersistence, path, err)
	default:
		if err := json.Unmarshal(data, s.doc); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", storage.ErrPersistence, path, err)
		}
	}

	for _, p := range s.doc.People {
		if p.ID > s.doc.LastPersonID {
			s.doc.LastPersonID = p.ID
		}
	}
	for _, r := range s.doc.Reports {
		if r.ID > s.doc.LastReportID {
			s.doc.LastReportID = r.ID
		}
	}

	return s, nil
}

// save rewrites the whole document. Callers must hold the write lock.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding document: %v", storage.ErrPersistence, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", storage.ErrPersistence, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", storage.ErrPersistence, s.path, err)
	}
	return nil
}

// Close is a no-op; the document is fully persisted after every write.
func (s *JSONStore) Close() error {
	return nil
}

// CreateUser persists a new user.
func (s *JSONStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := *user
	s.doc.Users = append(s.doc.Users, &u)
	if err := s.save(); err != nil {
		s.doc.Users = s.doc.Users[:len(s.doc.Users)-1]
		return err
	}
	return nil
}

// GetUserByEmail retrieves a user by email; (nil, nil) when absent.
func (s *JSONStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.doc.Users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

// GetUserByID retrieves a user by id; (nil, nil) when absent.
func (s *JSONStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.doc.Users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

// ListUsers retrieves all users.
func (s *JSONStore) ListUsers(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(s.doc.Users))
	for _, u := range s.doc.Users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

// CountUsers returns the number of registered users.
func (s *JSONStore) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Users), nil
}

// CreatePerson persists a new person, assigning the next person id.
func (s *JSONStore) CreatePerson(_ context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	person.ID = s.doc.LastPersonID + 1
	if person.CreatedAt.IsZero() {
		person.CreatedAt = time.Now().UTC()
	}

	p := *person
	s.doc.People = append(s.doc.People, &p)
	s.doc.LastPersonID = person.ID
	if err := s.save(); err != nil {
		s.doc.People = s.doc.People[:len(s.doc.People)-1]
		s.doc.LastPersonID = person.ID - 1
		return err
	}
	return nil
}

// GetPerson retrieves a person by id regardless of owner; (nil, nil)
// when absent.
func (s *JSONStore) GetPerson(_ context.Context, id int64) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.doc.People {
		if p.ID == id {
			out := *p
			return &out, nil
		}
	}
	return nil, nil
}

// ListPeople retrieves all people owned by userID.
func (s *JSONStore) ListPeople(_ context.Context, userID string) ([]*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Person, 0)
	for _, p := range s.doc.People {
		if p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

// UpdatePerson replaces name/birthdate/original-format of the person
// matching (person.ID, person.UserID); nil on a miss.
func (s *JSONStore) UpdatePerson(_ context.Context, person *models.Person) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.doc.People {
		if p.ID == person.ID && p.UserID == person.UserID {
			prev := *p
			p.Name = person.Name
			p.Birthdate = person.Birthdate
			p.OriginalDateFormat = person.OriginalDateFormat
			if err := s.save(); err != nil {
				*p = prev
				return nil, err
			}
			out := *p
			return &out, nil
		}
	}
	return nil, nil
}

// DeletePerson removes the person matching (id, userID).
func (s *JSONStore) DeletePerson(_ context.Context, id int64, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.doc.People {
		if p.ID == id && p.UserID == userID {
			prev := s.doc.People
			s.doc.People = append(append([]*models.Person{}, prev[:i]...), prev[i+1:]...)
			if err := s.save(); err != nil {
				s.doc.People = prev
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// CreateReport persists a new report. Id assignment and the file write
// happen under one lock, so concurrent creates can never share an id.
func (s *JSONStore) CreateReport(_ context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report.ID = s.doc.LastReportID + 1
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	r := *report
	s.doc.Reports = append(s.doc.Reports, &r)
	s.doc.LastReportID = report.ID
	if err := s.save(); err != nil {
		s.doc.Reports = s.doc.Reports[:len(s.doc.Reports)-1]
		s.doc.LastReportID = report.ID - 1
		return err
	}
	return nil
}

// GetReport retrieves a report by id regardless of owner; (nil, nil)
// when absent.
func (s *JSONStore) GetReport(_ context.Context, id int64) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.doc.Reports {
		if r.ID == id {
			out := *r
			return &out, nil
		}
	}
	return nil, nil
}

// ListReports retrieves all reports owned by userID.
func (s *JSONStore) ListReports(_ context.Context, userID string) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Report, 0)
	for _, r := range s.doc.Reports {
		if r.UserID == userID {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

// UpdateReport merges patch over the report matching (id, userID).
// A miss returns (nil, nil) with no mutation.
func (s *JSONStore) UpdateReport(_ context.Context, id int64, userID string, patch models.ReportPatch) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.doc.Reports {
		if r.ID == id && r.UserID == userID {
			prev := *r
			if patch.Content != nil {
				r.Content = *patch.Content
			}
			if patch.PDFURL != nil {
				url := *patch.PDFURL
				r.PDFURL = &url
			}
			if err := s.save(); err != nil {
				*r = prev
				return nil, err
			}
			out := *r
			return &out, nil
		}
	}
	return nil, nil
}

// DeleteReport removes the report matching (id, userID).
func (s *JSONStore) DeleteReport(_ context.Context, id int64, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.doc.Reports {
		if r.ID == id && r.UserID == userID {
			prev := s.doc.Reports
			s.doc.Reports = append(append([]*models.Report{}, prev[:i]...), prev[i+1:]...)
			if err := s.save(); err != nil {
				s.doc.Reports = prev
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// GetSettings retrieves per-user settings; (nil, nil) when the user
// has none.
func (s *JSONStore) GetSettings(_ context.Context, userID string) (*models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.doc.Settings {
		if st.UserID == userID {
			out := *st
			return &out, nil
		}
	}
	return nil, nil
}

// PutSettings creates or replaces per-user settings.
func (s *JSONStore) PutSettings(_ context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.doc.Settings {
		if st.UserID == settings.UserID {
			prev := *st
			*st = *settings
			if err := s.save(); err != nil {
				*st = prev
				return err
			}
			return nil
		}
	}

	c := *settings
	s.doc.Settings = append(s.doc.Settings, &c)
	if err := s.save(); err != nil {
		s.doc.Settings = s.doc.Settings[:len(s.doc.Settings)-1]
		return err
	}
	return nil
}

// GetAdminSettings retrieves the global settings, falling back to
// defaults when never configured.
func (s *JSONStore) GetAdminSettings(_ context.Context) (*models.AdminSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc.Admin == nil {
		return &models.AdminSettings{CostPerToken: models.DefaultCostPerToken}, nil
	}
	out := *s.doc.Admin
	return &out, nil
}

// PutAdminSettings replaces the global settings.
func (s *JSONStore) PutAdminSettings(_ context.Context, settings *models.AdminSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.doc.Admin
	c := *settings
	s.doc.Admin = &c
	if err := s.save(); err != nil {
		s.doc.Admin = prev
		return err
	}
	return nil
}
