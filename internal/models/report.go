package models

import "time"

// ReportType enumerates the report flavors the application generates.
type ReportType string

const (
	ReportYearly       ReportType = "yearly"
	ReportLife         ReportType = "life"
	ReportRelationship ReportType = "relationship"
	ReportFinancial    ReportType = "financial"
	ReportSingles      ReportType = "singles"
	ReportChildrens    ReportType = "childrens-life"
)

// Valid reports whether t is one of the known report types.
func (t ReportType) Valid() bool {
	switch t {
	case ReportYearly, ReportLife, ReportRelationship, ReportFinancial, ReportSingles, ReportChildrens:
		return true
	}
	return false
}

// RequiresPartner reports whether the type needs a second person.
// Invariant: a report has a non-nil Person2ID iff its type requires one.
func (t ReportType) RequiresPartner() bool {
	return t == ReportRelationship
}

// Report is one generated report record in the ledger.
// Immutable after creation except for Content/PDFURL patch updates by
// its owner.
type Report struct {
	// ID is unique and monotonically assigned by the store; ids are
	// never reused after deletion.
	ID int64 `json:"id"`

	// Type is the report flavor.
	Type ReportType `json:"type"`

	// Person1ID is the report subject.
	Person1ID int64 `json:"person1Id"`

	// Person2ID is the partner, set only for relationship reports.
	Person2ID *int64 `json:"person2Id"`

	// CustomAge overrides the computed age when set.
	CustomAge *int `json:"customAge"`

	// Content is the report body. Opaque to the ledger.
	Content string `json:"content"`

	// PDFURL is set by the rendering step once a PDF exists.
	PDFURL *string `json:"pdfUrl"`

	// TokensUsed is the token count charged for generation.
	TokensUsed int64 `json:"tokensUsed"`

	// Cost is the billed amount for generation.
	Cost float64 `json:"cost"`

	// UserID is the owning account.
	UserID string `json:"userId"`

	// CreatedAt is set once at creation and never changes.
	CreatedAt time.Time `json:"createdAt"`
}

// ReportWithNames is a Report enriched for display with the subjects'
// names resolved from the person collection.
type ReportWithNames struct {
	Report

	// Person1Name is the subject's name, or "Unknown" when the person
	// record no longer exists.
	Person1Name string `json:"person1Name"`

	// Person2Name is the partner's name for relationship reports.
	Person2Name string `json:"person2Name,omitempty"`
}

// ReportPatch is the mutable surface of a report. Every other field is
// immutable after creation, so ownership and identity cannot be
// rewritten through an update.
type ReportPatch struct {
	Content *string `json:"content"`
	PDFURL  *string `json:"pdfUrl"`
}
