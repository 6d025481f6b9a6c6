package models

import "time"

// Person is a report subject managed by one user.
type Person struct {
	// ID is the unique identifier, assigned by the store.
	ID int64 `json:"id"`

	// UserID is the owning account. Ownership checks match on this field.
	UserID string `json:"userId"`

	// Name is the person's display name.
	Name string `json:"name"`

	// Birthdate is the canonical YYYY-MM-DD representation.
	// Always resolvable to a valid calendar date.
	Birthdate string `json:"birthdate"`

	// OriginalDateFormat is the literal text the user typed, preserved
	// verbatim for redisplay even when it differs cosmetically from the
	// canonical value (e.g. zero-padding).
	OriginalDateFormat string `json:"originalDateFormat,omitempty"`

	// CreatedAt is when the record was created.
	CreatedAt time.Time `json:"createdAt"`
}
