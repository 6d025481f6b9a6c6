package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user account can hold. Admins additionally manage global
// settings and other users' report limits.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique, used for login).
	Email string `json:"email"`

	// DisplayName is the name shown in the UI.
	DisplayName string `json:"displayName"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Present in the at-rest document; never returned by the API.
	PasswordHash string `json:"passwordHash"`

	// Role is either RoleUser or RoleAdmin.
	Role string `json:"role"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser creates a user with a fresh UUID and creation timestamp.
func NewUser(email, displayName, passwordHash, role string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}
