package models

import "time"

// User represents a portal account used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in rendered pages.
	Name string `json:"name"`

	// Password carries the plain-text password only on inbound
	// register/login requests. It is hashed with argon2id before any
	// persistence and is never written back to a response.
	Password string `json:"password,omitempty"`

	// PasswordHash is the argon2id digest of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// PasswordSalt is the per-user random salt used for the argon2id
	// derivation. Never serialized.
	PasswordSalt string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
