package models

import "time"

// Session is the server-side record of an issued browser session.
// The session ID doubles as the JWT "jti" claim so that a cookie can be
// matched against its database row and revoked before the token expires.
type Session struct {
	// ID is the session identifier (UUID v4).
	ID string `json:"-"`

	// UserID is the owner of the session.
	UserID int64 `json:"-"`

	// CreatedAt is when the session was issued.
	CreatedAt time.Time `json:"-"`

	// ExpiresAt is when the session stops being accepted regardless of
	// token validity. Expired rows are removed by the pruning worker.
	ExpiresAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
