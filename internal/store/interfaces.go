package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-benefit-portal/models"
)

// UserRepository is the data-access contract for portal accounts.
type UserRepository interface {
	// CreateUser persists a new user and returns it with server-assigned
	// fields populated. Returns [ErrLoginAlreadyExists] when the login is
	// taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin looks an account up by its login. Returns
	// [ErrNoUserWasFound] when no row matches.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// SessionRepository is the data-access contract for server-side session
// records backing the session cookies.
type SessionRepository interface {
	// CreateSession persists a new session row.
	CreateSession(ctx context.Context, session models.Session) error

	// FindSessionByID looks a session up by its identifier. Returns
	// [ErrSessionNotFound] when no row matches.
	FindSessionByID(ctx context.Context, sessionID string) (models.Session, error)

	// DeleteSession removes a single session (logout / revocation).
	// Deleting an absent session is not an error.
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteExpired removes every session whose expiry is at or before now
	// and reports how many rows were removed. Called by the pruning worker.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
