package service

import (
	"context"

	"github.com/MKhiriev/go-benefit-portal/models"
)

type AuthService interface {
	// RegisterUser creates a new portal account from a login, display name
	// and plain-text password.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login verifies the supplied credentials against the stored account.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CreateSession persists a new session row for the user and issues the
	// signed token that references it.
	CreateSession(ctx context.Context, user models.User) (models.Token, error)

	// Authenticate validates a raw token string and confirms its backing
	// session row still exists and has not expired.
	Authenticate(ctx context.Context, tokenString string) (models.Token, error)

	// Logout revokes a session by removing its row. Revoking an absent
	// session is not an error.
	Logout(ctx context.Context, sessionID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
