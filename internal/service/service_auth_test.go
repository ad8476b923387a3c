package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-benefit-portal/internal/config"
	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/store"
	"github.com/MKhiriev/go-benefit-portal/internal/utils"
	"github.com/MKhiriev/go-benefit-portal/models"
)

type mockUserRepository struct {
	createUserFunc      func(ctx context.Context, user models.User) (models.User, error)
	findUserByLoginFunc func(ctx context.Context, login string) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUserFunc(ctx, user)
}

func (m *mockUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	return m.findUserByLoginFunc(ctx, login)
}

type mockSessionRepository struct {
	createSessionFunc   func(ctx context.Context, session models.Session) error
	findSessionByIDFunc func(ctx context.Context, sessionID string) (models.Session, error)
	deleteSessionFunc   func(ctx context.Context, sessionID string) error
	deleteExpiredFunc   func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockSessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	return m.createSessionFunc(ctx, session)
}

func (m *mockSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (models.Session, error) {
	return m.findSessionByIDFunc(ctx, sessionID)
}

func (m *mockSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return m.deleteSessionFunc(ctx, sessionID)
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return m.deleteExpiredFunc(ctx, now)
}

func newTestAuthService(users store.UserRepository, sessions store.SessionRepository) AuthService {
	settings := &config.Settings{}
	settings.Base.SecretKey = "test-secret"
	settings.Login.TokenIssuer = "benefit-portal"
	settings.Login.SessionDuration = 30 * time.Minute
	return NewAuthService(users, sessions, settings, logger.Nop())
}

// ─────────────────────────────────────────────
// RegisterUser
// ─────────────────────────────────────────────

func TestRegisterUser_HashesPasswordBeforePersisting(t *testing.T) {
	var persisted models.User
	users := &mockUserRepository{
		createUserFunc: func(ctx context.Context, user models.User) (models.User, error) {
			persisted = user
			user.UserID = 1
			return user, nil
		},
	}
	svc := newTestAuthService(users, &mockSessionRepository{})

	created, err := svc.RegisterUser(context.Background(), models.User{Login: "john", Password: "s3cret"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Empty(t, persisted.Password)
	require.NotEmpty(t, persisted.PasswordSalt)
	require.NotEmpty(t, persisted.PasswordHash)
	assert.True(t, utils.VerifyPassword("s3cret", persisted.PasswordSalt, persisted.PasswordHash))
}

func TestRegisterUser_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionRepository{})

	tests := []struct {
		name string
		user models.User
	}{
		{"empty login", models.User{Password: "pw"}},
		{"empty password", models.User{Login: "john"}},
		{"both empty", models.User{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), tt.user)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestRegisterUser_LoginTaken(t *testing.T) {
	users := &mockUserRepository{
		createUserFunc: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, store.ErrLoginAlreadyExists
		},
	}
	svc := newTestAuthService(users, &mockSessionRepository{})

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "john", Password: "pw"})

	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func storedUser(t *testing.T, login, password string) models.User {
	t.Helper()
	salt, err := utils.NewPasswordSalt()
	require.NoError(t, err)
	hash, err := utils.HashPassword(password, salt)
	require.NoError(t, err)
	return models.User{UserID: 42, Login: login, PasswordSalt: salt, PasswordHash: hash}
}

func TestLogin_Success(t *testing.T) {
	stored := storedUser(t, "john", "s3cret")
	users := &mockUserRepository{
		findUserByLoginFunc: func(ctx context.Context, login string) (models.User, error) {
			assert.Equal(t, "john", login)
			return stored, nil
		},
	}
	svc := newTestAuthService(users, &mockSessionRepository{})

	found, err := svc.Login(context.Background(), models.User{Login: "john", Password: "s3cret"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), found.UserID)
	assert.Empty(t, found.Password)
}

func TestLogin_WrongPassword(t *testing.T) {
	stored := storedUser(t, "john", "s3cret")
	users := &mockUserRepository{
		findUserByLoginFunc: func(ctx context.Context, login string) (models.User, error) {
			return stored, nil
		},
	}
	svc := newTestAuthService(users, &mockSessionRepository{})

	_, err := svc.Login(context.Background(), models.User{Login: "john", Password: "wrong"})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := &mockUserRepository{
		findUserByLoginFunc: func(ctx context.Context, login string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestAuthService(users, &mockSessionRepository{})

	_, err := svc.Login(context.Background(), models.User{Login: "ghost", Password: "pw"})

	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

// ─────────────────────────────────────────────
// CreateSession / Authenticate / Logout
// ─────────────────────────────────────────────

func TestCreateSession_PersistsRowAndIssuesToken(t *testing.T) {
	var created models.Session
	sessions := &mockSessionRepository{
		createSessionFunc: func(ctx context.Context, session models.Session) error {
			created = session
			return nil
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, sessions)

	token, err := svc.CreateSession(context.Background(), models.User{UserID: 42})

	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, int64(42), created.UserID)
	assert.True(t, created.ExpiresAt.After(created.CreatedAt))
	assert.Equal(t, created.ID, token.SessionID)
	assert.Equal(t, int64(42), token.UserID)
	assert.NotEmpty(t, token.String())
}

func TestCreateSession_StorageFailure(t *testing.T) {
	sessions := &mockSessionRepository{
		createSessionFunc: func(ctx context.Context, session models.Session) error {
			return errors.New("disk full")
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, sessions)

	_, err := svc.CreateSession(context.Background(), models.User{UserID: 42})

	require.Error(t, err)
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	var created models.Session
	sessions := &mockSessionRepository{
		createSessionFunc: func(ctx context.Context, session models.Session) error {
			created = session
			return nil
		},
		findSessionByIDFunc: func(ctx context.Context, sessionID string) (models.Session, error) {
			assert.Equal(t, created.ID, sessionID)
			return created, nil
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, sessions)

	issued, err := svc.CreateSession(context.Background(), models.User{UserID: 42})
	require.NoError(t, err)

	token, err := svc.Authenticate(context.Background(), issued.String())

	require.NoError(t, err)
	assert.Equal(t, int64(42), token.UserID)
	assert.Equal(t, created.ID, token.SessionID)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionRepository{})

	_, err := svc.Authenticate(context.Background(), "not.a.token")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthenticate_RevokedSession(t *testing.T) {
	sessions := &mockSessionRepository{
		createSessionFunc: func(ctx context.Context, session models.Session) error { return nil },
		findSessionByIDFunc: func(ctx context.Context, sessionID string) (models.Session, error) {
			return models.Session{}, store.ErrSessionNotFound
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, sessions)

	issued, err := svc.CreateSession(context.Background(), models.User{UserID: 42})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), issued.String())

	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestAuthenticate_ExpiredSessionRow(t *testing.T) {
	var created models.Session
	sessions := &mockSessionRepository{
		createSessionFunc: func(ctx context.Context, session models.Session) error {
			created = session
			return nil
		},
		findSessionByIDFunc: func(ctx context.Context, sessionID string) (models.Session, error) {
			// the row outlived its expiry but the pruner has not swept it yet
			expired := created
			expired.ExpiresAt = time.Now().Add(-time.Minute)
			return expired, nil
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, sessions)

	issued, err := svc.CreateSession(context.Background(), models.User{UserID: 42})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), issued.String())

	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestLogout_DeletesSession(t *testing.T) {
	var deleted string
	sessions := &mockSessionRepository{
		deleteSessionFunc: func(ctx context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, sessions)

	err := svc.Logout(context.Background(), "sess-1")

	require.NoError(t, err)
	assert.Equal(t, "sess-1", deleted)
}

func TestLogout_EmptySessionIDIsNoop(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionRepository{})

	err := svc.Logout(context.Background(), "")

	require.NoError(t, err)
}
