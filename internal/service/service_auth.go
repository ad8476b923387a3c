package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-benefit-portal/internal/config"
	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/store"
	"github.com/MKhiriev/go-benefit-portal/internal/utils"
	"github.com/MKhiriev/go-benefit-portal/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification and the session
// lifecycle using a UserRepository and a SessionRepository for persistence
// and argon2id for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionRepository is the data-access layer for server-side session rows.
	sessionRepository store.SessionRepository

	// uuidGenerator produces session identifiers.
	uuidGenerator *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// sessionDuration controls how long a newly issued session remains valid.
	// It bounds both the session row and the token's "exp" claim.
	sessionDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from the composed settings.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, sessionRepository store.SessionRepository, settings *config.Settings, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		uuidGenerator:     utils.NewUUIDGenerator(),
		tokenSignKey:      settings.Base.SecretKey,
		tokenIssuer:       settings.Login.TokenIssuer,
		sessionDuration:   settings.Login.SessionDuration,
		logger:            logger,
	}
}

// RegisterUser creates a new portal account.
//
// It validates that both Login and Password are non-empty, derives a fresh
// per-user salt and the argon2id digest of the password, and delegates
// persistence to the UserRepository. The plain-text password never reaches
// the repository.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken — see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	salt, err := utils.NewPasswordSalt()
	if err != nil {
		log.Err(err).Msg("salt generation failed")
		return models.User{}, fmt.Errorf("salt generation failed: %w", err)
	}

	hash, err := utils.HashPassword(user.Password, salt)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user.Password = ""
	user.PasswordSalt = salt
	user.PasswordHash = hash

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates that both Login and Password are non-empty, looks the account
// up by login and verifies the password against the stored argon2id digest
// in constant time.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if !utils.VerifyPassword(user.Password, foundUser.PasswordSalt, foundUser.PasswordHash) {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("login", foundUser.Login).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	foundUser.Password = ""
	return foundUser, nil
}

// CreateSession persists a new session row for the user and issues the signed
// token that references it via the "jti" claim.
//
// Returns the token model on success or a wrapped error if the row cannot be
// stored or token generation fails.
func (a *authService) CreateSession(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	now := time.Now()
	session := models.Session{
		ID:        a.uuidGenerator.Generate(),
		UserID:    user.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionDuration),
	}

	if err := a.sessionRepository.CreateSession(ctx, session); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("session creation ended with error")
		return models.Token{}, fmt.Errorf("session creation ended with error: %w", err)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, session.ID, a.sessionDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Authenticate validates and parses a raw token string, then confirms the
// backing session row still exists and has not expired.
//
// Signature and issuer verification is delegated to
// utils.ValidateAndParseJWTToken; any validation failure (expired, wrong
// issuer, malformed) is normalised to ErrTokenIsExpiredOrInvalid so callers
// do not need to inspect low-level token errors. A valid token whose session
// row is gone or past expiry yields ErrSessionRevoked.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	session, err := a.sessionRepository.FindSessionByID(ctx, token.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Token{}, ErrSessionRevoked
		}
		log.Err(err).Str("session_id", token.SessionID).Msg("session lookup failed")
		return models.Token{}, fmt.Errorf("session lookup failed: %w", err)
	}

	if session.Expired(time.Now()) {
		return models.Token{}, ErrSessionRevoked
	}

	return token, nil
}

// Logout revokes a session by removing its row. Revoking an absent session is
// not an error so that logout stays idempotent.
func (a *authService) Logout(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	if sessionID == "" {
		return nil
	}

	if err := a.sessionRepository.DeleteSession(ctx, sessionID); err != nil {
		log.Err(err).Str("session_id", sessionID).Msg("session deletion ended with error")
		return fmt.Errorf("session deletion ended with error: %w", err)
	}

	return nil
}
