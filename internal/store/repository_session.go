package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/models"
)

// sessionRepository is the SQL-backed implementation of [SessionRepository].
// It manages rows of the "sessions" table which back the portal's session
// cookies. Queries are built with squirrel.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the provided
// database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a new session row.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateSessionQuery(session)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error building query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error executing query")
		return errors.Join(ErrExecutingQuery, err)
	}

	return nil
}

// FindSessionByID looks a session up by its identifier.
//
// Error handling:
//   - Empty result set → [ErrSessionNotFound].
//   - Scan failure → wrapped in [ErrScanningRow].
func (r *sessionRepository) FindSessionByID(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindSessionByIDQuery(sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.FindSessionByID").Msg("error building query")
		return models.Session{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	var session models.Session
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&session.ID, &session.UserID, &session.CreatedAt, &session.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.FindSessionByID").Msg("error: scanning error")
		return models.Session{}, errors.Join(ErrScanningRow, err)
	}

	return session, nil
}

// DeleteSession removes a single session row. Deleting an absent session is
// not an error because logout must be idempotent.
func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteSessionQuery(sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error building query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error executing query")
		return errors.Join(ErrExecutingQuery, err)
	}

	return nil
}

// DeleteExpired removes every session whose expiry is at or before now and
// reports how many rows were removed.
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpiredSessionsQuery(now)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpired").Msg("error building query")
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpired").Msg("error executing query")
		return 0, errors.Join(ErrExecutingQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		// some drivers cannot report the affected row count
		log.Warn().Err(err).Str("func", "*sessionRepository.DeleteExpired").Msg("rows affected unavailable")
		return 0, nil
	}

	return deleted, nil
}
