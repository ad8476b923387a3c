package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-benefit-portal/models"
)

const (
	createUser = `INSERT INTO users (login, name, password_hash, password_salt)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, name, password_hash, password_salt, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, password_salt, created_at
    FROM users
    WHERE login = $1;`
)

// psql is the shared statement builder for the session queries. The dollar
// placeholder format is understood by both backends.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildCreateSessionQuery(session models.Session) (string, []any, error) {
	return psql.Insert(session.TableName()).
		Columns("id", "user_id", "created_at", "expires_at").
		Values(session.ID, session.UserID, session.CreatedAt, session.ExpiresAt).
		ToSql()
}

func buildFindSessionByIDQuery(sessionID string) (string, []any, error) {
	return psql.Select("id", "user_id", "created_at", "expires_at").
		From(models.Session{}.TableName()).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
}

func buildDeleteSessionQuery(sessionID string) (string, []any, error) {
	return psql.Delete(models.Session{}.TableName()).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
}

func buildDeleteExpiredSessionsQuery(now time.Time) (string, []any, error) {
	return psql.Delete(models.Session{}.TableName()).
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
}
