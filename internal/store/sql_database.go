package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/MKhiriev/go-benefit-portal/internal/config"
	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/migrations"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	dialect            string
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. The session pruning worker consults it before rescheduling a
// failed sweep.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// NewDatabase opens the database named by the composed settings. A
// "postgres://" (or "postgresql://") DSN selects the pgx driver; any other
// non-empty DSN is treated as an SQLite file path.
func NewDatabase(ctx context.Context, cfg config.Database, log *logger.Logger) (*DB, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return NewConnectPostgres(ctx, cfg, log)
	}

	return NewConnectSQLite(ctx, cfg, log)
}

// Migrate applies all embedded goose migrations to the connected database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Classify exposes the backend-specific error classification to callers
// holding only the *DB.
func (db *DB) Classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}

	return db.errorClassificator.Classify(err)
}
