package store

import "github.com/MKhiriev/go-benefit-portal/internal/logger"

// Storages bundles all repository implementations behind their interfaces so
// the service layer can receive them as a single dependency.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository
}

// NewStorages wires every repository to the shared database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		SessionRepository: NewSessionRepository(db, logger),
	}
}
