package service

import (
	"github.com/MKhiriev/go-benefit-portal/internal/config"
	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/store"
)

type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, settings *config.Settings, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(settings.Base, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.SessionRepository, settings, logger),
		AppInfoService: appInfoService,
	}, nil
}
