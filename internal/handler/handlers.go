package handler

import (
	"github.com/MKhiriev/go-benefit-portal/internal/analytics"
	"github.com/MKhiriev/go-benefit-portal/internal/config"
	"github.com/MKhiriev/go-benefit-portal/internal/handler/http"
	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/render"
	"github.com/MKhiriev/go-benefit-portal/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, renderer *render.Renderer, tracker *analytics.Tracker, settings *config.Settings, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if settings.Base.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, renderer, tracker, settings, logger),
	}, nil
}
