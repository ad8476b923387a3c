package http

import (
	"github.com/MKhiriev/go-benefit-portal/internal/analytics"
	"github.com/MKhiriev/go-benefit-portal/internal/config"
	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/render"
	"github.com/MKhiriev/go-benefit-portal/internal/service"
)

type Handler struct {
	services *service.Services
	renderer *render.Renderer
	tracker  *analytics.Tracker
	settings *config.Settings

	logger *logger.Logger
}

func NewHandler(services *service.Services, renderer *render.Renderer, tracker *analytics.Tracker, settings *config.Settings, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		renderer: renderer,
		tracker:  tracker,
		settings: settings,
		logger:   logger,
	}
}
