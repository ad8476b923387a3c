package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-benefit-portal/internal/analytics"
	"github.com/MKhiriev/go-benefit-portal/internal/config"
	"github.com/MKhiriev/go-benefit-portal/internal/handler"
	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/render"
	"github.com/MKhiriev/go-benefit-portal/internal/server"
	"github.com/MKhiriev/go-benefit-portal/internal/service"
	"github.com/MKhiriev/go-benefit-portal/internal/store"
	"github.com/MKhiriev/go-benefit-portal/internal/utils"
	"github.com/MKhiriev/go-benefit-portal/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("benefit-portal")

	settings, err := config.GetSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("error composing settings")
	}
	logger.ApplyLevel(settings.Logging.Level)

	log.Debug().Any("settings", settings).Msg("composed settings")

	ctx := context.Background()

	db, err := store.NewDatabase(ctx, settings.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	services, err := service.NewServices(storages, settings, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	renderer, err := render.NewRenderer(settings.Templates, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing templates")
	}

	httpClient := utils.NewHTTPClient(settings.Base.RequestTimeout)
	tracker := analytics.NewTracker(settings.Matomo.URL, settings.Matomo.SiteID, httpClient, log)

	handlers, err := handler.NewHandlers(services, renderer, tracker, settings, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	pruner := workers.NewSessionPruner(storages.SessionRepository, db, settings.Workers.PruneInterval, log)

	srv, err := server.NewServer(handlers, []workers.Worker{pruner}, settings.Base, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
