// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/encoder"
	"github.com/MKhiriev/go-bio-auth/internal/handler"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/server"
	"github.com/MKhiriev/go-bio-auth/internal/service"
	"github.com/MKhiriev/go-bio-auth/internal/store"
	"github.com/MKhiriev/go-bio-auth/internal/workers"
	"github.com/MKhiriev/go-bio-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("go-bio-auth-server").Fatal().Err(err).Msg("error getting configs")
	}

	log, closer, err := logger.New("go-bio-auth-server", cfg.Log)
	if err != nil {
		logger.NewLogger("go-bio-auth-server").Fatal().Err(err).Msg("error creating logger")
	}
	defer closer.Close()

	if buildInfo.HasVersion() {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Int("bit_length", cfg.Biometric.BitLength).
		Str("fusion", cfg.Biometric.Fusion).
		Msg("received configs")

	db, err := store.NewDB(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	enc, err := encoder.NewPerceptualEncoder(cfg.Biometric.BitLength, encoder.WithMaxPixels(cfg.Biometric.MaxImagePixels))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating encoder")
	}

	services, err := service.NewServices(storages, enc, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	var status workers.StatusSetter
	if handlers.GRPC != nil {
		status = handlers.GRPC
	}
	bg := workers.NewWorkers(services.StatsService, services.HealthService, status, cfg.Workers, log)

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
