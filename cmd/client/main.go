// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-bio-auth/internal/adapter"
	"github.com/MKhiriev/go-bio-auth/internal/client"
	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "build-info" {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return
	}

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("go-bio-auth-client").Fatal().Err(err).Msg("error getting configs")
	}

	log, closer, err := logger.New("go-bio-auth-client", cfg.Log)
	if err != nil {
		logger.NewLogger("go-bio-auth-client").Fatal().Err(err).Msg("error creating logger")
	}
	defer closer.Close()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(serverAdapter, client.NewFileTokenStore(cfg.Adapter.TokenFile), os.Stdout, log)
	if err = app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		closer.Close()
		os.Exit(1)
	}
}
