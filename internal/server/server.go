// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/handler"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/workers"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	workers    *workers.Workers
	logger     *logger.Logger

	// stop cancels the run context; set by run.
	mu   sync.Mutex
	stop context.CancelFunc
}

// NewServer creates a server for every handler present. bg may be nil.
func NewServer(handlers *handler.Handlers, bg *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{workers: bg, logger: logger}

	if handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.gRPCServer = grpcSrv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// RunServer blocks until SIGTERM, SIGINT or SIGQUIT arrives or Shutdown is
// called, then stops every server and waits for the workers.
func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Err(err).Msg("Error running server")
	}
}

// Shutdown requests the running server to stop.
func (s *server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		s.stop()
	}
}

func (s *server) shutdownServers() {
	// finish HTTP server
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
}

func (s *server) run() error {
	// check if any server was created
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersToRun
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.mu.Lock()
	s.stop = stop
	s.mu.Unlock()

	var wg sync.WaitGroup
	if s.workers != nil {
		wg.Go(func() { s.workers.Run(ctx) })
	}

	// launch all created servers
	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		go s.httpServer.RunServer()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("Launching GRPC server")
		go s.gRPCServer.RunServer()
	}

	<-ctx.Done()

	// finish started servers
	s.shutdownServers()
	wg.Wait()

	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
