// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/service"
)

// ServiceName is the name under which the verification service reports its
// health.
const ServiceName = "bioauth.Verification"

// Handler is the root gRPC transport handler.
//
// It exposes the standard gRPC health service, whose serving status follows
// the database health, and server reflection.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The health status starts as NOT_SERVING
// until the first successful health check.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the health and reflection services to srv.
func (h *Handler) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, h.health)
	reflection.Register(srv)
}

// SetServing updates the reported status of the overall server and of
// [ServiceName].
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Shutdown marks every service NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.logger.Debug().Msg("gRPC health set to NOT_SERVING for shutdown")
	h.health.Shutdown()
}
