// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/app"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:    app.MsgStatusHealthy,
		Database:  app.MsgDatabaseConnected,
		Timestamp: time.Now().UTC(),
	}
	status := http.StatusOK

	if err := h.services.HealthService.Check(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("health check failed")
		resp.Status = app.MsgStatusUnhealthy
		resp.Database = app.MsgDatabaseUnreachable
		status = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, resp, status)
}
