// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-bio-auth/internal/app"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/models"
)

// notFound answers unknown paths and unsupported methods on known paths
// alike, so probing a route with other methods does not reveal it.
func notFound(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("no route")

	utils.WriteJSON(w, models.ErrorResponse{
		Error: http.StatusText(http.StatusNotFound),
		Kind:  app.KindNotFound,
	}, http.StatusNotFound)
}
