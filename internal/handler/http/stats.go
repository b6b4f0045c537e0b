// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/models"
)

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	userID, err := userFromRequest(r)
	if err != nil {
		unauthorized(w, err)
		return
	}

	system, err := h.services.StatsService.SystemStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.StatsService.UserStats(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatsResponse{System: system, User: user}, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	userID, err := userFromRequest(r)
	if err != nil {
		unauthorized(w, err)
		return
	}

	profile, err := h.services.StatsService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
