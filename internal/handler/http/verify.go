// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/service"
	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/models"
)

// verify answers whether the posted samples belong to the caller. A rejected
// attempt is a normal 200 response with verified=false.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userFromRequest(r)
	if err != nil {
		unauthorized(w, err)
		return
	}

	var req models.VerificationRequest
	if err = utils.DecodeJSON(w, r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.verify").Msg("Invalid JSON was passed")
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}
	req.UserID = userID

	result, err := h.services.VerificationService.Verify(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	username, _ := utils.GetUsernameFromContext(r.Context())
	log.Info().
		Int64("user_id", userID).
		Str("username", username).
		Bool("verified", result.Verified).
		Float64("distance", result.Distance).
		Float64("threshold", result.Threshold).
		Msg("verification decided")

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) reEnroll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userFromRequest(r)
	if err != nil {
		unauthorized(w, err)
		return
	}

	var req models.EnrollmentRequest
	if err = utils.DecodeJSON(w, r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.reEnroll").Msg("Invalid JSON was passed")
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}
	req.UserID = userID

	resp, err := h.services.VerificationService.ReEnroll(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
