// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-bio-auth/internal/app"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/service"
	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/models"
)

// biometricFailureResponse is the 401 body of a rejected biometric login.
type biometricFailureResponse struct {
	models.ErrorResponse
	Distance  float64 `json:"hamming_distance"`
	Threshold float64 `json:"threshold"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{
		Message: app.MsgUserRegistered,
		Token:   token.SignedString,
		User:    registeredUser,
	}, http.StatusCreated)
}

// login authenticates with a password or, when both images are present,
// by biometric identification.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	var (
		user models.User
		resp models.AuthResponse
	)
	switch req.Method() {
	case models.LoginMethodBiometric:
		res, err := h.services.VerificationService.Identify(ctx, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if !res.Verified {
			log.Warn().Float64("distance", res.Distance).Msg("biometric login rejected")
			utils.WriteJSON(w, biometricFailureResponse{
				ErrorResponse: models.ErrorResponse{Error: app.MsgBiometricAuthFailed, Kind: app.KindBiometricMismatch},
				Distance:      res.Distance,
				Threshold:     res.Threshold,
			}, http.StatusUnauthorized)
			return
		}
		user = res.User
		resp.Message = app.MsgBiometricLoginSuccessful
		resp.Distance = models.Float64(res.Distance)
		resp.Threshold = models.Float64(res.Threshold)
	default:
		found, err := h.services.AuthService.Login(ctx, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		user = found
		resp.Message = app.MsgLoginSuccessful
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, r, err)
		return
	}

	resp.Token = token.SignedString
	resp.User = user

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, resp, http.StatusOK)
}
