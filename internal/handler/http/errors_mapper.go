// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bio-auth/internal/app"
	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/service"
	"github.com/MKhiriev/go-bio-auth/internal/store"
	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/models"
)

type errorClass struct {
	target error
	status int
	kind   string
}

// errorClasses is matched in order; the first match wins.
var errorClasses = []errorClass{
	{biometric.ErrDimensionMismatch, http.StatusInternalServerError, app.KindInternal},
	{biometric.ErrInvalidThreshold, http.StatusBadRequest, app.KindInvalidThreshold},
	{biometric.ErrSampleEncodingFailed, http.StatusBadRequest, app.KindSampleEncoding},
	{biometric.ErrEnrollmentIncomplete, http.StatusUnprocessableEntity, app.KindEnrollmentIncomplete},
	{utils.ErrRequestBodyTooLarge, http.StatusRequestEntityTooLarge, app.KindRequestTooLarge},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.KindInvalidRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.KindInvalidCredentials},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.KindUnauthorized},
	{service.ErrUserInactive, http.StatusForbidden, app.KindUserInactive},
	{service.ErrUserNotFound, http.StatusNotFound, app.KindNotFound},
	{service.ErrNoEnrolledUsers, http.StatusNotFound, app.KindNoEnrolledUsers},
	{service.ErrAuditFailed, http.StatusServiceUnavailable, app.KindAuditFailed},
	{store.ErrUsernameAlreadyExists, http.StatusConflict, app.KindAlreadyExists},
	{store.ErrAlreadyExists, http.StatusConflict, app.KindAlreadyExists},
	{store.ErrNoUserWasFound, http.StatusNotFound, app.KindNotFound},
	{store.ErrStorageUnavailable, http.StatusServiceUnavailable, app.KindUnavailable},
}

func classifyError(err error) (int, string) {
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c.status, c.kind
		}
	}
	return http.StatusInternalServerError, app.KindInternal
}

// writeError logs err and writes the {error, kind} body. Internal failures
// are reported without their cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classifyError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("kind", kind).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("kind", kind).Msg("request rejected")
	}

	message := err.Error()
	if kind == app.KindInternal {
		message = http.StatusText(status)
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message, Kind: kind}, status)
}
