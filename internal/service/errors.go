// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("account is inactive")
	ErrUserNotFound       = errors.New("user not found")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrNoEnrolledUsers is returned by biometric login when nobody can be
	// identified.
	ErrNoEnrolledUsers = errors.New("no enrolled users")

	// ErrAuditFailed is returned when an attempt could not be written to the
	// ledger. The attempt is not reported as accepted.
	ErrAuditFailed = errors.New("authentication attempt could not be recorded")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
