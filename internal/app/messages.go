// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the wire vocabulary shared by the HTTP handlers and the
// client: error kinds reported in the "kind" field of error bodies and the
// human-readable messages written on success.
package app

// Error kinds.
const (
	KindInvalidRequest       = "invalid_request"
	KindRequestTooLarge      = "request_too_large"
	KindInvalidThreshold     = "invalid_threshold"
	KindSampleEncoding       = "sample_encoding_failed"
	KindEnrollmentIncomplete = "enrollment_incomplete"
	KindInvalidCredentials   = "invalid_credentials"
	KindBiometricMismatch    = "biometric_mismatch"
	KindUserInactive         = "user_inactive"
	KindUnauthorized         = "unauthorized"
	KindNotFound             = "not_found"
	KindNoEnrolledUsers      = "no_enrolled_users"
	KindAlreadyExists        = "already_exists"
	KindUnavailable          = "unavailable"
	KindAuditFailed          = "audit_failed"
	KindInternal             = "internal"
)

const (
	MsgUserRegistered           = "User registered successfully"
	MsgLoginSuccessful          = "Login successful"
	MsgBiometricLoginSuccessful = "Biometric login successful"

	// MsgBiometricAuthFailed accompanies a rejected biometric login together
	// with the distance and threshold of the best candidate.
	MsgBiometricAuthFailed = "Biometric authentication failed"

	MsgStatusHealthy       = "healthy"
	MsgStatusUnhealthy     = "unhealthy"
	MsgDatabaseConnected   = "connected"
	MsgDatabaseUnreachable = "disconnected"
)

// Retryable reports whether a request that failed with kind may succeed when
// repeated, possibly with a fresh sample.
func Retryable(kind string) bool {
	switch kind {
	case KindSampleEncoding, KindBiometricMismatch, KindUnavailable, KindAuditFailed:
		return true
	default:
		return false
	}
}
