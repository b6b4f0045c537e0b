// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the go-bio-auth server.
//
// [ServerAdapter] decouples the command-line client from the protocol; the
// package ships an HTTP/REST implementation ([NewHTTPServerAdapter]) built on
// resty.
//
// Error bodies returned by the server are decoded into [*ServerError], which
// unwraps to the sentinel values in errors.go so callers can use [errors.Is]
// (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-bio-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the go-bio-auth server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Register creates an account enrolled with the request's samples and
	// stores the issued token.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates with a password or, when both images are set, by
	// biometric identification, and stores the issued token. A rejected
	// biometric login returns a [*ServerError] carrying the distance and
	// threshold of the best candidate.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Verify compares fresh samples against the authenticated user's
	// enrollment. A rejection is not an error.
	Verify(ctx context.Context, req models.VerificationRequest) (models.VerificationResult, error)

	// ReEnroll replaces the authenticated user's enrollment.
	ReEnroll(ctx context.Context, req models.EnrollmentRequest) (models.EnrollmentResponse, error)

	// Stats returns system-wide and per-user statistics.
	Stats(ctx context.Context) (models.StatsResponse, error)

	// Profile returns the authenticated user and their recent attempts.
	Profile(ctx context.Context) (models.Profile, error)

	// Health reports server and database health. An unhealthy server
	// returns the decoded body together with [ErrUnavailable].
	Health(ctx context.Context) (models.HealthResponse, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
