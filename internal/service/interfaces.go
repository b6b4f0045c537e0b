// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-bio-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/servicemock/service_mock.go -package=servicemock

type AuthService interface {
	// RegisterUser creates the account and its enrollment from both samples.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	// Login authenticates with username and password.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type VerificationService interface {
	// Verify compares fresh samples with the enrollment of req.UserID.
	Verify(ctx context.Context, req models.VerificationRequest) (models.VerificationResult, error)
	// Identify finds the closest active enrolled user (biometric login).
	Identify(ctx context.Context, req models.LoginRequest) (models.IdentificationResult, error)
	// ReEnroll replaces the enrollment of req.UserID.
	ReEnroll(ctx context.Context, req models.EnrollmentRequest) (models.EnrollmentResponse, error)
}

// VerificationServiceWrapper decorates a VerificationService with additional
// behavior such as validation.
type VerificationServiceWrapper interface {
	Wrap(VerificationService) VerificationService
}

type StatsService interface {
	SystemStats(ctx context.Context) (models.SystemStatistics, error)
	UserStats(ctx context.Context, userID int64) (models.UserStatistics, error)
	Profile(ctx context.Context, userID int64) (models.Profile, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

type HealthService interface {
	Check(ctx context.Context) error
}
