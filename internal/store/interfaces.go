// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/ledger"
	"github.com/MKhiriev/go-bio-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	SetActive(ctx context.Context, userID int64, active bool) error
	CountUsers(ctx context.Context) (total int64, active int64, err error)
}

// EnrollmentRepository persists the enrolled codes of users.
type EnrollmentRepository interface {
	// CreateUserWithEnrollment stores a new user together with its codes in
	// one transaction.
	CreateUserWithEnrollment(ctx context.Context, user models.User, codes []biometric.Code) (models.User, biometric.Enrollment, error)
	GetEnrollment(ctx context.Context, userID int64) (biometric.Enrollment, error)
	// ReplaceEnrollment drops every stored code of the user and stores the
	// codes of enrollment in their place.
	ReplaceEnrollment(ctx context.Context, enrollment biometric.Enrollment) error
	ListActiveEnrollments(ctx context.Context) ([]EnrolledUser, error)
}

// AuthLogRepository is the persistent ledger of authentication attempts.
type AuthLogRepository interface {
	ledger.Ledger
	UserSummary(ctx context.Context, userID int64) (models.UserStatistics, error)
	Recent(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error)
}

// EnrolledUser pairs an active user with its stored enrollment.
type EnrolledUser struct {
	User       models.User
	Enrollment biometric.Enrollment
}
