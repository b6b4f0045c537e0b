// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/crypto"
	"github.com/MKhiriev/go-bio-auth/internal/encoder"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/store"
)

type Services struct {
	AuthService         AuthService
	VerificationService VerificationService
	StatsService        StatsService
	AppInfoService      AppInfoService
	HealthService       HealthService
}

// NewServices wires every service onto storages. enc is wrapped with the
// configured encode timeout.
func NewServices(storages *store.Storages, enc encoder.Encoder, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	policy, err := cfg.Biometric.ThresholdPolicy()
	if err != nil {
		return nil, fmt.Errorf("threshold policy: %w", err)
	}
	fusion, err := cfg.Biometric.FusionRule()
	if err != nil {
		return nil, fmt.Errorf("fusion rule: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Biometric.EncodeTimeout > 0 {
		enc = encoder.WithTimeout(enc, cfg.Biometric.EncodeTimeout)
	}

	verification := NewVerificationValidationService().Wrap(
		NewVerificationService(
			storages.UserRepository,
			storages.EnrollmentRepository,
			storages.AuthLogRepository,
			enc,
			biometric.NewMatcher(fusion),
			policy,
			logger,
		),
	)

	return &Services{
		AuthService: NewAuthService(
			storages.UserRepository,
			storages.EnrollmentRepository,
			storages.AuthLogRepository,
			enc,
			crypto.NewBcryptHasher(cfg.App.PasswordCost),
			cfg.App,
			logger,
		),
		VerificationService: verification,
		StatsService:        NewStatsService(storages.UserRepository, storages.AuthLogRepository, logger),
		AppInfoService:      appInfo,
		HealthService:       NewHealthService(storages.DB),
	}, nil
}
