// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bio-auth/internal/validators"
	"github.com/MKhiriev/go-bio-auth/models"
)

// VerificationValidationService rejects malformed requests before they reach
// the wrapped VerificationService. Rejected requests never touch the ledger.
type VerificationValidationService struct {
	inner     VerificationService
	validator validators.Validator
}

func NewVerificationValidationService() VerificationServiceWrapper {
	return &VerificationValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *VerificationValidationService) Verify(ctx context.Context, req models.VerificationRequest) (models.VerificationResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.VerificationResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Verify(ctx, req)
}

func (v *VerificationValidationService) Identify(ctx context.Context, req models.LoginRequest) (models.IdentificationResult, error) {
	if err := v.validator.Validate(ctx, req, validators.FieldFaceImage, validators.FieldFingerprintImage); err != nil {
		return models.IdentificationResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Identify(ctx, req)
}

func (v *VerificationValidationService) ReEnroll(ctx context.Context, req models.EnrollmentRequest) (models.EnrollmentResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.EnrollmentResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ReEnroll(ctx, req)
}

func (v *VerificationValidationService) Wrap(wrapper VerificationService) VerificationService {
	v.inner = wrapper
	return v
}
