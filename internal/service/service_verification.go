// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/encoder"
	"github.com/MKhiriev/go-bio-auth/internal/ledger"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/store"
	"github.com/MKhiriev/go-bio-auth/models"
)

// verificationService is the concrete implementation of VerificationService.
//
// It owns no mutable state: the threshold policy and matcher are fixed at
// construction and the per-request threshold is resolved on every call.
type verificationService struct {
	userRepository       store.UserRepository
	enrollmentRepository store.EnrollmentRepository
	ledger               ledger.Ledger
	encoder              encoder.Encoder
	matcher              *biometric.Matcher
	policy               biometric.ThresholdPolicy
	now                  func() time.Time
	logger               *logger.Logger
}

// NewVerificationService builds a VerificationService.
func NewVerificationService(
	users store.UserRepository,
	enrollments store.EnrollmentRepository,
	l ledger.Ledger,
	enc encoder.Encoder,
	matcher *biometric.Matcher,
	policy biometric.ThresholdPolicy,
	logger *logger.Logger,
) VerificationService {
	return &verificationService{
		userRepository:       users,
		enrollmentRepository: enrollments,
		ledger:               l,
		encoder:              enc,
		matcher:              matcher,
		policy:               policy,
		now:                  time.Now,
		logger:               logger,
	}
}

// Verify compares freshly captured samples against the enrollment of
// req.UserID.
//
// Exactly one ledger entry is written for every attempt that reaches a
// verdict. Attempts that fail before a distance exists (invalid threshold,
// incomplete enrollment, unreadable sample) leave the ledger untouched.
// A verdict that cannot be recorded is reported as [ErrAuditFailed] and is
// never returned as accepted.
func (v *verificationService) Verify(ctx context.Context, req models.VerificationRequest) (models.VerificationResult, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", req.UserID).Logger()

	threshold, err := v.policy.Resolve(req.Threshold)
	if err != nil {
		log.Warn().Err(err).Msg("threshold override rejected")
		return models.VerificationResult{}, err
	}

	user, err := v.findUser(ctx, req.UserID)
	if err != nil {
		return models.VerificationResult{}, err
	}

	enrollment, err := v.enrollmentRepository.GetEnrollment(ctx, user.UserID)
	if err != nil {
		log.Err(err).Msg("loading enrollment failed")
		return models.VerificationResult{}, fmt.Errorf("loading enrollment: %w", err)
	}
	if err = enrollment.Verifiable(v.matcher.Required()...); err != nil {
		log.Warn().Err(err).Msg("verification against incomplete enrollment")
		return models.VerificationResult{}, err
	}

	presented, err := encodeSamples(ctx, v.encoder, user.UserID, sampleImages(req.FaceImage, req.FingerprintImage))
	if err != nil {
		log.Warn().Err(err).Msg("encoding verification samples failed")
		return models.VerificationResult{}, err
	}

	score, err := v.matcher.Compare(enrollment, presented)
	if err != nil {
		log.Err(err).Msg("comparing codes failed")
		return models.VerificationResult{}, err
	}

	verified := biometric.Decide(score.Distance, threshold)
	now := v.now().UTC()

	if err = v.ledger.Record(ctx, models.LedgerEntry{
		UserID:     user.UserID,
		Timestamp:  now,
		Method:     models.AuthMethodVerification,
		Distance:   models.Float64(score.Distance),
		Threshold:  models.Float64(threshold),
		Verified:   verified,
		TrialLabel: req.TrialLabel,
	}); err != nil {
		log.Err(err).Msg("recording verification attempt failed")
		return models.VerificationResult{}, fmt.Errorf("%w: %w", ErrAuditFailed, err)
	}

	log.Info().
		Bool("verified", verified).
		Float64("distance", score.Distance).
		Float64("threshold", threshold).
		Msg("verification completed")

	return models.VerificationResult{
		Verified:          verified,
		Distance:          score.Distance,
		HammingDistance:   score.Distance,
		Threshold:         threshold,
		Username:          user.Username,
		UserID:            user.UserID,
		Timestamp:         now,
		ModalityDistances: modalityDistances(score.Modalities),
	}, nil
}

// Identify encodes the samples once and compares them with every active,
// fully enrolled user. The closest user wins; on equal distances the user
// with the lowest id wins. One "biometric" ledger entry is recorded against
// the winner whether or not the distance is within the threshold. Users whose
// stored codes cannot be compared with the samples are skipped.
func (v *verificationService) Identify(ctx context.Context, req models.LoginRequest) (models.IdentificationResult, error) {
	log := logger.FromContext(ctx)

	threshold, err := v.policy.Resolve(req.Threshold)
	if err != nil {
		return models.IdentificationResult{}, err
	}

	candidates, err := v.enrollmentRepository.ListActiveEnrollments(ctx)
	if err != nil {
		log.Err(err).Msg("listing enrollments failed")
		return models.IdentificationResult{}, fmt.Errorf("listing enrollments: %w", err)
	}

	presented, err := encodeSamples(ctx, v.encoder, 0, sampleImages(req.FaceImage, req.FingerprintImage))
	if err != nil {
		log.Warn().Err(err).Msg("encoding login samples failed")
		return models.IdentificationResult{}, err
	}

	var (
		best      *store.EnrolledUser
		bestScore biometric.Score
	)
	for i := range candidates {
		c := &candidates[i]
		if c.Enrollment.Verifiable(v.matcher.Required()...) != nil {
			continue
		}
		// a stored code of another length belongs to an older encoder
		// configuration and cannot match
		score, err := v.matcher.Compare(c.Enrollment, presented)
		if err != nil {
			log.Warn().Err(err).Int64("user_id", c.User.UserID).Msg("skipping incomparable enrollment")
			continue
		}
		if best == nil || score.Distance < bestScore.Distance ||
			(score.Distance == bestScore.Distance && c.User.UserID < best.User.UserID) {
			best, bestScore = c, score
		}
	}
	if best == nil {
		log.Warn().Msg("biometric login with nobody enrolled")
		return models.IdentificationResult{}, ErrNoEnrolledUsers
	}

	verified := biometric.Decide(bestScore.Distance, threshold)
	now := v.now().UTC()

	if err = v.ledger.Record(ctx, models.LedgerEntry{
		UserID:    best.User.UserID,
		Timestamp: now,
		Method:    models.AuthMethodBiometric,
		Distance:  models.Float64(bestScore.Distance),
		Threshold: models.Float64(threshold),
		Verified:  verified,
	}); err != nil {
		log.Err(err).Int64("user_id", best.User.UserID).Msg("recording biometric login failed")
		return models.IdentificationResult{}, fmt.Errorf("%w: %w", ErrAuditFailed, err)
	}

	user := best.User.Public()
	if verified {
		if err = v.userRepository.UpdateLastLogin(ctx, user.UserID, now); err != nil {
			log.Err(err).Int64("user_id", user.UserID).Msg("updating last login failed")
		} else {
			user.LastLogin = &now
		}
	}

	return models.IdentificationResult{
		User:      user,
		Verified:  verified,
		Distance:  bestScore.Distance,
		Threshold: threshold,
	}, nil
}

// ReEnroll replaces the stored codes of req.UserID with codes computed from
// the new samples.
func (v *verificationService) ReEnroll(ctx context.Context, req models.EnrollmentRequest) (models.EnrollmentResponse, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", req.UserID).Logger()

	user, err := v.findUser(ctx, req.UserID)
	if err != nil {
		return models.EnrollmentResponse{}, err
	}

	codes, err := encodeSamples(ctx, v.encoder, user.UserID, sampleImages(req.FaceImage, req.FingerprintImage))
	if err != nil {
		log.Warn().Err(err).Msg("encoding enrollment samples failed")
		return models.EnrollmentResponse{}, err
	}

	enrollment, err := biometric.NewEnrollment(user.UserID, codeList(codes)...)
	if err != nil {
		return models.EnrollmentResponse{}, err
	}

	if err = v.enrollmentRepository.ReplaceEnrollment(ctx, enrollment); err != nil {
		log.Err(err).Msg("replacing enrollment failed")
		return models.EnrollmentResponse{}, fmt.Errorf("replacing enrollment: %w", err)
	}

	resp := models.EnrollmentResponse{
		UserID:     user.UserID,
		EnrolledAt: v.now().UTC(),
	}
	for _, c := range enrollment.Codes() {
		resp.Modalities = append(resp.Modalities, c.Modality().String())
		resp.BitLength = c.Len()
	}

	log.Info().Strs("modalities", resp.Modalities).Msg("user re-enrolled")
	return resp, nil
}

func (v *verificationService) findUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := v.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if !user.IsActive {
		return models.User{}, ErrUserInactive
	}
	return user, nil
}

func modalityDistances(in map[biometric.Modality]int) map[string]int {
	out := make(map[string]int, len(in))
	for m, d := range in {
		out[m.String()] = d
	}
	return out
}
