// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/crypto"
	"github.com/MKhiriev/go-bio-auth/internal/encoder"
	"github.com/MKhiriev/go-bio-auth/internal/ledger"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/store"
	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/internal/validators"
	"github.com/MKhiriev/go-bio-auth/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration with biometric enrollment, password login and the
// JWT token lifecycle.
type authService struct {
	userRepository       store.UserRepository
	enrollmentRepository store.EnrollmentRepository

	// ledger receives one "password" entry per login attempt of an existing
	// user.
	ledger ledger.Ledger

	encoder   encoder.Encoder
	hasher    crypto.PasswordHasher
	validator validators.Validator

	// decoyHash is compared against on logins for unknown usernames so they
	// cost the same hashing work as a wrong password.
	decoyHash func() (string, error)

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with security
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	users store.UserRepository,
	enrollments store.EnrollmentRepository,
	l ledger.Ledger,
	enc encoder.Encoder,
	hasher crypto.PasswordHasher,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	a := &authService{
		userRepository:       users,
		enrollmentRepository: enrollments,
		ledger:               l,
		encoder:              enc,
		hasher:               hasher,
		validator:            validators.NewRequestValidator(),
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		tokenDuration:        cfg.TokenDuration,
		now:                  time.Now,
		logger:               logger,
	}
	a.decoyHash = sync.OnceValues(func() (string, error) {
		return hasher.Hash(decoyPassword)
	})
	return a
}

const decoyPassword = "go-bio-auth decoy password"

// RegisterUser creates a new account together with its face and fingerprint
// enrollment.
//
// Returns the persisted user or:
//   - a validation error wrapping [ErrInvalidDataProvided];
//   - [biometric.ErrSampleEncodingFailed] if a sample cannot be encoded;
//   - [store.ErrUsernameAlreadyExists] if the username or email is taken.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("invalid registration data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	codes, err := encodeSamples(ctx, a.encoder, 0, sampleImages(req.FaceImage, req.FingerprintImage))
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("encoding enrollment samples failed")
		return models.User{}, err
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("hashing password failed")
		return models.User{}, fmt.Errorf("registration failed: %w", err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    a.now().UTC(),
		IsActive:     true,
	}

	registered, _, err := a.enrollmentRepository.CreateUserWithEnrollment(ctx, user, codeList(codes))
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", registered.UserID).Str("username", registered.Username).Msg("user registered")
	return registered.Public(), nil
}

// Login authenticates with username and password.
//
// Unknown usernames and wrong passwords both yield [ErrInvalidCredentials]
// after the same amount of password hashing work.
// Every attempt against an existing account is recorded in the ledger; an
// entry that cannot be recorded fails the login.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		log.Error().Str("username", req.Username).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("username", req.Username).Msg("login for unknown user")
			if hash, herr := a.decoyHash(); herr == nil {
				_ = a.hasher.Compare(hash, req.Password)
			}
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	loginErr := a.checkPassword(foundUser, req.Password)
	if loginErr == nil && !foundUser.IsActive {
		loginErr = ErrUserInactive
	}

	now := a.now()
	if err = a.ledger.Record(ctx, models.LedgerEntry{
		UserID:    foundUser.UserID,
		Timestamp: now,
		Method:    models.AuthMethodPassword,
		Verified:  loginErr == nil,
	}); err != nil {
		log.Err(err).Int64("user_id", foundUser.UserID).Msg("recording login attempt failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrAuditFailed, err)
	}

	if loginErr != nil {
		log.Warn().Err(loginErr).Int64("user_id", foundUser.UserID).Msg("password login rejected")
		return models.User{}, loginErr
	}

	if err = a.userRepository.UpdateLastLogin(ctx, foundUser.UserID, now); err != nil {
		log.Err(err).Int64("user_id", foundUser.UserID).Msg("updating last login failed")
	} else {
		t := now.UTC()
		foundUser.LastLogin = &t
	}

	return foundUser.Public(), nil
}

func (a *authService) checkPassword(user models.User, password string) error {
	err := a.hasher.Compare(user.PasswordHash, password)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, crypto.ErrPasswordMismatch):
		return ErrInvalidCredentials
	default:
		a.logger.Err(err).Int64("user_id", user.UserID).Msg("stored password hash is unusable")
		return ErrInvalidCredentials
	}
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Username, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
