// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/crypto"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/mock"
	"github.com/MKhiriev/go-bio-auth/internal/store"
	"github.com/MKhiriev/go-bio-auth/models"
)

type authFixture struct {
	svc         *authService
	users       *mock.MockUserRepository
	enrollments *mock.MockEnrollmentRepository
	ledger      *mock.MockLedger
	hasher      *mock.MockPasswordHasher
}

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "go-bio-auth-test",
	TokenDuration: time.Hour,
	PasswordCost:  4,
	Version:       "test",
}

func newAuthFixture(t *testing.T, ctrl *gomock.Controller) authFixture {
	t.Helper()
	f := authFixture{
		users:       mock.NewMockUserRepository(ctrl),
		enrollments: mock.NewMockEnrollmentRepository(ctrl),
		ledger:      mock.NewMockLedger(ctrl),
		hasher:      mock.NewMockPasswordHasher(ctrl),
	}
	f.svc = NewAuthService(f.users, f.enrollments, f.ledger, fixedEncoder(t, 1, 2), f.hasher, testAppConfig, logger.Nop()).(*authService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func registerRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username:         "alice",
		Email:            "alice@example.com",
		Password:         "correct horse",
		FaceImage:        faceImage,
		FingerprintImage: fingerprintImage,
	}
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestRegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	gomock.InOrder(
		f.hasher.EXPECT().Hash("correct horse").Return("$2a$hash", nil),
		f.enrollments.EXPECT().CreateUserWithEnrollment(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u models.User, codes []biometric.Code) (models.User, biometric.Enrollment, error) {
				assert.Equal(t, "alice", u.Username)
				assert.Equal(t, "$2a$hash", u.PasswordHash)
				assert.Empty(t, u.Password)
				assert.True(t, u.IsActive)
				require.Len(t, codes, 2)
				assert.Equal(t, biometric.ModalityFace, codes[0].Modality())
				assert.Equal(t, biometric.ModalityFingerprint, codes[1].Modality())

				u.UserID = 11
				e, err := biometric.NewEnrollment(11, codes...)
				return u, e, err
			}),
	)

	user, err := f.svc.RegisterUser(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.EqualValues(t, 11, user.UserID)
	assert.Empty(t, user.PasswordHash)
}

func TestRegisterUser_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	req := registerRequest()
	req.Email = "not-an-email"

	_, err := f.svc.RegisterUser(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_BadSampleCreatesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	req := registerRequest()
	req.FingerprintImage = "not base64 at all!"

	_, err := f.svc.RegisterUser(context.Background(), req)
	require.ErrorIs(t, err, biometric.ErrSampleEncodingFailed)
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	f.hasher.EXPECT().Hash(gomock.Any()).Return("$2a$hash", nil)
	f.enrollments.EXPECT().CreateUserWithEnrollment(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{}, biometric.Enrollment{}, store.ErrUsernameAlreadyExists)

	_, err := f.svc.RegisterUser(context.Background(), registerRequest())
	require.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	stored := models.User{UserID: 3, Username: "alice", PasswordHash: "$2a$hash", IsActive: true}
	gomock.InOrder(
		f.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(stored, nil),
		f.hasher.EXPECT().Compare("$2a$hash", "pw").Return(nil),
		f.ledger.EXPECT().Record(gomock.Any(), models.LedgerEntry{
			UserID:    3,
			Timestamp: fixedNow,
			Method:    models.AuthMethodPassword,
			Verified:  true,
		}).Return(nil),
		f.users.EXPECT().UpdateLastLogin(gomock.Any(), int64(3), fixedNow).Return(nil),
	)

	user, err := f.svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	require.NotNil(t, user.LastLogin)
	assert.Equal(t, fixedNow, *user.LastLogin)
}

func TestLogin_WrongPasswordIsRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	f.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").
		Return(models.User{UserID: 3, PasswordHash: "h", IsActive: true}, nil)
	f.hasher.EXPECT().Compare("h", "bad").Return(crypto.ErrPasswordMismatch)
	f.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e models.LedgerEntry) error {
			assert.False(t, e.Verified)
			assert.Equal(t, models.AuthMethodPassword, e.Method)
			return nil
		})

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "bad"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	f.users.EXPECT().FindUserByUsername(gomock.Any(), "ghost").Return(models.User{}, store.ErrNoUserWasFound).Times(2)
	// the decoy hash is computed once and compared on every unknown login
	f.hasher.EXPECT().Hash(gomock.Any()).Return("$2a$decoy", nil).Times(1)
	f.hasher.EXPECT().Compare("$2a$decoy", "pw").Return(crypto.ErrPasswordMismatch).Times(2)

	for range 2 {
		_, err := f.svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "pw"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestLogin_UnknownUserWithBrokenHasher(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	f.users.EXPECT().FindUserByUsername(gomock.Any(), "ghost").Return(models.User{}, store.ErrNoUserWasFound)
	f.hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("boom"))

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "pw"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	f.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").
		Return(models.User{UserID: 3, PasswordHash: "h", IsActive: false}, nil)
	f.hasher.EXPECT().Compare("h", "pw").Return(nil)
	f.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw"})
	require.ErrorIs(t, err, ErrUserInactive)
}

func TestLogin_LedgerFailureFailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	f.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").
		Return(models.User{UserID: 3, PasswordHash: "h", IsActive: true}, nil)
	f.hasher.EXPECT().Compare("h", "pw").Return(nil)
	f.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("db gone"))

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw"})
	require.ErrorIs(t, err, ErrAuditFailed)
}

func TestLogin_MissingCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Username: "alice"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestCreateAndParseToken_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)
	ctx := context.Background()

	token, err := f.svc.CreateToken(ctx, models.User{UserID: 42, Username: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := f.svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.EqualValues(t, 42, parsed.UserID)
	assert.Equal(t, "alice", parsed.Username)
}

func TestParseToken_ForeignIssuerIsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	other := *f.svc
	other.tokenIssuer = "someone-else"
	token, err := other.CreateToken(context.Background(), models.User{UserID: 1, Username: "x"})
	require.NoError(t, err)

	_, err = f.svc.ParseToken(context.Background(), token.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newAuthFixture(t, ctrl)

	_, err := f.svc.ParseToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
