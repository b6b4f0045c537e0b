// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bio-auth/internal/app"
	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/mock/servicemock"
	"github.com/MKhiriev/go-bio-auth/internal/service"
	"github.com/MKhiriev/go-bio-auth/internal/store"
	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/models"
)

// ─────────────────────────────────────────────
// fixture
// ─────────────────────────────────────────────

type testAPI struct {
	router       http.Handler
	auth         *servicemock.MockAuthService
	verification *servicemock.MockVerificationService
	stats        *servicemock.MockStatsService
	appInfo      *servicemock.MockAppInfoService
	health       *servicemock.MockHealthService
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()
	ctrl := gomock.NewController(t)

	api := testAPI{
		auth:         servicemock.NewMockAuthService(ctrl),
		verification: servicemock.NewMockVerificationService(ctrl),
		stats:        servicemock.NewMockStatsService(ctrl),
		appInfo:      servicemock.NewMockAppInfoService(ctrl),
		health:       servicemock.NewMockHealthService(ctrl),
	}
	h := NewHandler(&service.Services{
		AuthService:         api.auth,
		VerificationService: api.verification,
		StatsService:        api.stats,
		AppInfoService:      api.appInfo,
		HealthService:       api.health,
	}, time.Second, logger.Nop())
	api.router = h.Init()

	return api
}

// authorized makes the auth middleware accept "Bearer good" as user 7.
func (a testAPI) authorized() {
	a.auth.EXPECT().ParseToken(gomock.Any(), "good").
		Return(models.Token{UserID: 7, Username: "alice"}, nil)
}

func (a testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

var testSamples = map[string]any{
	"face_image":        "ZmFjZQ==",
	"fingerprint_image": "ZmluZ2Vy",
}

// ─────────────────────────────────────────────
// register / login
// ─────────────────────────────────────────────

func TestRegister_Created(t *testing.T) {
	api := newTestAPI(t)

	user := models.User{UserID: 1, Username: "alice", Email: "alice@example.com", IsActive: true}
	api.auth.EXPECT().RegisterUser(gomock.Any(), models.RegisterRequest{
		Username:         "alice",
		Email:            "alice@example.com",
		Password:         "pw",
		FaceImage:        "ZmFjZQ==",
		FingerprintImage: "ZmluZ2Vy",
	}).Return(user, nil)
	api.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: "jwt"}, nil)

	rr := api.do(t, http.MethodPost, "/api/register", map[string]any{
		"username":          "alice",
		"email":             "alice@example.com",
		"password":          "pw",
		"face_image":        "ZmFjZQ==",
		"fingerprint_image": "ZmluZ2Vy",
	}, "")

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Bearer jwt", rr.Header().Get("Authorization"))

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"duplicate", store.ErrUsernameAlreadyExists, http.StatusConflict, app.KindAlreadyExists},
		{"bad sample", biometric.ErrSampleEncodingFailed, http.StatusBadRequest, app.KindSampleEncoding},
		{"invalid", service.ErrInvalidDataProvided, http.StatusBadRequest, app.KindInvalidRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, app.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.err)

			rr := api.do(t, http.MethodPost, "/api/register", map[string]any{"username": "alice"}, "")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantKind, decodeError(t, rr).Kind)
		})
	}
}

func TestRegister_UnknownFieldIsRejected(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPost, "/api/register", map[string]any{"login": "alice"}, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.KindInvalidRequest, decodeError(t, rr).Kind)
}

func TestLogin_Password(t *testing.T) {
	api := newTestAPI(t)

	user := models.User{UserID: 3, Username: "alice"}
	api.auth.EXPECT().Login(gomock.Any(), models.LoginRequest{Username: "alice", Password: "pw"}).Return(user, nil)
	api.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: "jwt"}, nil)

	rr := api.do(t, http.MethodPost, "/api/login", map[string]any{"username": "alice", "password": "pw"}, "")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "jwt", resp.Token)
	assert.Nil(t, resp.Distance)
}

func TestLogin_PasswordErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantKind   string
	}{
		{service.ErrInvalidCredentials, http.StatusUnauthorized, app.KindInvalidCredentials},
		{service.ErrUserInactive, http.StatusForbidden, app.KindUserInactive},
		{service.ErrAuditFailed, http.StatusServiceUnavailable, app.KindAuditFailed},
	}

	for _, tt := range tests {
		api := newTestAPI(t)
		api.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, tt.err)

		rr := api.do(t, http.MethodPost, "/api/login", map[string]any{"username": "alice", "password": "pw"}, "")

		assert.Equal(t, tt.wantStatus, rr.Code)
		assert.Equal(t, tt.wantKind, decodeError(t, rr).Kind)
	}
}

func TestLogin_BiometricAccepted(t *testing.T) {
	api := newTestAPI(t)

	user := models.User{UserID: 3, Username: "alice", IsActive: true}
	api.verification.EXPECT().Identify(gomock.Any(), gomock.Any()).
		Return(models.IdentificationResult{User: user, Verified: true, Distance: 4, Threshold: 15}, nil)
	api.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: "jwt"}, nil)

	rr := api.do(t, http.MethodPost, "/api/login", testSamples, "")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Distance)
	assert.Equal(t, 4.0, *resp.Distance)
	assert.Equal(t, 15.0, *resp.Threshold)
}

func TestLogin_BiometricRejected(t *testing.T) {
	api := newTestAPI(t)

	api.verification.EXPECT().Identify(gomock.Any(), gomock.Any()).
		Return(models.IdentificationResult{Verified: false, Distance: 31, Threshold: 15}, nil)

	rr := api.do(t, http.MethodPost, "/api/login", testSamples, "")

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	var resp biometricFailureResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, app.KindBiometricMismatch, resp.Kind)
	assert.Equal(t, 31.0, resp.Distance)
}

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

func TestAuth_RejectsMissingAndMalformedTokens(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPost, "/api/verify", testSamples, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, app.KindUnauthorized, decodeError(t, rr).Kind)

	req := httptest.NewRequest(http.MethodPost, "/api/verify", nil)
	req.Header.Set("Authorization", "Token abc")
	rr = httptest.NewRecorder()
	api.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	api.auth.EXPECT().ParseToken(gomock.Any(), "expired").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
	rr = api.do(t, http.MethodPost, "/api/verify", testSamples, "expired")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	token, err := getTokenFromAuthHeader("bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "abc"} {
		_, err = getTokenFromAuthHeader(header)
		assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader, header)
	}
}

func TestUserFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := userFromRequest(req)
	require.ErrorIs(t, err, ErrNoUserInContext)

	req = req.WithContext(utils.WithUser(context.Background(), 5, "bob"))
	id, err := userFromRequest(req)
	require.NoError(t, err)
	assert.EqualValues(t, 5, id)
}

// ─────────────────────────────────────────────
// verify / enrollment
// ─────────────────────────────────────────────

func TestVerify_UsesSessionUser(t *testing.T) {
	api := newTestAPI(t)
	api.authorized()

	api.verification.EXPECT().Verify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.VerificationRequest) (models.VerificationResult, error) {
			assert.EqualValues(t, 7, req.UserID)
			require.NotNil(t, req.Threshold)
			assert.Equal(t, 20.0, *req.Threshold)
			return models.VerificationResult{Verified: false, Distance: 22, HammingDistance: 22, Threshold: 20, UserID: 7}, nil
		})

	body := map[string]any{"face_image": "ZmFjZQ==", "fingerprint_image": "ZmluZ2Vy", "threshold": 20}
	rr := api.do(t, http.MethodPost, "/api/verify", body, "good")

	require.Equal(t, http.StatusOK, rr.Code, "a rejection is not an error")
	var res models.VerificationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.False(t, res.Verified)
	assert.Equal(t, 22.0, res.Distance)
}

func TestVerify_ErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"incomplete", &biometric.IncompleteEnrollmentError{UserID: 7, Missing: []biometric.Modality{biometric.ModalityFace}},
			http.StatusUnprocessableEntity, app.KindEnrollmentIncomplete},
		{"threshold", biometric.ErrInvalidThreshold, http.StatusBadRequest, app.KindInvalidThreshold},
		{"encoding", biometric.ErrSampleEncodingFailed, http.StatusBadRequest, app.KindSampleEncoding},
		{"dimension", &biometric.DimensionMismatchError{Left: 256, Right: 64}, http.StatusInternalServerError, app.KindInternal},
		{"audit", service.ErrAuditFailed, http.StatusServiceUnavailable, app.KindAuditFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.authorized()
			api.verification.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.VerificationResult{}, tt.err)

			rr := api.do(t, http.MethodPost, "/api/verify", testSamples, "good")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantKind, decodeError(t, rr).Kind)
		})
	}
}

func TestVerify_InternalErrorHidesCause(t *testing.T) {
	api := newTestAPI(t)
	api.authorized()
	api.verification.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.VerificationResult{}, &biometric.DimensionMismatchError{Left: 256, Right: 64})

	rr := api.do(t, http.MethodPost, "/api/verify", testSamples, "good")

	assert.Equal(t, http.StatusText(http.StatusInternalServerError), decodeError(t, rr).Error)
}

func TestReEnroll(t *testing.T) {
	api := newTestAPI(t)
	api.authorized()
	api.verification.EXPECT().ReEnroll(gomock.Any(), models.EnrollmentRequest{
		UserID: 7, FaceImage: "ZmFjZQ==", FingerprintImage: "ZmluZ2Vy",
	}).Return(models.EnrollmentResponse{UserID: 7, Modalities: []string{"face", "fingerprint"}, BitLength: 256}, nil)

	rr := api.do(t, http.MethodPut, "/api/user/enrollment", testSamples, "good")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.EnrollmentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 256, resp.BitLength)
}

// ─────────────────────────────────────────────
// stats / profile / health / version
// ─────────────────────────────────────────────

func TestStats(t *testing.T) {
	api := newTestAPI(t)
	api.authorized()
	api.stats.EXPECT().SystemStats(gomock.Any()).Return(models.SystemStatistics{TotalAuthentications: 3, SuccessRate: 66.67}, nil)
	api.stats.EXPECT().UserStats(gomock.Any(), int64(7)).Return(models.UserStatistics{UserID: 7, TotalAttempts: 2}, nil)

	rr := api.do(t, http.MethodGet, "/api/stats", nil, "good")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.StatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.EqualValues(t, 3, resp.System.TotalAuthentications)
	assert.EqualValues(t, 2, resp.User.TotalAttempts)
}

func TestProfile(t *testing.T) {
	api := newTestAPI(t)
	api.authorized()
	api.stats.EXPECT().Profile(gomock.Any(), int64(7)).Return(models.Profile{
		User:           models.User{UserID: 7, Username: "alice"},
		RecentAttempts: []models.LedgerEntry{{ID: 1, Method: models.AuthMethodVerification}},
	}, nil)

	rr := api.do(t, http.MethodGet, "/api/user/profile", nil, "good")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"auth_method":"verification"`)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	api.health.EXPECT().Check(gomock.Any()).Return(nil)

	rr := api.do(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"healthy"`)

	api.health.EXPECT().Check(gomock.Any()).Return(errors.New("down"))
	rr = api.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `"database":"disconnected"`)
}

func TestVersion(t *testing.T) {
	api := newTestAPI(t)
	api.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rr := api.do(t, http.MethodGet, "/api/version", nil, "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.2.3", rr.Body.String())
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
}

func TestRoutes_UnknownRoutesAreNotFound(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/register"},
		{http.MethodGet, "/api/verify"},
		{http.MethodPost, "/api/stats"},
		{http.MethodGet, "/api/nope"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			api := newTestAPI(t)

			rr := api.do(t, tt.method, tt.path, nil, "")

			require.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, app.KindNotFound, decodeError(t, rr).Kind)
		})
	}
}

func TestRoutes_TraceIDIsEchoed(t *testing.T) {
	api := newTestAPI(t)
	api.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-1")
	rr := httptest.NewRecorder()
	api.router.ServeHTTP(rr, req)

	assert.Equal(t, "trace-1", rr.Header().Get(traceIDHeader))
}

func TestClassifyError_WrappedSentinels(t *testing.T) {
	status, kind := classifyError(errors.Join(errors.New("ctx"), store.ErrStorageUnavailable))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, app.KindUnavailable, kind)

	status, kind = classifyError(utils.ErrRequestBodyTooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.Equal(t, app.KindRequestTooLarge, kind)
}
