// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying client with the request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/register")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if err = h.storeToken(resp, out.Token); err != nil {
		return models.AuthResponse{}, fmt.Errorf("register: %w", err)
	}
	return out, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var out models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if err = h.storeToken(resp, out.Token); err != nil {
		return models.AuthResponse{}, fmt.Errorf("login: %w", err)
	}
	h.logger.Debug().Str("func", "*httpServerAdapter.Login").Int64("id", out.User.UserID).Msg("logged in")
	return out, nil
}

func (h *httpServerAdapter) Verify(ctx context.Context, req models.VerificationRequest) (models.VerificationResult, error) {
	var out models.VerificationResult

	r, err := h.authedRequest(ctx)
	if err != nil {
		return out, err
	}
	resp, err := r.SetBody(req).SetResult(&out).Post("/api/verify")
	if err != nil {
		return models.VerificationResult{}, fmt.Errorf("verify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerificationResult{}, err
	}
	return out, nil
}

func (h *httpServerAdapter) ReEnroll(ctx context.Context, req models.EnrollmentRequest) (models.EnrollmentResponse, error) {
	var out models.EnrollmentResponse

	r, err := h.authedRequest(ctx)
	if err != nil {
		return out, err
	}
	resp, err := r.SetBody(req).SetResult(&out).Put("/api/user/enrollment")
	if err != nil {
		return models.EnrollmentResponse{}, fmt.Errorf("re-enroll request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EnrollmentResponse{}, err
	}
	return out, nil
}

func (h *httpServerAdapter) Stats(ctx context.Context) (models.StatsResponse, error) {
	var out models.StatsResponse
	return out, h.get(ctx, "/api/stats", &out)
}

func (h *httpServerAdapter) Profile(ctx context.Context) (models.Profile, error) {
	var out models.Profile
	return out, h.get(ctx, "/api/user/profile", &out)
}

func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var out models.HealthResponse

	// the unhealthy body is a HealthResponse too
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&out).
		Get("/api/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	return out, mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) get(ctx context.Context, path string, out any) error {
	r, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	resp, err := r.SetResult(out).Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

// storeToken prefers the Authorization header and falls back to the token
// in the body.
func (h *httpServerAdapter) storeToken(resp *resty.Response, bodyToken string) error {
	token := bodyToken
	if header := resp.Header().Get("Authorization"); header != "" {
		parsed, err := utils.ParseBearerToken(header)
		if err != nil {
			return fmt.Errorf("parse bearer token: %w", err)
		}
		token = parsed
	}
	if token == "" {
		return ErrNoToken
	}
	h.SetToken(token)
	return nil
}
