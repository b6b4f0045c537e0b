// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/mock/servicemock"
	"github.com/MKhiriev/go-bio-auth/internal/service"
)

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Server
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{
			name:     "api and health endpoint",
			cfg:      config.Server{HTTPAddress: "localhost:5000", GRPCAddress: "localhost:5001", RequestTimeout: 30 * time.Second},
			wantHTTP: true,
			wantGRPC: true,
		},
		{name: "api only", cfg: config.Server{HTTPAddress: "localhost:5000"}, wantHTTP: true},
		{name: "health endpoint only", cfg: config.Server{GRPCAddress: "localhost:5001"}, wantGRPC: true},
		{name: "nothing to serve", cfg: config.Server{}, wantErr: errNoHandlersAreCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(&service.Services{}, tt.cfg, logger.Nop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

func TestNewHandlers_HTTPServesConfiguredServices(t *testing.T) {
	ctrl := gomock.NewController(t)
	appInfo := servicemock.NewMockAppInfoService(ctrl)
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("2.0.0")

	h, err := NewHandlers(&service.Services{AppInfoService: appInfo}, config.Server{HTTPAddress: "localhost:5000"}, logger.Nop())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.HTTP.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "2.0.0", rr.Body.String())
}
