// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
)

// ── NewAppInfoService ────────────────────────────────────────────────────────

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: ""}, logger.Nop())

	assert.Nil(t, svc)
	require.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

// ── GetAppVersion ────────────────────────────────────────────────────────────

func TestGetAppVersion_ReturnsConfiguredVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "v1.2.3-beta+build.42"}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3-beta+build.42", svc.GetAppVersion(context.Background()))
}
