// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck_PingsWithDeadline(t *testing.T) {
	svc := NewHealthService(pingFunc(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	}))

	require.NoError(t, svc.Check(context.Background()))
}

func TestHealthCheck_PropagatesError(t *testing.T) {
	down := errors.New("connection refused")
	svc := NewHealthService(pingFunc(func(context.Context) error { return down }))

	require.ErrorIs(t, svc.Check(context.Background()), down)
}
