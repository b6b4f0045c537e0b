// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampThreshold(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 3, want: 5},
		{in: 75, want: 50},
		{in: 15, want: 15},
		{in: 5, want: 5},
		{in: 50, want: 50},
		{in: -10, want: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampThreshold(tt.in), "ClampThreshold(%v)", tt.in)
	}
}

func TestDecide_TiesAccept(t *testing.T) {
	assert.True(t, Decide(15, 15))
	assert.True(t, Decide(0, 5))
	assert.False(t, Decide(15.5, 15))
}

func TestDecide_Monotonic(t *testing.T) {
	for d := 0.0; d <= 60; d += 0.5 {
		for t1 := 5.0; t1 <= 50; t1++ {
			for t2 := t1; t2 <= 50; t2++ {
				if Decide(d, t1) {
					assert.True(t, Decide(d, t2), "raising threshold %v -> %v rejected distance %v", t1, t2, d)
				}
			}
		}
	}
}

func TestThresholdPolicy_Resolve(t *testing.T) {
	p := DefaultPolicy()
	ptr := func(v float64) *float64 { return &v }

	got, err := p.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, 15.0, got)

	got, err = p.Resolve(ptr(25))
	require.NoError(t, err)
	assert.Equal(t, 25.0, got)

	got, err = p.Resolve(ptr(1))
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	_, err = p.Resolve(ptr(math.NaN()))
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = p.Resolve(ptr(math.Inf(1)))
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestNewThresholdPolicy(t *testing.T) {
	p, err := NewThresholdPolicy(20, 10, 40)
	require.NoError(t, err)
	assert.Equal(t, 40.0, p.Clamp(99))

	_, err = NewThresholdPolicy(60, 5, 50)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewThresholdPolicy(15, 0, 50)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewThresholdPolicy(math.NaN(), 5, 50)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}
