// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode_CopiesInput(t *testing.T) {
	packed := []byte{0xFF, 0x00}
	c, err := NewCode(1, ModalityFace, 16, packed)
	require.NoError(t, err)

	packed[0] = 0x00
	assert.True(t, c.Bit(0), "code must not alias caller memory")

	out := c.Bytes()
	out[0] = 0x00
	assert.True(t, c.Bit(0), "Bytes must return a copy")
}

func TestNewCode_ClearsPaddingBits(t *testing.T) {
	c, err := NewCode(0, ModalityFingerprint, 4, []byte{0xFF})
	require.NoError(t, err)

	assert.Equal(t, []byte{0xF0}, c.Bytes())
	assert.Equal(t, 4, c.Len())
}

func TestNewCode_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		modality Modality
		length   int
		packed   []byte
	}{
		{name: "unknown modality", modality: "iris", length: 8, packed: []byte{0}},
		{name: "zero length", modality: ModalityFace, length: 0, packed: nil},
		{name: "short buffer", modality: ModalityFace, length: 16, packed: []byte{0}},
		{name: "long buffer", modality: ModalityFace, length: 8, packed: []byte{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCode(0, tt.modality, tt.length, tt.packed)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCode))
		})
	}
}

func TestCodeFromBits_RoundTripsBits(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, false, true, true}
	c, err := CodeFromBits(0, ModalityFace, bits)
	require.NoError(t, err)

	require.Equal(t, len(bits), c.Len())
	for i, want := range bits {
		assert.Equal(t, want, c.Bit(i), "bit %d", i)
	}
}

func TestCode_WithOwnerDoesNotMutateOriginal(t *testing.T) {
	c := zeroCode(t, ModalityFace, 8)
	owned := c.WithOwner(42)

	assert.Equal(t, int64(0), c.UserID())
	assert.Equal(t, int64(42), owned.UserID())
}

func TestParseModality(t *testing.T) {
	m, err := ParseModality("fingerprint")
	require.NoError(t, err)
	assert.Equal(t, ModalityFingerprint, m)

	_, err = ParseModality("voice")
	assert.ErrorIs(t, err, ErrUnknownModality)
}
