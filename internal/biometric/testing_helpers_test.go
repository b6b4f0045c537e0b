// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// zeroCode returns an all-zero code of n bits.
func zeroCode(t *testing.T, m Modality, n int) Code {
	t.Helper()
	c, err := CodeFromBits(0, m, make([]bool, n))
	require.NoError(t, err)
	return c
}

// flippedCode returns an n-bit code whose first k bits are set.
func flippedCode(t *testing.T, m Modality, n, k int) Code {
	t.Helper()
	bits := make([]bool, n)
	for i := 0; i < k; i++ {
		bits[i] = true
	}
	c, err := CodeFromBits(0, m, bits)
	require.NoError(t, err)
	return c
}
