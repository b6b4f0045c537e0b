// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/encoder"
)

const testBits = 64

var (
	faceImage        = base64.StdEncoding.EncodeToString([]byte("face-sample"))
	fingerprintImage = base64.StdEncoding.EncodeToString([]byte("fingerprint-sample"))
	fixedNow         = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

// flipped returns a code whose first k bits are set.
func flipped(t *testing.T, userID int64, m biometric.Modality, k int) biometric.Code {
	t.Helper()
	bits := make([]bool, testBits)
	for i := 0; i < k; i++ {
		bits[i] = true
	}
	c, err := biometric.CodeFromBits(userID, m, bits)
	require.NoError(t, err)
	return c
}

// enrollmentOf builds an all-zero enrollment for the given modalities.
func enrollmentOf(t *testing.T, userID int64, modalities ...biometric.Modality) biometric.Enrollment {
	t.Helper()
	codes := make([]biometric.Code, 0, len(modalities))
	for _, m := range modalities {
		codes = append(codes, flipped(t, userID, m, 0))
	}
	e, err := biometric.NewEnrollment(userID, codes...)
	require.NoError(t, err)
	return e
}

// fixedEncoder answers every sample of a modality with a code that has the
// given number of set bits, so distances against all-zero enrollments are
// known in advance.
func fixedEncoder(t *testing.T, face, fingerprint int) encoder.Encoder {
	t.Helper()
	return encoder.Func(func(_ context.Context, s encoder.Sample) (biometric.Code, error) {
		k := face
		if s.Modality == biometric.ModalityFingerprint {
			k = fingerprint
		}
		return flipped(t, s.UserID, s.Modality, k), nil
	})
}
