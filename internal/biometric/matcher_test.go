// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aliceEnrollment(t *testing.T) Enrollment {
	t.Helper()
	e, err := NewEnrollment(1, zeroCode(t, ModalityFace, 256), zeroCode(t, ModalityFingerprint, 256))
	require.NoError(t, err)
	return e
}

func TestMatcher_Compare_ExactMatch(t *testing.T) {
	m := NewMatcher(DefaultFusion())

	score, err := m.Compare(aliceEnrollment(t), map[Modality]Code{
		ModalityFace:        zeroCode(t, ModalityFace, 256),
		ModalityFingerprint: zeroCode(t, ModalityFingerprint, 256),
	})
	require.NoError(t, err)

	assert.Zero(t, score.Distance)
	assert.True(t, Decide(score.Distance, DefaultThreshold))
}

func TestMatcher_Compare_FingerprintMismatch(t *testing.T) {
	m := NewMatcher(DefaultFusion())

	score, err := m.Compare(aliceEnrollment(t), map[Modality]Code{
		ModalityFace:        zeroCode(t, ModalityFace, 256),
		ModalityFingerprint: flippedCode(t, ModalityFingerprint, 256, 40),
	})
	require.NoError(t, err)

	assert.Equal(t, 20.0, score.Distance)
	assert.Equal(t, 0, score.Modalities[ModalityFace])
	assert.Equal(t, 40, score.Modalities[ModalityFingerprint])
	assert.False(t, Decide(score.Distance, 15))
	assert.True(t, Decide(score.Distance, 25))
}

func TestMatcher_Compare_Failures(t *testing.T) {
	m := NewMatcher(DefaultFusion())

	faceOnly, err := NewEnrollment(1, zeroCode(t, ModalityFace, 256))
	require.NoError(t, err)

	_, err = m.Compare(faceOnly, map[Modality]Code{
		ModalityFace:        zeroCode(t, ModalityFace, 256),
		ModalityFingerprint: zeroCode(t, ModalityFingerprint, 256),
	})
	assert.ErrorIs(t, err, ErrEnrollmentIncomplete)

	_, err = m.Compare(aliceEnrollment(t), map[Modality]Code{
		ModalityFace: zeroCode(t, ModalityFace, 256),
	})
	assert.ErrorIs(t, err, ErrSampleEncodingFailed)

	_, err = m.Compare(aliceEnrollment(t), map[Modality]Code{
		ModalityFace:        zeroCode(t, ModalityFace, 128),
		ModalityFingerprint: zeroCode(t, ModalityFingerprint, 256),
	})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMatcher_RequiredDefaults(t *testing.T) {
	assert.Equal(t, RequiredModalities(), NewMatcher(Fusion{}).Required())
	assert.Equal(t, []Modality{ModalityFace}, NewMatcher(Fusion{}, ModalityFace).Required())
}
