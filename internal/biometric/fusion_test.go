// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFusion_Fuse(t *testing.T) {
	distances := map[Modality]int{
		ModalityFace:        10,
		ModalityFingerprint: 40,
	}

	tests := []struct {
		name   string
		fusion Fusion
		want   float64
	}{
		{name: "zero value averages", fusion: Fusion{}, want: 25},
		{name: "average", fusion: DefaultFusion(), want: 25},
		{name: "max", fusion: Fusion{Rule: FusionMax}, want: 40},
		{name: "weighted towards face", fusion: Fusion{Rule: FusionWeighted, FaceWeight: 0.75}, want: 17.5},
		{name: "weighted only fingerprint", fusion: Fusion{Rule: FusionWeighted, FaceWeight: 0}, want: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fusion.Fuse(distances)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFusion_WeightedWithSingleModalityAverages(t *testing.T) {
	got, err := Fusion{Rule: FusionWeighted, FaceWeight: 0.9}.Fuse(map[Modality]int{ModalityFace: 12})
	require.NoError(t, err)
	assert.Equal(t, 12.0, got)
}

func TestFusion_Empty(t *testing.T) {
	_, err := DefaultFusion().Fuse(nil)
	assert.Error(t, err)
}

func TestParseFusionRule(t *testing.T) {
	for _, s := range []string{"average", "max", "weighted"} {
		r, err := ParseFusionRule(s)
		require.NoError(t, err)
		assert.Equal(t, FusionRule(s), r)
	}

	_, err := ParseFusionRule("median")
	assert.Error(t, err)
}
