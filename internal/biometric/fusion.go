// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"errors"
	"fmt"
	"slices"
)

// FusionRule selects how per-modality distances are combined into the single
// score that is compared against the threshold.
type FusionRule string

const (
	// FusionAverage is the unweighted mean of the per-modality Hamming counts.
	FusionAverage FusionRule = "average"
	// FusionMax takes the worst (largest) per-modality distance.
	FusionMax FusionRule = "max"
	// FusionWeighted is FaceWeight*face + (1-FaceWeight)*fingerprint.
	FusionWeighted FusionRule = "weighted"
)

var errNothingToFuse = errors.New("no per-modality distances to fuse")

// ParseFusionRule converts s into a [FusionRule].
func ParseFusionRule(s string) (FusionRule, error) {
	switch r := FusionRule(s); r {
	case FusionAverage, FusionMax, FusionWeighted:
		return r, nil
	default:
		return "", fmt.Errorf("unknown fusion rule %q", s)
	}
}

// Fusion combines per-modality distances. The zero value behaves like
// [DefaultFusion].
type Fusion struct {
	Rule FusionRule

	// FaceWeight is used by FusionWeighted only and must be within [0, 1].
	FaceWeight float64
}

// DefaultFusion returns the unweighted average rule.
func DefaultFusion() Fusion {
	return Fusion{Rule: FusionAverage, FaceWeight: 0.5}
}

// Fuse returns the combined distance. Values are accumulated in modality name
// order so that the result is bit-for-bit reproducible.
func (f Fusion) Fuse(distances map[Modality]int) (float64, error) {
	if len(distances) == 0 {
		return 0, errNothingToFuse
	}

	keys := make([]Modality, 0, len(distances))
	for m := range distances {
		keys = append(keys, m)
	}
	slices.Sort(keys)

	switch f.Rule {
	case FusionMax:
		worst := 0
		for _, m := range keys {
			worst = max(worst, distances[m])
		}
		return float64(worst), nil

	case FusionWeighted:
		face, okFace := distances[ModalityFace]
		fp, okFP := distances[ModalityFingerprint]
		if okFace && okFP && len(distances) == 2 {
			return f.FaceWeight*float64(face) + (1-f.FaceWeight)*float64(fp), nil
		}
		// a weighted rule over anything else degrades to the average
		fallthrough

	default:
		sum := 0
		for _, m := range keys {
			sum += distances[m]
		}
		return float64(sum) / float64(len(keys)), nil
	}
}
