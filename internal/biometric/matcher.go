// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import "fmt"

// Score is the outcome of comparing presented codes with an enrollment.
type Score struct {
	// Distance is the fused distance compared against the threshold.
	Distance float64

	// Modalities holds the raw Hamming distance per modality.
	Modalities map[Modality]int
}

// Matcher compares presented codes against enrollments using a fixed fusion rule
// and a fixed set of required modalities.
type Matcher struct {
	fusion   Fusion
	required []Modality
}

// NewMatcher returns a matcher. With no required modalities,
// [RequiredModalities] is used.
func NewMatcher(fusion Fusion, required ...Modality) *Matcher {
	if len(required) == 0 {
		required = RequiredModalities()
	}
	if fusion.Rule == "" {
		fusion = DefaultFusion()
	}
	return &Matcher{fusion: fusion, required: required}
}

// Required returns the modalities the matcher compares.
func (m *Matcher) Required() []Modality {
	out := make([]Modality, len(m.required))
	copy(out, m.required)
	return out
}

// Compare computes per-modality distances and the fused score.
//
// It fails with [ErrEnrollmentIncomplete] when the enrollment lacks a required
// modality, [ErrSampleEncodingFailed] when no sample was supplied for one, and
// [ErrDimensionMismatch] when lengths differ.
func (m *Matcher) Compare(enrolled Enrollment, presented map[Modality]Code) (Score, error) {
	if err := enrolled.Verifiable(m.required...); err != nil {
		return Score{}, err
	}

	distances := make(map[Modality]int, len(m.required))
	for _, mod := range m.required {
		code, ok := presented[mod]
		if !ok || code.IsZero() {
			return Score{}, fmt.Errorf("%w: no %s sample", ErrSampleEncodingFailed, mod)
		}
		ref, _ := enrolled.Code(mod)

		d, err := Hamming(ref, code)
		if err != nil {
			return Score{}, fmt.Errorf("comparing %s codes: %w", mod, err)
		}
		distances[mod] = d
	}

	fused, err := m.fusion.Fuse(distances)
	if err != nil {
		return Score{}, err
	}

	return Score{Distance: fused, Modalities: distances}, nil
}
