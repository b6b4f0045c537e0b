// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"fmt"
	"math"
)

// Threshold defaults. Lower thresholds are stricter (fewer false accepts, more
// false rejects); higher thresholds are more lenient.
const (
	DefaultThreshold = 15.0
	MinThreshold     = 5.0
	MaxThreshold     = 50.0
)

// ThresholdPolicy holds the default threshold and the range caller overrides
// are clamped into. It is a plain value passed into each verification, so a
// threshold change never leaks into requests that are already in flight.
type ThresholdPolicy struct {
	Default float64
	Min     float64
	Max     float64
}

// DefaultPolicy returns the 15 / [5, 50] policy.
func DefaultPolicy() ThresholdPolicy {
	return ThresholdPolicy{
		Default: DefaultThreshold,
		Min:     MinThreshold,
		Max:     MaxThreshold,
	}
}

// NewThresholdPolicy validates and returns a policy.
func NewThresholdPolicy(def, minT, maxT float64) (ThresholdPolicy, error) {
	for _, v := range []float64{def, minT, maxT} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ThresholdPolicy{}, fmt.Errorf("%w: %v", ErrInvalidThreshold, v)
		}
	}
	if minT <= 0 || minT > maxT || def < minT || def > maxT {
		return ThresholdPolicy{}, fmt.Errorf("%w: need 0 < min <= default <= max, got %v <= %v <= %v",
			ErrInvalidThreshold, minT, def, maxT)
	}
	return ThresholdPolicy{Default: def, Min: minT, Max: maxT}, nil
}

// Clamp forces t into [Min, Max].
func (p ThresholdPolicy) Clamp(t float64) float64 {
	return math.Min(math.Max(t, p.Min), p.Max)
}

// Resolve returns the threshold to apply: the default when override is nil,
// the clamped override otherwise. Non-finite overrides are rejected.
func (p ThresholdPolicy) Resolve(override *float64) (float64, error) {
	if override == nil {
		return p.Default, nil
	}
	t := *override
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidThreshold, t)
	}
	return p.Clamp(t), nil
}

// Decide reports whether distance is accepted under threshold. Ties accept.
func Decide(distance, threshold float64) bool {
	return distance <= threshold
}

// ClampThreshold clamps t with the default policy.
func ClampThreshold(t float64) float64 {
	return DefaultPolicy().Clamp(t)
}
