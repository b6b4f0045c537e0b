// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"math"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
)

// ThresholdPolicy returns the decision policy described by b.
func (b Biometric) ThresholdPolicy() (biometric.ThresholdPolicy, error) {
	return biometric.NewThresholdPolicy(b.DefaultThreshold, b.MinThreshold, b.MaxThreshold)
}

// FusionRule returns the fusion rule described by b.
func (b Biometric) FusionRule() (biometric.Fusion, error) {
	rule, err := biometric.ParseFusionRule(b.Fusion)
	if err != nil {
		return biometric.Fusion{}, err
	}
	if b.FaceWeight < 0 || b.FaceWeight > 1 || math.IsNaN(b.FaceWeight) {
		return biometric.Fusion{}, fmt.Errorf("face weight %v outside [0, 1]", b.FaceWeight)
	}
	return biometric.Fusion{Rule: rule, FaceWeight: b.FaceWeight}, nil
}

func (b Biometric) validate() error {
	side := int(math.Sqrt(float64(b.BitLength)))
	if b.BitLength <= 0 || side*side != b.BitLength {
		return fmt.Errorf("bit length %d is not a positive perfect square", b.BitLength)
	}
	if _, err := b.ThresholdPolicy(); err != nil {
		return err
	}
	if _, err := b.FusionRule(); err != nil {
		return err
	}
	if b.EncodeTimeout < 0 {
		return fmt.Errorf("negative encode timeout %s", b.EncodeTimeout)
	}
	if b.MaxImagePixels < 0 {
		return fmt.Errorf("negative image pixel limit %d", b.MaxImagePixels)
	}
	return nil
}
