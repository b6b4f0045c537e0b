// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package encoder

import (
	"context"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
)

//go:generate mockgen -source=encoder.go -destination=../mock/encoder_mock.go -package=mock

// Encoder maps one captured sample to a binary code owned by the sample's user.
//
// Every failure must wrap [biometric.ErrSampleEncodingFailed].
type Encoder interface {
	Encode(ctx context.Context, s Sample) (biometric.Code, error)
}

// Sample is a single captured image for one modality.
type Sample struct {
	UserID   int64
	Modality biometric.Modality
	Image    []byte
}

// SampleFromDataURL builds a sample from a base64 payload or data URL.
func SampleFromDataURL(userID int64, m biometric.Modality, s string) (Sample, error) {
	img, _, err := DecodeDataURL(s)
	if err != nil {
		return Sample{}, err
	}
	return Sample{UserID: userID, Modality: m, Image: img}, nil
}

// Func adapts a plain function to [Encoder].
type Func func(ctx context.Context, s Sample) (biometric.Code, error)

// Encode calls f.
func (f Func) Encode(ctx context.Context, s Sample) (biometric.Code, error) {
	return f(ctx, s)
}
