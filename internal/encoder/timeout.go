// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package encoder

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
)

type timeoutEncoder struct {
	next    Encoder
	timeout time.Duration
}

// WithTimeout bounds every Encode call of enc by d. A non-positive d returns
// enc unchanged.
func WithTimeout(enc Encoder, d time.Duration) Encoder {
	if d <= 0 {
		return enc
	}
	return &timeoutEncoder{next: enc, timeout: d}
}

type encodeResult struct {
	code biometric.Code
	err  error
}

func (t *timeoutEncoder) Encode(ctx context.Context, s Sample) (biometric.Code, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan encodeResult, 1)
	go func() {
		code, err := t.next.Encode(ctx, s)
		done <- encodeResult{code: code, err: err}
	}()

	select {
	case <-ctx.Done():
		return biometric.Code{}, fmt.Errorf("%w: %s sample: %w", biometric.ErrSampleEncodingFailed, s.Modality, ctx.Err())
	case r := <-done:
		return r.code, r.err
	}
}
