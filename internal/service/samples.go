// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/encoder"
)

// encodeSamples decodes and encodes one image per modality concurrently. The
// first failure cancels the remaining encodings.
func encodeSamples(ctx context.Context, enc encoder.Encoder, userID int64, images map[biometric.Modality]string) (map[biometric.Modality]biometric.Code, error) {
	codes := make([]biometric.Code, 0, len(images))
	results := make(chan biometric.Code, len(images))

	g, gctx := errgroup.WithContext(ctx)
	for m, image := range images {
		g.Go(func() error {
			sample, err := encoder.SampleFromDataURL(userID, m, image)
			if err != nil {
				return err
			}
			code, err := enc.Encode(gctx, sample)
			if err != nil {
				return err
			}
			results <- code
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	for c := range results {
		codes = append(codes, c)
	}

	out := make(map[biometric.Modality]biometric.Code, len(codes))
	for _, c := range codes {
		out[c.Modality()] = c
	}
	return out, nil
}

func sampleImages(face, fingerprint string) map[biometric.Modality]string {
	return map[biometric.Modality]string{
		biometric.ModalityFace:        face,
		biometric.ModalityFingerprint: fingerprint,
	}
}

// codeList returns the codes ordered by modality.
func codeList(codes map[biometric.Modality]biometric.Code) []biometric.Code {
	out := make([]biometric.Code, 0, len(codes))
	for _, m := range biometric.RequiredModalities() {
		if c, ok := codes[m]; ok {
			out = append(out, c)
		}
	}
	return out
}
