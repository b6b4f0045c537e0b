// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package encoder

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"golang.org/x/image/draw"
)

// PerceptualEncoder hashes images on a square grayscale grid.
//
// Faces use an average hash: a bit is set when the cell is brighter than the
// mean. Fingerprints use a difference hash: a bit is set when a cell is
// brighter than its right neighbour, which follows ridge direction rather
// than overall exposure.
type PerceptualEncoder struct {
	side      int
	maxPixels int
}

// Option configures a PerceptualEncoder.
type Option func(*PerceptualEncoder)

// WithMaxPixels sets the largest accepted image area. Non-positive values
// keep DefaultMaxImagePixels.
func WithMaxPixels(n int) Option {
	return func(e *PerceptualEncoder) {
		if n > 0 {
			e.maxPixels = n
		}
	}
}

// NewPerceptualEncoder returns an encoder producing codes of bitLength bits.
// bitLength must be a positive perfect square.
func NewPerceptualEncoder(bitLength int, opts ...Option) (*PerceptualEncoder, error) {
	side := int(math.Sqrt(float64(bitLength)))
	if bitLength <= 0 || side*side != bitLength {
		return nil, fmt.Errorf("bit length %d is not a positive perfect square", bitLength)
	}
	e := &PerceptualEncoder{side: side, maxPixels: DefaultMaxImagePixels}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// BitLength returns the length of produced codes.
func (e *PerceptualEncoder) BitLength() int {
	return e.side * e.side
}

func (e *PerceptualEncoder) Encode(ctx context.Context, s Sample) (biometric.Code, error) {
	if err := ctx.Err(); err != nil {
		return biometric.Code{}, fmt.Errorf("%w: %w", biometric.ErrSampleEncodingFailed, err)
	}

	img, _, err := DecodeImageLimit(s.Image, e.maxPixels)
	if err != nil {
		return biometric.Code{}, err
	}

	var bits []bool
	switch s.Modality {
	case biometric.ModalityFace:
		bits = averageHash(grayscale(img, e.side, e.side))
	case biometric.ModalityFingerprint:
		bits = differenceHash(grayscale(img, e.side+1, e.side), e.side)
	default:
		return biometric.Code{}, fmt.Errorf("%w: %w: %q", biometric.ErrSampleEncodingFailed, biometric.ErrUnknownModality, s.Modality)
	}

	code, err := biometric.CodeFromBits(s.UserID, s.Modality, bits)
	if err != nil {
		return biometric.Code{}, fmt.Errorf("%w: %w", biometric.ErrSampleEncodingFailed, err)
	}
	return code, nil
}

func grayscale(src image.Image, w, h int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func averageHash(g *image.Gray) []bool {
	var sum int
	for _, p := range g.Pix {
		sum += int(p)
	}
	mean := sum / len(g.Pix)

	bits := make([]bool, len(g.Pix))
	for i, p := range g.Pix {
		bits[i] = int(p) > mean
	}
	return bits
}

// differenceHash expects a (side+1) x side image.
func differenceHash(g *image.Gray, side int) []bool {
	bits := make([]bool, 0, side*side)
	for y := 0; y < side; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+side+1]
		for x := 0; x < side; x++ {
			bits = append(bits, row[x] > row[x+1])
		}
	}
	return bits
}
