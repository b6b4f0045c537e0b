// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package capture supplies raw biometric images to the client.
package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/encoder"
)

var (
	ErrEmptySource      = errors.New("capture source has no path")
	ErrUnsupportedImage = errors.New("unsupported image")
)

// Source produces one sample of a single modality.
type Source interface {
	Modality() biometric.Modality
	CaptureSample(ctx context.Context) (RawImage, error)
}

// RawImage is an undecoded image as captured.
type RawImage struct {
	Modality biometric.Modality
	MIME     string
	Data     []byte
}

// DataURL returns the image as a base64 data URL accepted by the server.
func (r RawImage) DataURL() string {
	return "data:" + r.MIME + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
}

var mimeByFormat = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"webp": "image/webp",
	"pbm":  "image/x-portable-bitmap",
	"pgm":  "image/x-portable-graymap",
	"ppm":  "image/x-portable-pixmap",
	"pam":  "image/x-portable-arbitrarymap",
}

// FileSource reads a sample from an image file.
type FileSource struct {
	path     string
	modality biometric.Modality
}

func NewFileSource(path string, m biometric.Modality) *FileSource {
	return &FileSource{path: path, modality: m}
}

func (s *FileSource) Modality() biometric.Modality {
	return s.modality
}

// CaptureSample reads the file and sniffs its MIME type from the decoded
// image format.
func (s *FileSource) CaptureSample(ctx context.Context) (RawImage, error) {
	if err := ctx.Err(); err != nil {
		return RawImage{}, err
	}
	if s.path == "" {
		return RawImage{}, fmt.Errorf("%w: %s", ErrEmptySource, s.modality)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return RawImage{}, fmt.Errorf("reading %s sample: %w", s.modality, err)
	}

	_, format, err := encoder.DecodeImage(data)
	if err != nil {
		return RawImage{}, fmt.Errorf("%w: %s: %w", ErrUnsupportedImage, s.path, err)
	}
	mime, ok := mimeByFormat[format]
	if !ok {
		return RawImage{}, fmt.Errorf("%w: %s: format %q", ErrUnsupportedImage, s.path, format)
	}

	return RawImage{Modality: s.modality, MIME: mime, Data: data}, nil
}

// CaptureAll captures one sample per source concurrently. It fails if any
// source fails or two sources share a modality.
func CaptureAll(ctx context.Context, sources ...Source) (map[biometric.Modality]RawImage, error) {
	images := make([]RawImage, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			img, err := src.CaptureSample(gctx)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[biometric.Modality]RawImage, len(images))
	for _, img := range images {
		if _, dup := out[img.Modality]; dup {
			return nil, fmt.Errorf("duplicate %s source", img.Modality)
		}
		out[img.Modality] = img
	}
	return out, nil
}
