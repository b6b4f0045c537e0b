// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package encoder

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	_ "github.com/spakin/netpbm"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const dataURLPrefix = "data:"

// DefaultMaxImagePixels is the pixel limit applied when none is configured.
const DefaultMaxImagePixels = 4096 * 4096

// ErrImageTooLarge is returned for images whose header announces more pixels
// than the configured limit.
var ErrImageTooLarge = errors.New("image too large")

// DecodeDataURL decodes a raw base64 payload or a "data:<mime>;base64,<payload>"
// URL. The returned MIME type is empty for raw payloads.
func DecodeDataURL(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", fmt.Errorf("%w: empty image", biometric.ErrSampleEncodingFailed)
	}

	var mime string
	if strings.HasPrefix(s, dataURLPrefix) {
		meta, payload, ok := strings.Cut(s, ",")
		if !ok {
			return nil, "", fmt.Errorf("%w: malformed data URL", biometric.ErrSampleEncodingFailed)
		}
		meta = strings.TrimPrefix(meta, dataURLPrefix)
		mediaType, enc, _ := strings.Cut(meta, ";")
		if enc != "base64" {
			return nil, "", fmt.Errorf("%w: data URL is not base64", biometric.ErrSampleEncodingFailed)
		}
		if !strings.HasPrefix(mediaType, "image/") {
			return nil, "", fmt.Errorf("%w: unsupported media type %q", biometric.ErrSampleEncodingFailed, mediaType)
		}
		mime, s = mediaType, payload
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, "", fmt.Errorf("%w: decoding base64: %w", biometric.ErrSampleEncodingFailed, err)
	}
	return data, mime, nil
}

// DecodeImage decodes any registered image format, including BMP, TIFF,
// WebP and the netpbm family used by many fingerprint scanners. Images above
// DefaultMaxImagePixels are rejected.
func DecodeImage(data []byte) (image.Image, string, error) {
	return DecodeImageLimit(data, DefaultMaxImagePixels)
}

// DecodeImageLimit is DecodeImage with an explicit pixel limit. The header is
// checked first so an oversized image is rejected before any pixel buffer is
// allocated. A non-positive maxPixels selects DefaultMaxImagePixels.
func DecodeImageLimit(data []byte, maxPixels int) (image.Image, string, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxImagePixels
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: decoding image header: %w", biometric.ErrSampleEncodingFailed, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", fmt.Errorf("%w: empty image bounds", biometric.ErrSampleEncodingFailed)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, "", fmt.Errorf("%w: %w: %dx%d exceeds %d pixels",
			biometric.ErrSampleEncodingFailed, ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: decoding image: %w", biometric.ErrSampleEncodingFailed, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, "", fmt.Errorf("%w: empty image bounds", biometric.ErrSampleEncodingFailed)
	}
	return img, format, nil
}
