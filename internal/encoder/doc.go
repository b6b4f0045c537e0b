// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package encoder turns captured images into fixed-length binary codes.
//
// The [PerceptualEncoder] shipped here is a deterministic perceptual hash: it
// is a stand-in for a real feature extractor and can be replaced by any
// [Encoder] implementation without touching the matching core.
package encoder
