// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds of the verification core. Callers match them with [errors.Is].
var (
	// ErrDimensionMismatch is returned when two codes of different bit length
	// are compared. It points at an encoder/versioning bug upstream and is never
	// reported to the end user as a biometric mismatch.
	ErrDimensionMismatch = errors.New("biometric codes have different bit lengths")

	// ErrEnrollmentIncomplete is returned when an enrollment lacks a code for a
	// modality required by the active policy.
	ErrEnrollmentIncomplete = errors.New("enrollment is incomplete")

	// ErrSampleEncodingFailed is returned when a captured sample could not be
	// turned into a code (unreadable image, encoder timeout, missing sample).
	ErrSampleEncodingFailed = errors.New("sample encoding failed")

	// ErrInvalidThreshold is returned for threshold overrides that are not
	// finite numbers. Finite out-of-range values are clamped instead.
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrInvalidCode is returned when a code cannot be constructed from the
	// supplied bits or does not fit into an enrollment.
	ErrInvalidCode = errors.New("invalid biometric code")

	// ErrUnknownModality is returned when parsing an unsupported modality name.
	ErrUnknownModality = errors.New("unknown modality")
)

// DimensionMismatchError carries the two bit lengths that did not match.
type DimensionMismatchError struct {
	Left  int
	Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: %d != %d", ErrDimensionMismatch, e.Left, e.Right)
}

// Is reports whether target is [ErrDimensionMismatch].
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// IncompleteEnrollmentError names the modalities missing from an enrollment.
type IncompleteEnrollmentError struct {
	UserID  int64
	Missing []Modality
}

func (e *IncompleteEnrollmentError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		names = append(names, string(m))
	}
	return fmt.Sprintf("%s: user %d has no %s code", ErrEnrollmentIncomplete, e.UserID, strings.Join(names, ", "))
}

// Is reports whether target is [ErrEnrollmentIncomplete].
func (e *IncompleteEnrollmentError) Is(target error) bool {
	return target == ErrEnrollmentIncomplete
}
