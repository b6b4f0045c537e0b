// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// VerificationRequest asks whether freshly captured samples belong to UserID.
type VerificationRequest struct {
	// UserID is taken from the authenticated session, never from the body.
	UserID int64 `json:"-"`

	FaceImage        string `json:"face_image"`
	FingerprintImage string `json:"fingerprint_image"`

	// Threshold overrides the default acceptance threshold for this call only.
	// Finite values outside the allowed range are clamped.
	Threshold *float64 `json:"threshold,omitempty"`

	// TrialLabel marks evaluation trials whose ground truth is known.
	TrialLabel TrialLabel `json:"trial_label,omitempty"`
}

// VerificationResult is the verdict of one verification attempt.
// A rejection is a normal result, not an error.
type VerificationResult struct {
	Verified bool `json:"verified"`

	// Distance is the fused distance the verdict is based on.
	Distance float64 `json:"distance"`

	// HammingDistance mirrors Distance for older clients.
	HammingDistance float64 `json:"hamming_distance"`

	// Threshold is the threshold actually applied after clamping.
	Threshold float64 `json:"threshold"`

	Username  string    `json:"username"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`

	// ModalityDistances holds the raw Hamming distance per modality.
	ModalityDistances map[string]int `json:"modality_distances,omitempty"`
}

// IdentificationResult is the best match of a biometric login.
type IdentificationResult struct {
	User      User    `json:"user"`
	Verified  bool    `json:"verified"`
	Distance  float64 `json:"distance"`
	Threshold float64 `json:"threshold"`
}

// EnrollmentRequest replaces a user's enrollment with codes computed from
// new samples.
type EnrollmentRequest struct {
	UserID           int64  `json:"-"`
	FaceImage        string `json:"face_image"`
	FingerprintImage string `json:"fingerprint_image"`
}

// EnrollmentResponse acknowledges a re-enrollment.
type EnrollmentResponse struct {
	UserID     int64     `json:"user_id"`
	Modalities []string  `json:"modalities"`
	BitLength  int       `json:"bit_length"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
