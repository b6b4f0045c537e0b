// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest creates an account together with its enrollment.
type RegisterRequest struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	FaceImage        string `json:"face_image"`
	FingerprintImage string `json:"fingerprint_image"`
}

// LoginMethod tells how a login request authenticates.
type LoginMethod string

const (
	LoginMethodPassword  LoginMethod = "password"
	LoginMethodBiometric LoginMethod = "biometric"
)

// LoginRequest authenticates either by username and password or, when both
// images are present, by biometric identification.
type LoginRequest struct {
	Username         string   `json:"username,omitempty"`
	Password         string   `json:"password,omitempty"`
	FaceImage        string   `json:"face_image,omitempty"`
	FingerprintImage string   `json:"fingerprint_image,omitempty"`
	Threshold        *float64 `json:"threshold,omitempty"`
}

// Method reports which flow the request selects. Images take precedence.
func (r LoginRequest) Method() LoginMethod {
	if r.FaceImage != "" && r.FingerprintImage != "" {
		return LoginMethodBiometric
	}
	return LoginMethodPassword
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`

	// Distance and Threshold are set for biometric logins only.
	Distance  *float64 `json:"hamming_distance,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}
