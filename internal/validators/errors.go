// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID           = errors.New("invalid user ID")
	ErrEmptyUsername           = errors.New("username is required")
	ErrInvalidUsername         = errors.New("username must be 3-80 characters of letters, digits, '.', '_' or '-'")
	ErrInvalidEmail            = errors.New("invalid email address")
	ErrEmptyPassword           = errors.New("password is required")
	ErrPasswordTooLong         = errors.New("password must be at most 72 bytes")
	ErrMissingFaceImage        = errors.New("face image is required")
	ErrMissingFingerprintImage = errors.New("fingerprint image is required")
	ErrInvalidTrialLabel       = errors.New("trial label must be 'genuine' or 'impostor'")
	ErrInvalidLoginMethod      = errors.New("login needs a username and password or both biometric samples")
)
