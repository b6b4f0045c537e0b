// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"regexp"

	"github.com/MKhiriev/go-bio-auth/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUserID           = "user_id"
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldFaceImage        = "face_image"
	FieldFingerprintImage = "fingerprint_image"
	FieldTrialLabel       = "trial_label"
	FieldLoginMethod      = "login_method"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,80}$`)

// RequestValidator validates the authentication and verification requests.
type RequestValidator struct{}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.VerificationRequest:
		return v.validateVerificationRequest(value, fields...)
	case *models.VerificationRequest:
		return v.validateVerificationRequest(*value, fields...)

	case models.EnrollmentRequest:
		return v.validateEnrollmentRequest(value, fields...)
	case *models.EnrollmentRequest:
		return v.validateEnrollmentRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateRegisterRequest(r models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword, FieldFaceImage, FieldFingerprintImage}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldUsername:
			err = validateUsername(r.Username)
		case FieldEmail:
			err = validateEmail(r.Email)
		case FieldPassword:
			err = validatePassword(r.Password)
		case FieldFaceImage:
			err = requireImage(r.FaceImage, ErrMissingFaceImage)
		case FieldFingerprintImage:
			err = requireImage(r.FingerprintImage, ErrMissingFingerprintImage)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateLoginRequest(r models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLoginMethod}
	}

	for _, f := range fields {
		switch f {
		case FieldLoginMethod:
			if r.Method() == models.LoginMethodBiometric {
				continue
			}
			if r.Username == "" || r.Password == "" {
				return ErrInvalidLoginMethod
			}
		case FieldUsername:
			if r.Username == "" {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if r.Password == "" {
				return ErrEmptyPassword
			}
		case FieldFaceImage:
			if err := requireImage(r.FaceImage, ErrMissingFaceImage); err != nil {
				return err
			}
		case FieldFingerprintImage:
			if err := requireImage(r.FingerprintImage, ErrMissingFingerprintImage); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateVerificationRequest(r models.VerificationRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldFaceImage, FieldFingerprintImage, FieldTrialLabel}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if r.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldFaceImage:
			if err := requireImage(r.FaceImage, ErrMissingFaceImage); err != nil {
				return err
			}
		case FieldFingerprintImage:
			if err := requireImage(r.FingerprintImage, ErrMissingFingerprintImage); err != nil {
				return err
			}
		case FieldTrialLabel:
			if !r.TrialLabel.Valid() {
				return ErrInvalidTrialLabel
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateEnrollmentRequest(r models.EnrollmentRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldFaceImage, FieldFingerprintImage}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if r.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldFaceImage:
			if err := requireImage(r.FaceImage, ErrMissingFaceImage); err != nil {
				return err
			}
		case FieldFingerprintImage:
			if err := requireImage(r.FingerprintImage, ErrMissingFingerprintImage); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// requireImage only checks presence; decoding errors surface from the encoder
// as sample encoding failures.
func requireImage(image string, missing error) error {
	if image == "" {
		return missing
	}
	return nil
}
