// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrRequestTooLarge     = errors.New("request too large")
	ErrUnprocessable       = errors.New("unprocessable request")
	ErrUnavailable         = errors.New("server unavailable")
	ErrInternalServerError = errors.New("internal server error")
	ErrNoToken             = errors.New("no token, log in first")
	ErrEmptyAddress        = errors.New("empty address")
)

// ServerError is a non-2xx response decoded from the server's error body.
type ServerError struct {
	StatusCode int
	Message    string
	Kind       string

	// Distance and Threshold are set for rejected biometric logins.
	Distance  *float64
	Threshold *float64

	sentinel error
}

func (e *ServerError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d (%s): %s", e.StatusCode, e.Kind, e.Message)
}

func (e *ServerError) Unwrap() error {
	return e.sentinel
}
