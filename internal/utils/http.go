// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxRequestBodyBytes bounds JSON request bodies. Two base64 images of a few
// megabytes each fit comfortably.
const MaxRequestBodyBytes = 16 << 20

var ErrRequestBodyTooLarge = errors.New("request body too large")

// WriteJSON serializes data to JSON and writes it with statusCode and an
// "application/json" content type.
//
// If marshaling fails, it responds with 500 Internal Server Error and returns
// a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// DecodeJSON decodes the body of r into v. Unknown fields are rejected and
// bodies larger than [MaxRequestBodyBytes] fail with [ErrRequestBodyTooLarge].
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return ErrRequestBodyTooLarge
		case errors.Is(err, io.EOF):
			return errors.New("empty request body")
		default:
			return fmt.Errorf("error decoding JSON body: %w", err)
		}
	}

	return nil
}
