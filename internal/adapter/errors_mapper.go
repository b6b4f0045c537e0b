// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var sentinelByStatus = map[int]error{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusConflict:              ErrConflict,
	http.StatusRequestEntityTooLarge: ErrRequestTooLarge,
	http.StatusUnprocessableEntity:   ErrUnprocessable,
	http.StatusServiceUnavailable:    ErrUnavailable,
	http.StatusBadGateway:            ErrUnavailable,
	http.StatusInternalServerError:   ErrInternalServerError,
}

// errorBody mirrors the server's error responses, including the extra fields
// of a rejected biometric login.
type errorBody struct {
	Error     string   `json:"error"`
	Kind      string   `json:"kind"`
	Distance  *float64 `json:"hamming_distance"`
	Threshold *float64 `json:"threshold"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	serverErr := &ServerError{
		StatusCode: resp.StatusCode(),
		sentinel:   sentinelByStatus[resp.StatusCode()],
	}

	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		serverErr.Message = body.Error
		serverErr.Kind = body.Kind
		serverErr.Distance = body.Distance
		serverErr.Threshold = body.Threshold
	} else {
		serverErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	if serverErr.Message == "" {
		serverErr.Message = http.StatusText(resp.StatusCode())
	}

	return serverErr
}
