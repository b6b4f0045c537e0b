// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-bio-auth/internal/logger"
)

// withLogging writes one access log line per request. Server errors are
// logged at error level and client errors at warn level; biometric images
// are never logged, only the request size.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		uri := r.RequestURI
		method := r.Method
		requestSize := r.ContentLength

		lw := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)

		status := lw.Status()
		level := zerolog.InfoLevel
		switch {
		case status >= http.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case status >= http.StatusBadRequest:
			level = zerolog.WarnLevel
		}

		logger.FromRequest(r).WithLevel(level).
			Str("uri", uri).
			Str("method", method).
			Int64("request_size", requestSize).
			Int("status", status).
			Dur("duration", duration).
			Int("size", lw.size).
			Send()
	})
}

// statusRecorder captures the status and the number of body bytes written
// through it. Only the first WriteHeader reaches the wrapped writer.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (s *statusRecorder) WriteHeader(status int) {
	if s.status != 0 {
		return
	}
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.WriteHeader(http.StatusOK)
	}
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}

// Status returns the written status, or 200 for a handler that wrote
// nothing, which net/http answers with 200.
func (s *statusRecorder) Status() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}
