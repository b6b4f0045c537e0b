// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bio-auth/internal/logger"
)

// newBufferedHandler returns a Handler whose logger writes JSON lines to buf.
func newBufferedHandler(buf *bytes.Buffer) *Handler {
	return &Handler{logger: &logger.Logger{Logger: zerolog.New(buf)}}
}

// lastLogLine decodes the last JSON line written to buf.
func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[len(lines)-1], "nothing was logged")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantKept   bool
		wantUUIDv7 bool
	}{
		{name: "caller id kept", header: "login-4f2a", wantKept: true},
		{name: "dotted id kept", header: "client_1.retry-2", wantKept: true},
		{name: "missing id generated", wantUUIDv7: true},
		{name: "forged log field replaced", header: `x","level":"error`, wantUUIDv7: true},
		{name: "newline replaced", header: "a\nb", wantUUIDv7: true},
		{name: "oversized id replaced", header: strings.Repeat("a", maxTraceIDBytes+1), wantUUIDv7: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := newBufferedHandler(&buf)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("verification decided")
			})

			req := httptest.NewRequest(http.MethodPost, "/api/verify", nil)
			if tt.header != "" {
				req.Header.Set(traceIDHeader, tt.header)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			got := rr.Header().Get(traceIDHeader)
			if tt.wantKept {
				assert.Equal(t, tt.header, got)
			}
			if tt.wantUUIDv7 {
				id, err := uuid.Parse(got)
				require.NoError(t, err)
				assert.EqualValues(t, 7, id.Version())
			}

			entry := lastLogLine(t, &buf)
			assert.Equal(t, got, entry["trace_id"])
			assert.Equal(t, "info", entry["level"])
		})
	}
}

func TestWithTraceID_DistinctPerRequest(t *testing.T) {
	api := newTestAPI(t)
	api.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1").Times(2)

	first := api.do(t, http.MethodGet, "/api/version", nil, "")
	second := api.do(t, http.MethodGet, "/api/version", nil, "")

	assert.NotEmpty(t, first.Header().Get(traceIDHeader))
	assert.NotEqual(t, first.Header().Get(traceIDHeader), second.Header().Get(traceIDHeader))
}
