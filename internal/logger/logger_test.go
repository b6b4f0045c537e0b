// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode returns the single JSON entry written to buf.
func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("go-bio-auth-dbinit")
	l.Logger = l.Output(&buf)

	l.Info().Int64("user_id", 7).Msg("sample user created")

	entry := decode(t, &buf)
	assert.Equal(t, "go-bio-auth-dbinit", entry["role"])
	assert.EqualValues(t, 7, entry["user_id"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_Fields")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("audit write failed")

	assert.Zero(t, buf.Len())
}

func TestGetChildLogger_AddsFieldsWithoutTouchingParent(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "server").Logger()}

	child := parent.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "abc")
	})

	child.Info().Msg("child")
	entry := decode(t, &buf)
	assert.Equal(t, "server", entry["role"])
	assert.Equal(t, "abc", entry["trace_id"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decode(t, &buf), "trace_id")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	attached := zerolog.New(&buf).With().Str("trace_id", "t-1").Logger()

	FromContext(attached.WithContext(context.Background())).Warn().Msg("ledger write retried")
	assert.Equal(t, "t-1", decode(t, &buf)["trace_id"])

	// without an attached logger zerolog falls back to its default logger
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Debug().Msg("no logger")
	})
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	attached := zerolog.New(&buf).With().Str("trace_id", "t-2").Logger()

	req := httptest.NewRequest(http.MethodPost, "/api/verify", nil)
	req = req.WithContext(attached.WithContext(req.Context()))

	FromRequest(req).Info().Msg("verification decided")
	assert.Equal(t, "t-2", decode(t, &buf)["trace_id"])
}

// TestNew_Level verifies that the configured level filters entries.
func TestNew_Level(t *testing.T) {
	l, closer, err := New("svc", config.Log{Level: "warn"})
	require.NoError(t, err)
	defer closer.Close()

	var buf bytes.Buffer
	l.Logger = l.Output(&buf)

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

// TestNew_InvalidLevel verifies that unknown level names are rejected.
func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("svc", config.Log{Level: "loud"})
	assert.Error(t, err)
}

// TestNew_RotatingFile verifies that entries reach the rotating file and the
// stable link name.
func TestNew_RotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	l, closer, err := New("svc", config.Log{
		Level:        "info",
		Dir:          dir,
		MaxAge:       24 * time.Hour,
		RotationTime: time.Hour,
	})
	require.NoError(t, err)

	l.Info().Str("k", "v").Msg("to file")
	require.NoError(t, closer.Close())

	matches, err := filepath.Glob(filepath.Join(dir, "svc.*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")

	_, err = os.Lstat(filepath.Join(dir, "svc.log"))
	assert.NoError(t, err)
}
