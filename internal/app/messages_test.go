// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryable(t *testing.T) {
	for _, kind := range []string{KindSampleEncoding, KindBiometricMismatch, KindUnavailable, KindAuditFailed} {
		assert.True(t, Retryable(kind), kind)
	}
	for _, kind := range []string{KindInvalidCredentials, KindUserInactive, KindEnrollmentIncomplete, KindInternal, ""} {
		assert.False(t, Retryable(kind), kind)
	}
}
