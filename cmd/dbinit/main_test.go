// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/crypto"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/store"
)

var dbCounter atomic.Int64

func memoryDSN() string {
	return fmt.Sprintf("file:dbinit_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbCounter.Add(1))
}

func TestRun_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no command", args: nil, wantErr: errUnknownCommand},
		{name: "unknown command", args: []string{"drop"}, wantErr: errUnknownCommand},
		{name: "reset without confirmation", args: []string{"reset"}, wantErr: errResetNotConfirmed},
		{name: "deactivate without user", args: []string{"deactivate"}, wantErr: errNoUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), tt.args, &out, logger.Nop())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRun_SampleThenDeactivate(t *testing.T) {
	dsn := memoryDSN()
	ctx := context.Background()

	// keeps the shared in-memory database alive between runs
	keep, err := store.NewDB(ctx, config.DB{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	defer keep.Close()

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"sample", "-d", dsn, "-bit-length", "64"}, &out, logger.Nop()))
	assert.Contains(t, out.String(), "demo_user")

	storages := store.NewStorages(keep, logger.Nop())
	user, err := storages.UserRepository.FindUserByUsername(ctx, sampleUsername)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NoError(t, crypto.NewBcryptHasher(0).Compare(user.PasswordHash, samplePassword))

	enrollment, err := storages.EnrollmentRepository.GetEnrollment(ctx, user.UserID)
	require.NoError(t, err)
	require.NoError(t, enrollment.Verifiable(biometric.RequiredModalities()...))
	face, _ := enrollment.Code(biometric.ModalityFace)
	assert.Equal(t, 64, face.Len())

	out.Reset()
	require.NoError(t, run(ctx, []string{"-user", sampleUsername, "deactivate", "-d", dsn}, &out, logger.Nop()))
	user, err = storages.UserRepository.FindUserByUsername(ctx, sampleUsername)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	err = run(ctx, []string{"sample", "-d", dsn, "-bit-length", "64"}, &out, logger.Nop())
	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

func TestRun_ResetDropsData(t *testing.T) {
	dsn := memoryDSN()
	ctx := context.Background()

	keep, err := store.NewDB(ctx, config.DB{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	defer keep.Close()

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"sample", "-d", dsn, "-bit-length", "64"}, &out, logger.Nop()))
	require.NoError(t, run(ctx, []string{"-yes", "reset", "-d", dsn}, &out, logger.Nop()))

	_, err = store.NewStorages(keep, logger.Nop()).UserRepository.FindUserByUsername(ctx, sampleUsername)
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}
