// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ledger records authentication attempts and derives the statistics
// used to tune the acceptance threshold.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bio-auth/models"
)

//go:generate mockgen -source=ledger.go -destination=../mock/ledger_mock.go -package=mock

var ErrInvalidEntry = errors.New("invalid ledger entry")

// Ledger is an append-only log of attempts. Implementations must be safe for
// concurrent use and must never lose a recorded entry.
type Ledger interface {
	Record(ctx context.Context, entry models.LedgerEntry) error
	Summary(ctx context.Context) (models.SystemStatistics, error)
}

// Validate checks the fields every implementation relies on.
func Validate(e models.LedgerEntry) error {
	switch {
	case e.UserID <= 0:
		return fmt.Errorf("%w: user id is required", ErrInvalidEntry)
	case !e.Method.Valid():
		return fmt.Errorf("%w: unknown method %q", ErrInvalidEntry, e.Method)
	case !e.TrialLabel.Valid():
		return fmt.Errorf("%w: unknown trial label %q", ErrInvalidEntry, e.TrialLabel)
	case e.Method != models.AuthMethodPassword && e.Distance == nil:
		return fmt.Errorf("%w: %s attempt without a distance", ErrInvalidEntry, e.Method)
	}
	return nil
}
