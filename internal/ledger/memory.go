// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-bio-auth/models"
)

// MemoryLedger keeps entries in process memory. It is the in-process
// implementation of [Ledger] for embedding the verification core without a
// database and for tests. The server records to the authentication_log
// table instead. Entries and Recent expose the recorded history for
// inspection.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries []models.LedgerEntry
	nextID  int64

	now func() time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{nextID: 1, now: time.Now}
}

// Record appends a copy of e, assigning its id and, when unset, its timestamp.
func (l *MemoryLedger) Record(ctx context.Context, e models.LedgerEntry) error {
	if err := Validate(e); err != nil {
		return err
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = l.now().UTC()
	}
	e.Distance = copyFloat(e.Distance)
	e.Threshold = copyFloat(e.Threshold)

	l.mu.Lock()
	defer l.mu.Unlock()

	e.ID = l.nextID
	l.nextID++
	l.entries = append(l.entries, e)

	return nil
}

// Summary aggregates every entry recorded so far.
func (l *MemoryLedger) Summary(ctx context.Context) (models.SystemStatistics, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Summarize(l.entries), nil
}

// Entries returns a snapshot of all entries in insertion order.
func (l *MemoryLedger) Entries(ctx context.Context) []models.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Recent returns up to limit newest entries of userID, newest first.
func (l *MemoryLedger) Recent(ctx context.Context, userID int64, limit int) []models.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.LedgerEntry
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if l.entries[i].UserID == userID {
			out = append(out, l.entries[i])
		}
	}
	return out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
