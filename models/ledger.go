// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuthMethod identifies how an authentication attempt was made.
type AuthMethod string

const (
	AuthMethodPassword     AuthMethod = "password"
	AuthMethodBiometric    AuthMethod = "biometric"
	AuthMethodVerification AuthMethod = "verification"
)

// Valid reports whether m is a known method.
func (m AuthMethod) Valid() bool {
	switch m {
	case AuthMethodPassword, AuthMethodBiometric, AuthMethodVerification:
		return true
	}
	return false
}

// TrialLabel is the known ground truth of an evaluation attempt.
type TrialLabel string

const (
	TrialNone     TrialLabel = ""
	TrialGenuine  TrialLabel = "genuine"
	TrialImpostor TrialLabel = "impostor"
)

// Valid reports whether l is empty or a known label.
func (l TrialLabel) Valid() bool {
	switch l {
	case TrialNone, TrialGenuine, TrialImpostor:
		return true
	}
	return false
}

// LedgerEntry is one recorded authentication attempt. Entries are
// append-only.
type LedgerEntry struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Timestamp time.Time  `json:"timestamp"`
	Method    AuthMethod `json:"auth_method"`

	// Distance and Threshold are nil for password attempts.
	Distance  *float64 `json:"hamming_distance"`
	Threshold *float64 `json:"threshold"`

	Verified   bool       `json:"success"`
	TrialLabel TrialLabel `json:"trial_label,omitempty"`
}

// TableName returns the name of the database table
// associated with the LedgerEntry model.
func (e LedgerEntry) TableName() string {
	return "authentication_log"
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}
