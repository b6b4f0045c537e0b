// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAlreadyExists wraps unique constraint violations.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrUsernameAlreadyExists is returned when a username or email is taken.
	ErrUsernameAlreadyExists = errors.New("username or email already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrStorageUnavailable wraps transient failures such as lost
	// connections, deadlocks and busy databases.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrCorruptCode is returned when a stored biometric code cannot be
	// decoded.
	ErrCorruptCode = errors.New("stored biometric code is corrupt")
)
