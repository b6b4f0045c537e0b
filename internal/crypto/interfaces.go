// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds password hashing and random material generation.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	// Hash returns an encoded hash of password including its salt and cost.
	Hash(password string) (string, error)

	// Compare returns nil when password matches hash and
	// [ErrPasswordMismatch] when it does not.
	Compare(hash, password string) error
}
