// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account that owns a biometric enrollment.
// The password hash never leaves the server.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is the contact address, unique across users.
	Email string `json:"email"`

	// Password carries the plaintext password on the way in (registration,
	// login). It is cleared before a user is returned to callers.
	Password string `json:"-"`

	// PasswordHash is the bcrypt hash persisted by the store.
	PasswordHash string `json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`

	// IsActive is false for deactivated accounts, which can neither log in
	// nor be identified biometrically.
	IsActive bool `json:"is_active"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of u with credential fields cleared.
func (u User) Public() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}
