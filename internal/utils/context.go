// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the transport layers: request
// context keys, JSON responses, JWT handling, trace ids and the HTTP client.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, so values stored by this
// package cannot collide with string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey stores the authenticated user id (int64).
	UserIDCtxKey = contextKey("userID")

	// UsernameCtxKey stores the authenticated username (string).
	UsernameCtxKey = contextKey("username")
)

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, userID int64, username string) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, UsernameCtxKey, username)
}

// GetUserIDFromContext returns the user id stored by [WithUser]. ok is false
// when the value is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetUsernameFromContext returns the username stored by [WithUser].
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}
