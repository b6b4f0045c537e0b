// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	if UserIDCtxKey.String() != "userID" {
		t.Errorf("expected 'userID', got '%s'", UserIDCtxKey.String())
	}
	if UsernameCtxKey.String() != "username" {
		t.Errorf("expected 'username', got '%s'", UsernameCtxKey.String())
	}
}

func TestWithUser(t *testing.T) {
	ctx := WithUser(context.Background(), 42, "ann")

	userID, ok := GetUserIDFromContext(ctx)
	if !ok || userID != 42 {
		t.Fatalf("expected userID=42, got %d (ok=%v)", userID, ok)
	}

	username, ok := GetUsernameFromContext(ctx)
	if !ok || username != "ann" {
		t.Fatalf("expected username 'ann', got '%s' (ok=%v)", username, ok)
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	userID, ok := GetUserIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if userID != 0 {
		t.Errorf("expected userID=0, got %d", userID)
	}
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "not-an-int64")

	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetUserIDFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), int64(99))

	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
