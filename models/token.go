// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set issued to authenticated users: the standard
// registered claims plus the username, so handlers can build responses
// without a user lookup.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// Token is a signed session token.
//
// SignedString holds the compact form sent in the Authorization header.
// UserID and Username are parsed copies of the "sub" and "username" claims.
type Token struct {
	*jwt.Token `json:"-"`

	Claims Claims `json:"-"`

	SignedString string `json:"-"`
	UserID       int64  `json:"-"`
	Username     string `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	sub, err := t.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
