// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client runtime.
//
// It captures samples from image files, talks to the server through
// [adapter.ServerAdapter] and keeps the session token between invocations.
package client
