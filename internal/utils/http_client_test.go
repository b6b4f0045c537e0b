// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"
)

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient("http://localhost:5000", 3*time.Second)

	if client == nil || client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil")
	}
	if client.BaseURL != "http://localhost:5000" {
		t.Errorf("expected base URL to be set, got %q", client.BaseURL)
	}
	if got := client.GetClient().Timeout; got != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", got)
	}
	if client.Header.Get("Accept") != "application/json" {
		t.Errorf("expected JSON Accept header, got %q", client.Header.Get("Accept"))
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("http://a", 0)
	client2 := NewHTTPClient("http://b", 0)

	if client1.Client == client2.Client {
		t.Fatal("expected independent *resty.Client instances")
	}
	if client1.GetClient().Timeout != 0 {
		t.Errorf("expected no timeout, got %v", client1.GetClient().Timeout)
	}
}
