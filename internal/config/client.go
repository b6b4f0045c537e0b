// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientConfig is the command-line client's view of the configuration.
type ClientConfig struct {
	Adapter ClientAdapter
	Log     Log
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the server API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// TokenFile is where the session token is kept.
	TokenFile string
}

// GetClientConfig builds the client configuration from defaults, the
// environment and the optional config file. Flags belong to the client's
// subcommands and are not read here.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFile().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			TokenFile:      cfg.Adapter.TokenFile,
		},
		Log: cfg.Log,
	}

	return clientCfg, clientCfg.validate()
}
