// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// ToolConfig is the subset of the configuration used by database tooling.
type ToolConfig struct {
	Storage   Storage
	Biometric Biometric
	App       App
	Log       Log
}

// GetToolConfig builds the tooling configuration from defaults, the
// environment, args and the optional config file. Token settings are not
// required.
func GetToolConfig(args []string) (*ToolConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withFile().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	toolCfg := &ToolConfig{
		Storage:   cfg.Storage,
		Biometric: cfg.Biometric,
		App:       cfg.App,
		Log:       cfg.Log,
	}

	return toolCfg, toolCfg.validate()
}

func (cfg *ToolConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if err := cfg.Biometric.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBiometricConfigs, err)
	}
	return nil
}
