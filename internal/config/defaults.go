// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "github.com/mcuadros/go-defaults"

// parseDefaults fills cfg from the `default` struct tags.
func parseDefaults(cfg *StructuredConfig) {
	defaults.SetDefaults(cfg)
}
