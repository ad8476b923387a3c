// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Fragment loaders call it with a pointer to their own [Settings]
// section, so each fragment reads only the variables its `env` tags name.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type). A missing variable is never an error.
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
