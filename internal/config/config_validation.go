// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [Settings] satisfies all application
// invariants before it is used at startup.
//
// The rules are deliberately permissive because fragments supply working
// defaults for every section; only values that can arrive broken from flags
// or the JSON file are checked.
func (cfg *Settings) validate() error {
	if cfg.Login.SessionDuration < 0 {
		return ErrInvalidLoginConfigs
	}

	return nil
}
