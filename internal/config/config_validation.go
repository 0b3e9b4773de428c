// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.Server.Validate(); err != nil {
		return err
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 || cfg.App.LoginRatePerSecond <= 0 || cfg.App.LoginBurst <= 0 {
		return fmt.Errorf("%w: token duration and login rate must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Workers.KeySweepInterval <= 0 {
		return fmt.Errorf("%w: key sweep interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

// Validate checks the server settings on their own. It is also used by the
// server package at startup, so a hand-built Server value gets the same
// checks as a loaded one.
func (s Server) Validate() error {
	if _, _, err := net.SplitHostPort(s.HTTPAddress); err != nil {
		return fmt.Errorf("%w: bind address %q: %v", ErrInvalidServerConfigs, s.HTTPAddress, err)
	}

	if s.ReadHeaderTimeout < 0 || s.ReadTimeout < 0 || s.WriteTimeout < 0 || s.IdleTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidServerConfigs)
	}

	if s.GracePeriod < 0 {
		return fmt.Errorf("%w: grace period must not be negative", ErrInvalidServerConfigs)
	}

	if s.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: max body bytes must not be negative", ErrInvalidServerConfigs)
	}

	return nil
}
