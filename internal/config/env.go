// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ClientEnvPrefix namespaces the client's variables so they cannot collide
// with the server's SERVER_ADDRESS when both run from one shell.
const ClientEnvPrefix = "FORUM_"

// parseEnv fills cfg from its `env` tags. The server reads its variables
// unprefixed; the client passes ClientEnvPrefix.
func parseEnv(cfg any, prefix string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		if prefix == "" {
			return fmt.Errorf("error getting env configs: %w", err)
		}
		return fmt.Errorf("error getting %s* env configs: %w", prefix, err)
	}

	return nil
}
