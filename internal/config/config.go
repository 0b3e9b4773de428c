// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-forum server. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters, CORS
	// and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the bind address, connection timeouts and shutdown
	// grace period of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify bearer tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an authentication key (and the token
	// wrapping it) stays valid after login (e.g. "24h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the version string exposed via GET /version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// CORSAllowOrigin is the value of Access-Control-Allow-Origin added to
	// every response.
	// Env: APP_CORS_ALLOW_ORIGIN
	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN"`

	// LoginRatePerSecond limits login attempts across all clients.
	// Env: APP_LOGIN_RATE_PER_SECOND
	LoginRatePerSecond float64 `env:"LOGIN_RATE_PER_SECOND"`

	// LoginBurst is the burst size of the login limiter.
	// Env: APP_LOGIN_BURST
	LoginBurst int `env:"LOGIN_BURST"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// ReadHeaderTimeout bounds reading the request line and headers.
	// Env: SERVER_READ_HEADER_TIMEOUT
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT"`

	// ReadTimeout bounds reading the whole request, body included.
	// Env: SERVER_READ_TIMEOUT
	ReadTimeout time.Duration `env:"READ_TIMEOUT"`

	// WriteTimeout bounds writing the response.
	// Env: SERVER_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`

	// IdleTimeout is how long a keep-alive connection may wait for the next
	// request before it is closed.
	// Env: SERVER_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT"`

	// GracePeriod is how long in-flight requests may run after shutdown
	// starts before their connections are forcibly closed.
	// Env: SERVER_GRACE_PERIOD
	GracePeriod time.Duration `env:"GRACE_PERIOD"`

	// MaxBodyBytes is the largest request body the dispatcher reads.
	// Env: SERVER_MAX_BODY_BYTES
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES"`

	// MetricsPath mounts the Prometheus handler when non-empty
	// (e.g. "/metrics").
	// Env: SERVER_METRICS_PATH
	MetricsPath string `env:"METRICS_PATH"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver: "postgres://" and "postgresql://" use pgx,
	// anything else is a SQLite path (":memory:" for an in-memory database).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// KeySweepInterval is how often expired authentication keys are purged.
	// Env: WORKERS_KEY_SWEEP_INTERVAL
	KeySweepInterval time.Duration `env:"KEY_SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Zero fields left after merging are filled from [Defaults].
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}

// Defaults returns the values used for every field no source has set.
func Defaults() StructuredConfig {
	return StructuredConfig{
		App: App{
			TokenIssuer:        "go-forum",
			TokenDuration:      24 * time.Hour,
			Version:            "N/A",
			CORSAllowOrigin:    "*",
			LoginRatePerSecond: 5,
			LoginBurst:         10,
		},
		Storage: Storage{
			DB: DB{DSN: "forum.db"},
		},
		Server: Server{
			HTTPAddress:       "127.0.0.1:8000",
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			GracePeriod:       10 * time.Second,
			MaxBodyBytes:      1 << 20,
		},
		Workers: Workers{
			KeySweepInterval: time.Hour,
		},
	}
}
