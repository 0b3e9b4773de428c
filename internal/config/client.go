package config

import (
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// ClientConfig configures the command-line forum client.
type ClientConfig struct {
	// ServerAddress is the base URL of the forum server. A bare host:port
	// is treated as http.
	// Env: FORUM_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout bounds every request to the server.
	// Env: FORUM_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token sent with authenticated requests, usually
	// the one printed by the login command.
	// Env: FORUM_TOKEN
	Token string `env:"TOKEN"`
}

// ClientDefaults returns the values used for every client field no source
// has set.
func ClientDefaults() ClientConfig {
	return ClientConfig{
		ServerAddress:  "http://127.0.0.1:8000",
		RequestTimeout: 15 * time.Second,
	}
}

// GetClientConfig loads the client configuration from environment variables
// and then flags, which win. It returns the positional arguments left after
// the flags.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	var fromEnv ClientConfig
	if err := parseEnv(&fromEnv, ClientEnvPrefix); err != nil {
		return nil, nil, err
	}

	var fromFlags ClientConfig
	fs := flag.NewFlagSet("go-forum-client", flag.ContinueOnError)
	fs.StringVar(&fromFlags.ServerAddress, "s", "", "Forum server base URL")
	fs.DurationVar(&fromFlags.RequestTimeout, "timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&fromFlags.Token, "token", "", "Bearer token")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg := fromEnv
	if err := mergo.Merge(&cfg, fromFlags, mergo.WithOverride); err != nil {
		return nil, nil, fmt.Errorf("error merging client configs: %w", err)
	}
	if err := mergo.Merge(&cfg, ClientDefaults()); err != nil {
		return nil, nil, fmt.Errorf("error applying default client configs: %w", err)
	}

	return &cfg, fs.Args(), nil
}
