package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		Version            string   `json:"version"`
		CORSAllowOrigin    string   `json:"cors_allow_origin"`
		LoginRatePerSecond float64  `json:"login_rate_per_second"`
		LoginBurst         int      `json:"login_burst"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		ReadHeaderTimeout Duration `json:"read_header_timeout"`
		ReadTimeout       Duration `json:"read_timeout"`
		WriteTimeout      Duration `json:"write_timeout"`
		IdleTimeout       Duration `json:"idle_timeout"`
		GracePeriod       Duration `json:"grace_period"`
		MaxBodyBytes      int64    `json:"max_body_bytes"`
		MetricsPath       string   `json:"metrics_path"`
	} `json:"server,omitempty"`

	Workers struct {
		KeySweepInterval Duration `json:"key_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:       jsonCfg.App.TokenSignKey,
			TokenIssuer:        jsonCfg.App.TokenIssuer,
			TokenDuration:      time.Duration(jsonCfg.App.TokenDuration),
			Version:            jsonCfg.App.Version,
			CORSAllowOrigin:    jsonCfg.App.CORSAllowOrigin,
			LoginRatePerSecond: jsonCfg.App.LoginRatePerSecond,
			LoginBurst:         jsonCfg.App.LoginBurst,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			ReadHeaderTimeout: time.Duration(jsonCfg.Server.ReadHeaderTimeout),
			ReadTimeout:       time.Duration(jsonCfg.Server.ReadTimeout),
			WriteTimeout:      time.Duration(jsonCfg.Server.WriteTimeout),
			IdleTimeout:       time.Duration(jsonCfg.Server.IdleTimeout),
			GracePeriod:       time.Duration(jsonCfg.Server.GracePeriod),
			MaxBodyBytes:      jsonCfg.Server.MaxBodyBytes,
			MetricsPath:       jsonCfg.Server.MetricsPath,
		},
		Workers: Workers{
			KeySweepInterval: time.Duration(jsonCfg.Workers.KeySweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
