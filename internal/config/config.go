package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Storage   StorageConfig   `yaml:"storage"`
	Claims    ClaimsConfig    `yaml:"claims"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	Token    string  `yaml:"token"`
	AdminIDs []int64 `yaml:"admin_ids"`
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ClaimsConfig holds link allocation policy configuration
type ClaimsConfig struct {
	// Policy is either "best_effort" (grant whatever subset is free)
	// or "all_or_nothing" (reject the request if any number is taken)
	Policy string `yaml:"policy"`
	// MaxRangeSpan caps how many numbers a single range request may cover
	MaxRangeSpan int `yaml:"max_range_span"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	MaxRequestsPerMinute int `yaml:"max_requests_per_minute"`
	WindowSeconds        int `yaml:"window_seconds"`
}

// MetricsConfig holds the optional Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// envOverrides are applied on top of config.yaml so deployments can keep
// secrets out of the file
type envOverrides struct {
	Token       string `envconfig:"TELEGRAM_TOKEN"`
	StoragePath string `envconfig:"STORAGE_PATH"`
	MetricsAddr string `envconfig:"METRICS_ADDR"`
}

// Load reads configuration from config.yaml and the environment
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile("config.yaml")
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if env.Token != "" {
		cfg.Telegram.Token = env.Token
	}
	if env.StoragePath != "" {
		cfg.Storage.Path = env.StoragePath
	}
	if env.MetricsAddr != "" {
		cfg.Metrics.Addr = env.MetricsAddr
		cfg.Metrics.Enabled = true
	}

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram.token is required (config.yaml or TELEGRAM_TOKEN)")
	}
	if len(cfg.Telegram.AdminIDs) == 0 {
		return nil, fmt.Errorf("telegram.admin_ids is required")
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "linkdrop.db"
	}
	if cfg.Claims.Policy == "" {
		cfg.Claims.Policy = "best_effort"
	}
	if cfg.Claims.Policy != "best_effort" && cfg.Claims.Policy != "all_or_nothing" {
		return nil, fmt.Errorf("claims.policy must be best_effort or all_or_nothing, got %q", cfg.Claims.Policy)
	}
	if cfg.Claims.MaxRangeSpan <= 0 {
		cfg.Claims.MaxRangeSpan = 500
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}

	return cfg, nil
}
