// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (financ.yaml)
//  2. Environment variables (fallback)
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "financ.yaml"

// Config represents the entire application configuration
type Config struct {
	Ledger        LedgerConfig        `yaml:"ledger"`
	Correlator    CorrelatorConfig    `yaml:"correlator"`
	API           APIConfig           `yaml:"api"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// LedgerConfig holds the GnuCash database location
type LedgerConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// CorrelatorConfig holds matching parameters
type CorrelatorConfig struct {
	// MaxDateOffset is the maximum ring offset in days
	MaxDateOffset int `yaml:"max_date_offset"`
	// LoadLimit caps the bulk split load; rows beyond it are silently
	// dropped
	LoadLimit int64 `yaml:"load_limit"`
}

// APIConfig holds the read-only HTTP API settings
type APIConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${GNUCASH_DB})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Ledger: LedgerConfig{
			DatabasePath: getEnv("DATABASE_URL", ""),
		},
		Correlator: CorrelatorConfig{
			MaxDateOffset: getEnvInt("FINANC_MAX_DATE_OFFSET", 0),
			LoadLimit:     int64(getEnvInt("FINANC_LOAD_LIMIT", 0)),
		},
		API: APIConfig{
			Port: getEnvInt("FINANC_API_PORT", 0),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level: getEnv("LOG_LEVEL", "info"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries the given path (or DefaultPath when empty), falling
// back to environment variables
func LoadOrEnv(path string) *Config {
	if path == "" {
		path = DefaultPath
	}
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

func (c *Config) applyDefaults() {
	if c.Correlator.MaxDateOffset <= 0 {
		c.Correlator.MaxDateOffset = 10
	}
	if c.Correlator.LoadLimit <= 0 {
		c.Correlator.LoadLimit = 10000
	}
	if c.API.Port <= 0 {
		c.API.Port = 8080
	}
	if len(c.API.AllowedOrigins) == 0 {
		c.API.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}
