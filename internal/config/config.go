// Package config loads runtime settings for the glossary server and client
// from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Client   ClientConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig selects the storage driver and its DSN.
type DatabaseConfig struct {
	Driver string // "sqlite" or "mysql"
	Path   string // SQLite file path or ":memory:"
	URL    string // MySQL DSN, e.g. user:pass@tcp(host:3306)/glossary
}

// LogConfig contains logging settings.
type LogConfig struct {
	Environment string // "production" switches to JSON output
	Level       string
	File        string // terminal client only; empty discards logs
}

// ClientConfig contains settings for the terminal client.
type ClientConfig struct {
	APIURL          string
	Timeout         time.Duration
	AnthropicAPIKey string
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	readTimeout, err := getEnvDuration("READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvDuration("WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	clientTimeout, err := getEnvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite)),
			Path:   getEnv("DATABASE_PATH", "glossary.db"),
			URL:    getEnv("DATABASE_URL", ""),
		},
		Log: LogConfig{
			Environment: strings.ToLower(getEnv("ENVIRONMENT", "development")),
			Level:       getEnv("LOG_LEVEL", "info"),
			File:        getEnv("GLOSSARY_LOG", ""),
		},
		Client: ClientConfig{
			APIURL:          strings.TrimRight(getEnv("API_URL", "http://localhost:8080"), "/"),
			Timeout:         clientTimeout,
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH cannot be empty for the sqlite driver")
		}
	case DriverMySQL:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the mysql driver")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want %s or %s)", c.Database.Driver, DriverSQLite, DriverMySQL)
	}

	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Server.Port, err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// String returns a representation of the config with secrets masked.
func (c *Config) String() string {
	dsn := c.Database.Path
	if c.Database.Driver == DriverMySQL {
		dsn = maskDSN(c.Database.URL)
	}
	key := ""
	if c.Client.AnthropicAPIKey != "" {
		key = "***"
	}
	return fmt.Sprintf("Config{Port: %s, DB: %s (%s), Env: %s, Log: %s, API: %s, AnthropicKey: %s}",
		c.Server.Port, c.Database.Driver, dsn, c.Log.Environment, c.Log.Level, c.Client.APIURL, key)
}

// maskDSN hides the password part of a user:pass@... DSN.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	creds := dsn[:at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		return creds[:colon] + ":***" + dsn[at:]
	}
	return dsn
}

func getEnv(key, defaultVal string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}
