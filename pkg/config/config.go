// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Warehouse connection
	Warehouse *WarehouseConfig

	// HTTP shell
	ListenAddr  string
	CORSOrigins []string

	// Extraction settings
	SourceQueryTimeout time.Duration
	SourcePingTimeout  time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		ListenAddr:         getEnv("LISTEN_ADDR", ":8000"),
		CORSOrigins:        getEnvAsStringSlice("CORS_ORIGINS", []string{"*"}),
		SourceQueryTimeout: time.Duration(getEnvAsInt("SOURCE_QUERY_TIMEOUT_SECONDS", 60)) * time.Second,
		SourcePingTimeout:  time.Duration(getEnvAsInt("SOURCE_PING_TIMEOUT_SECONDS", 5)) * time.Second,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}

	whConfig, err := LoadWarehouseConfig()
	if err != nil {
		return nil, errors.New("failed to load warehouse configuration: " + err.Error())
	}
	cfg.Warehouse = whConfig

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Warehouse == nil {
		return errors.New("warehouse configuration is required")
	}

	if c.SourceQueryTimeout <= 0 {
		return errors.New("source query timeout must be positive")
	}

	if c.ListenAddr == "" {
		return errors.New("listen address is required")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsStringSlice parses a comma-separated environment variable
func getEnvAsStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	for _, v := range strings.Split(value, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			result = append(result, v)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
