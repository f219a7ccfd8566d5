// pkg/config/warehouse.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// WarehouseConfig holds connection parameters for the analytical warehouse
// (a PostgreSQL database, e.g. a Supabase project).
type WarehouseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// Statement timeout
	StatementTimeout time.Duration
}

// LoadWarehouseConfig loads warehouse configuration from environment variables
func LoadWarehouseConfig() (*WarehouseConfig, error) {
	user := os.Getenv("WAREHOUSE_USER")
	if user == "" {
		return nil, errors.New("WAREHOUSE_USER environment variable is required")
	}

	password := os.Getenv("WAREHOUSE_PASSWORD")
	if password == "" {
		return nil, errors.New("WAREHOUSE_PASSWORD environment variable is required")
	}

	database := os.Getenv("WAREHOUSE_DB")
	if database == "" {
		return nil, errors.New("WAREHOUSE_DB environment variable is required")
	}

	cfg := &WarehouseConfig{
		Host:     getEnv("WAREHOUSE_HOST", "localhost"),
		Port:     getEnvAsInt("WAREHOUSE_PORT", 5432),
		User:     user,
		Password: password,
		Database: database,
		SSLMode:  getEnv("WAREHOUSE_SSLMODE", "disable"),

		MaxOpenConns:     getEnvAsInt("WAREHOUSE_MAX_OPEN_CONNS", 25),
		MaxIdleConns:     getEnvAsInt("WAREHOUSE_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime:  time.Duration(getEnvAsInt("WAREHOUSE_CONN_MAX_LIFETIME_SECONDS", 1800)) * time.Second,
		ConnMaxIdleTime:  time.Duration(getEnvAsInt("WAREHOUSE_CONN_MAX_IDLE_TIME_SECONDS", 600)) * time.Second,
		StatementTimeout: time.Duration(getEnvAsInt("WAREHOUSE_STATEMENT_TIMEOUT_SECONDS", 300)) * time.Second,
	}

	return cfg, nil
}

// ConnectionString returns a formatted PostgreSQL connection string
func (c *WarehouseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}
