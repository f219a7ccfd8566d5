// pkg/connector/warehouse.go
package connector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/retailops/warehouse-ingress/pkg/config"
)

// WarehouseConnector manages the long-lived connection pool to the
// analytical warehouse. Safe for concurrent use.
type WarehouseConnector struct {
	db     *sqlx.DB
	logger *zap.Logger
	cfg    *config.WarehouseConfig
}

// NewWarehouseConnector creates and verifies a new warehouse connector
func NewWarehouseConnector(ctx context.Context, cfg *config.WarehouseConfig) (*WarehouseConnector, error) {
	logger := zap.L().Named("warehouse-connector")

	// Log connection attempt
	logger.Info("Connecting to warehouse",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	db, err := sqlx.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize warehouse connection: %w", err)
	}

	// Configure connection pool
	ApplyConnectionSettings(
		db.DB,
		cfg.MaxOpenConns,
		cfg.MaxIdleConns,
		cfg.ConnMaxLifetime,
		cfg.ConnMaxIdleTime,
	)

	// Set statement timeout if configured
	if cfg.StatementTimeout > 0 {
		_, err = db.ExecContext(
			ctx,
			fmt.Sprintf("SET statement_timeout = %d", cfg.StatementTimeout.Milliseconds()),
		)
		if err != nil {
			logger.Warn("Failed to set statement timeout", zap.Error(err))
		}
	}

	// Verify connection
	if err := PingWithTimeout(ctx, db.DB, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to warehouse: %w", err)
	}

	connector := &WarehouseConnector{
		db:     db,
		logger: logger,
		cfg:    cfg,
	}

	LogConnectionStats(logger, cfg.Database, db.DB)
	return connector, nil
}

// DB returns the underlying database handle
func (c *WarehouseConnector) DB() *sqlx.DB {
	return c.db
}

// Close closes the warehouse connection pool
func (c *WarehouseConnector) Close() error {
	c.logger.Info("Closing warehouse connection")
	LogConnectionStats(c.logger, c.cfg.Database, c.db.DB)
	return c.db.Close()
}

// Upsert appends a batch of records into a warehouse table and returns the
// number of rows written. Records share a column set; values are bound per
// row with positional placeholders.
func (c *WarehouseConnector) Upsert(
	ctx context.Context,
	table string,
	columns []string,
	valueRows [][]interface{},
) (int64, error) {
	if len(valueRows) == 0 {
		return 0, nil
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdentifier(col)
	}

	placeholders := make([]string, len(valueRows))
	args := make([]interface{}, 0, len(valueRows)*len(columns))

	for i, row := range valueRows {
		rowPlaceholders := make([]string, len(columns))
		for j, val := range row {
			paramIndex := i*len(columns) + j + 1
			rowPlaceholders[j] = fmt.Sprintf("$%d", paramIndex)
			args = append(args, val)
		}
		placeholders[i] = fmt.Sprintf("(%s)", strings.Join(rowPlaceholders, ", "))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		quoteIdentifier(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("warehouse insert failed: %w", err)
	}

	written, err := result.RowsAffected()
	if err != nil {
		c.logger.Warn("Couldn't get rows affected", zap.Error(err))
		return 0, nil
	}

	return written, nil
}

// quoteIdentifier properly quotes and escapes a PostgreSQL identifier
func quoteIdentifier(name string) string {
	return fmt.Sprintf("\"%s\"", strings.ReplaceAll(name, "\"", "\"\""))
}
