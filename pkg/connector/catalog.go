// pkg/connector/catalog.go
package connector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SourceTable describes one user table discovered in the source catalog.
type SourceTable struct {
	Schema      string   `json:"schema_name"`
	Name        string   `json:"table_name"`
	Columns     []string `json:"columns"`
	Description string   `json:"description"`
}

// ListTables introspects the source's catalog and returns its user tables
// with their columns, excluding system schemas. Only reads
// information_schema, which all supported source engines expose.
func (c *SourceConn) ListTables(ctx context.Context, timeout time.Duration) ([]SourceTable, error) {
	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	query := `
		SELECT table_schema, table_name, column_name
		FROM information_schema.columns
		WHERE table_schema NOT IN ('information_schema', 'pg_catalog', 'pg_toast', 'sys')
		ORDER BY table_schema, table_name, ordinal_position
	`

	rows, err := c.db.QueryContext(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query source catalog: %w", err)
	}
	defer rows.Close()

	tables := make([]SourceTable, 0)
	var current *SourceTable
	for rows.Next() {
		var schema, table, column string
		if err := rows.Scan(&schema, &table, &column); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}

		if current == nil || current.Schema != schema || current.Name != table {
			tables = append(tables, SourceTable{
				Schema:      schema,
				Name:        table,
				Description: fmt.Sprintf("%s.%s", schema, table),
			})
			current = &tables[len(tables)-1]
		}
		current.Columns = append(current.Columns, column)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog rows: %w", err)
	}

	c.logger.Info("Introspected source catalog",
		zap.String("host", c.details.Host),
		zap.String("database", c.details.Database),
		zap.Int("tableCount", len(tables)))

	return tables, nil
}
