// pkg/connector/extract.go
package connector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/retailops/warehouse-ingress/pkg/model"
)

// Extract executes a query on the source and materializes the result set
// as raw records, preserving the result's column order. The query runs
// under the given timeout; the rows are fully drained before returning so
// the caller may close the connection immediately afterwards.
func (c *SourceConn) Extract(
	ctx context.Context,
	query string,
	timeout time.Duration,
) ([]string, []model.RawRecord, error) {
	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rows, err := c.db.QueryContext(queryCtx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("source query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	records := make([]model.RawRecord, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan result row: %w", err)
		}

		record := make(model.RawRecord, len(columns))
		for i, col := range columns {
			// Text columns arrive as []byte from most drivers.
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
			} else {
				record[col] = values[i]
			}
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating result rows: %w", err)
	}

	c.logger.Info("Extracted rows from source",
		zap.String("database", c.details.Database),
		zap.Int("rowCount", len(records)),
		zap.Int("columnCount", len(columns)))

	return columns, records, nil
}
