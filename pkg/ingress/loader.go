// pkg/ingress/loader.go
package ingress

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailops/warehouse-ingress/pkg/logging"
	"github.com/retailops/warehouse-ingress/pkg/model"
)

// Warehouse is the destination for normalized batches.
type Warehouse interface {
	Upsert(ctx context.Context, table string, columns []string, valueRows [][]interface{}) (int64, error)
}

// LoadExecutor writes normalized batches to the warehouse. Loads are
// fail-soft: a failed insert is logged and reported as zero persisted rows,
// never raised, so callers can still return the processed data.
type LoadExecutor struct {
	warehouse Warehouse
	logger    *zap.Logger
}

// NewLoadExecutor creates a LoadExecutor backed by the given warehouse
func NewLoadExecutor(warehouse Warehouse) *LoadExecutor {
	return &LoadExecutor{
		warehouse: warehouse,
		logger:    zap.L().Named("loader"),
	}
}

// Load appends a batch of mapped records to the entity's warehouse table.
// Records are flattened in canonical field order. Every batch gets an ID so
// a failed load can be correlated in the logs.
func (e *LoadExecutor) Load(ctx context.Context, entity model.Entity, records []*model.MappedRecord) LoadResult {
	result := LoadResult{
		BatchID:   uuid.NewString(),
		Attempted: len(records),
	}
	if len(records) == 0 {
		return result
	}

	schema := entity.Schema()
	columns := schema.FieldNames()
	valueRows := make([][]interface{}, len(records))
	for i, record := range records {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			row[j] = record.Get(col)
		}
		valueRows[i] = row
	}

	written, err := e.warehouse.Upsert(ctx, entity.Table(), columns, valueRows)
	if err != nil {
		e.logger.Warn("Warehouse load failed, continuing without persistence",
			zap.String("batchID", result.BatchID),
			zap.String("table", entity.Table()),
			zap.Int("attempted", result.Attempted),
			zap.String("error", logging.Redact(err.Error())))
		return result
	}

	result.Persisted = int(written)
	e.logger.Info("Loaded batch into warehouse",
		zap.String("batchID", result.BatchID),
		zap.String("table", entity.Table()),
		zap.Int("persisted", result.Persisted))
	return result
}
