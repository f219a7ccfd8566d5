// pkg/mapper/mapper.go
package mapper

import (
	"strings"

	"go.uber.org/zap"

	"github.com/retailops/warehouse-ingress/pkg/model"
)

// ColumnMapping maps a canonical field name to the raw source column it was
// matched from. A canonical field absent from the mapping is unmatched and
// will be defaulted.
type ColumnMapping map[string]string

// MapColumns matches raw source columns to the canonical fields of a
// schema. For each canonical field, in schema order: a byte-identical
// column wins; otherwise the first case-insensitive match in the given
// column order is taken. A column binds to at most one field
// (first-claim-wins). Columns no field claims are dropped from the mapped
// output.
func MapColumns(schema *model.CanonicalSchema, columns []string) ColumnMapping {
	mapping := make(ColumnMapping, len(schema.Fields))
	claimed := make(map[string]bool, len(columns))

	for _, field := range schema.Fields {
		// Try exact match first
		if !claimed[field.Name] && containsColumn(columns, field.Name) {
			mapping[field.Name] = field.Name
			claimed[field.Name] = true
			continue
		}

		// Fall back to case-insensitive match
		for _, col := range columns {
			if claimed[col] {
				continue
			}
			if strings.EqualFold(col, field.Name) {
				mapping[field.Name] = col
				claimed[col] = true
				break
			}
		}
	}

	return mapping
}

func containsColumn(columns []string, name string) bool {
	for _, col := range columns {
		if col == name {
			return true
		}
	}
	return false
}

// Mapper rewrites raw record batches into mapped records for one canonical
// schema, synthesizing defaults for unmatched fields.
type Mapper struct {
	schema *model.CanonicalSchema
	logger *zap.Logger
	clock  Clock
}

// New creates a Mapper for the given schema
func New(schema *model.CanonicalSchema) *Mapper {
	return &Mapper{
		schema: schema,
		logger: zap.L().Named("mapper"),
		clock:  systemClock,
	}
}

// WithClock overrides the wall-clock source used for temporal defaults and
// returns the modified mapper.
func (m *Mapper) WithClock(clock Clock) *Mapper {
	m.clock = clock
	return m
}

// MapBatch maps a batch of raw records onto the canonical schema. Every
// returned record carries exactly the canonical field set in schema order,
// regardless of how incomplete the input was. Matched values pass through
// unchanged; coercion happens downstream.
func (m *Mapper) MapBatch(columns []string, rows []model.RawRecord) ([]*model.MappedRecord, ColumnMapping) {
	mapping := MapColumns(m.schema, columns)

	if missing := m.missingFields(mapping); len(missing) > 0 {
		m.logger.Warn("Missing fields will be filled with defaults",
			zap.String("entity", m.schema.Entity.Tag()),
			zap.Strings("fields", missing))
	}

	now := m.clock()
	records := make([]*model.MappedRecord, len(rows))
	for i, row := range rows {
		record := model.NewMappedRecord(m.schema)
		for _, field := range m.schema.Fields {
			if source, ok := mapping[field.Name]; ok {
				record.Set(field.Name, row[source])
			} else {
				record.Set(field.Name, defaultValue(field, i, now))
			}
		}
		records[i] = record
	}

	return records, mapping
}

func (m *Mapper) missingFields(mapping ColumnMapping) []string {
	var missing []string
	for _, field := range m.schema.Fields {
		if _, ok := mapping[field.Name]; !ok {
			missing = append(missing, field.Name)
		}
	}
	return missing
}
