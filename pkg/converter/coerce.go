// pkg/converter/coerce.go
package converter

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/retailops/warehouse-ingress/pkg/model"
)

// CoerceError reports a temporal field value that could not be interpreted
// as a date or timestamp. It aborts the whole batch.
type CoerceError struct {
	Field string
	Value interface{}
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("cannot parse value %v in field %q as a date", e.Value, e.Field)
}

// TypeCoercer normalizes temporal fields to time.Time values.
type TypeCoercer struct {
	logger *zap.Logger
}

// NewTypeCoercer creates a new TypeCoercer
func NewTypeCoercer() *TypeCoercer {
	return &TypeCoercer{logger: zap.L().Named("coercer")}
}

// CoerceBatch parses every temporal field of every record into a time.Time,
// in place. Non-temporal fields pass through unchanged. Null temporal
// values stay null. The first unparseable value fails the batch.
func (c *TypeCoercer) CoerceBatch(records []*model.MappedRecord) error {
	if len(records) == 0 {
		return nil
	}

	schema := records[0].Schema
	for _, field := range schema.Fields {
		if !field.Temporal {
			continue
		}
		for _, record := range records {
			value := record.Get(field.Name)
			if value == nil {
				continue
			}
			t, err := ParseTemporal(value)
			if err != nil {
				c.logger.Error("Temporal coercion failed",
					zap.String("field", field.Name),
					zap.Any("value", value))
				return &CoerceError{Field: field.Name, Value: value}
			}
			record.Set(field.Name, t)
		}
	}

	return nil
}

// temporalLayouts are tried in order when parsing date/timestamp text.
var temporalLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"2006/01/02",
}

// ParseTemporal interprets a value as a date/timestamp. It accepts
// already-typed temporal values, common date/timestamp text, and Unix epoch
// numbers.
func ParseTemporal(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		cleaned := strings.TrimSpace(v)
		if cleaned == "" {
			return time.Time{}, fmt.Errorf("empty string")
		}
		for _, layout := range temporalLayouts {
			if t, err := time.Parse(layout, cleaned); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse time from %q", cleaned)
	case []byte:
		return ParseTemporal(string(v))
	case int64:
		// Unix timestamp (seconds since epoch)
		return time.Unix(v, 0).UTC(), nil
	case float64:
		sec := int64(v)
		nsec := int64((v - float64(sec)) * 1e9)
		return time.Unix(sec, nsec).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("cannot convert %T to time", value)
	}
}
