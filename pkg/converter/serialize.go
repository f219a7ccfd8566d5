// pkg/converter/serialize.go
package converter

import (
	"math"
	"strconv"
	"time"

	"github.com/retailops/warehouse-ingress/pkg/model"
)

// ISO8601 is the wire format for temporal values: local date-time, no
// timezone offset.
const ISO8601 = "2006-01-02T15:04:05"

// Serialize rewrites a value into the JSON-primitive-safe closure: nulls,
// booleans, int64/float64, strings, and sequences/mappings thereof.
// Temporal values become ISO-8601 strings, NaN and infinities become nil.
// The conversion is idempotent: already-primitive data passes through
// untouched.
func Serialize(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return v.Format(ISO8601)
	case bool, string, int64, float64:
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return nil
		}
		return v
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return Serialize(uint64(v))
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		// Above MaxInt64 the value has no int64 representation and float64
		// would round it; keep the digits.
		if v > math.MaxInt64 {
			return strconv.FormatUint(v, 10)
		}
		return int64(v)
	case float32:
		return Serialize(float64(v))
	case []byte:
		return string(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = Serialize(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, elem := range v {
			out[k] = Serialize(elem)
		}
		return out
	case model.RawRecord:
		out := make(map[string]interface{}, len(v))
		for k, elem := range v {
			out[k] = Serialize(elem)
		}
		return out
	default:
		return v
	}
}

// SerializeRecord converts every field value of a mapped record in place
// and returns the record.
func SerializeRecord(record *model.MappedRecord) *model.MappedRecord {
	for field, value := range record.Values {
		record.Values[field] = Serialize(value)
	}
	return record
}

// SerializeBatch converts a batch of mapped records in place.
func SerializeBatch(records []*model.MappedRecord) []*model.MappedRecord {
	for _, record := range records {
		SerializeRecord(record)
	}
	return records
}

// SerializeRows converts raw extracted rows for the response echo. Columns
// absent from the canonical schema are kept here; the asymmetry with the
// mapped records is deliberate.
func SerializeRows(rows []model.RawRecord) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		serialized := make(map[string]interface{}, len(row))
		for col, value := range row {
			serialized[col] = Serialize(value)
		}
		out[i] = serialized
	}
	return out
}
