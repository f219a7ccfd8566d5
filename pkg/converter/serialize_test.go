// pkg/converter/serialize_test.go
package converter

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/retailops/warehouse-ingress/pkg/model"
)

func TestSerialize(t *testing.T) {
	stamp := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value interface{}
		want  interface{}
	}{
		{"nil", nil, nil},
		{"time", stamp, "2024-03-15T10:30:00"},
		{"string", "hello", "hello"},
		{"bool", true, true},
		{"int64", int64(7), int64(7)},
		{"int", 7, int64(7)},
		{"int32", int32(7), int64(7)},
		{"uint16", uint16(7), int64(7)},
		{"uint64", uint64(7), int64(7)},
		{"uint64 max int64", uint64(math.MaxInt64), int64(math.MaxInt64)},
		{"uint64 above max int64", uint64(math.MaxInt64) + 1, "9223372036854775808"},
		{"uint64 max", uint64(math.MaxUint64), "18446744073709551615"},
		{"float64", 1.5, 1.5},
		{"float32", float32(1.5), 1.5},
		{"nan", math.NaN(), nil},
		{"positive infinity", math.Inf(1), nil},
		{"bytes", []byte("raw"), "raw"},
		{
			"slice",
			[]interface{}{stamp, 1},
			[]interface{}{"2024-03-15T10:30:00", int64(1)},
		},
		{
			"map",
			map[string]interface{}{"at": stamp},
			map[string]interface{}{"at": "2024-03-15T10:30:00"},
		},
		{
			"raw record",
			model.RawRecord{"at": stamp},
			map[string]interface{}{"at": "2024-03-15T10:30:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Serialize(tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Serialize(%v) = %v (%T), want %v (%T)", tt.value, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestSerializeIdempotent(t *testing.T) {
	values := []interface{}{
		time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		int32(12),
		[]byte("bytes"),
		math.NaN(),
		uint64(math.MaxUint64),
		[]interface{}{uint8(1), "x"},
		model.RawRecord{"n": 3},
	}

	for _, value := range values {
		once := Serialize(value)
		twice := Serialize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Serialize not idempotent for %v: %v != %v", value, once, twice)
		}
	}
}

func TestSerializeRecord(t *testing.T) {
	schema := model.EntityCustomer.Schema()
	record := model.NewMappedRecord(schema)
	record.Set("customer_id", 3)
	record.Set("birth_date", time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC))

	SerializeRecord(record)

	if got := record.Get("customer_id"); got != int64(3) {
		t.Errorf("customer_id = %v (%T), want int64(3)", got, got)
	}
	if got := record.Get("birth_date"); got != "1990-07-01T00:00:00" {
		t.Errorf("birth_date = %v, want 1990-07-01T00:00:00", got)
	}
}

func TestSerializeRowsKeepsExtraColumns(t *testing.T) {
	rows := []model.RawRecord{
		{"customer_id": 1, "loyalty_tier": "gold"},
	}

	out := SerializeRows(rows)
	if len(out) != 1 {
		t.Fatalf("serialized %d rows, want 1", len(out))
	}
	if out[0]["loyalty_tier"] != "gold" {
		t.Errorf("loyalty_tier = %v, want gold", out[0]["loyalty_tier"])
	}
}
