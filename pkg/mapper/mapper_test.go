// pkg/mapper/mapper_test.go
package mapper

import (
	"reflect"
	"testing"
	"time"

	"github.com/retailops/warehouse-ingress/pkg/model"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestMapColumns(t *testing.T) {
	schema := model.EntityCustomer.Schema()

	tests := []struct {
		name    string
		columns []string
		want    ColumnMapping
	}{
		{
			name:    "exact match",
			columns: []string{"customer_id", "email"},
			want:    ColumnMapping{"customer_id": "customer_id", "email": "email"},
		},
		{
			name:    "case-insensitive fallback",
			columns: []string{"Customer_ID", "EMAIL"},
			want:    ColumnMapping{"customer_id": "Customer_ID", "email": "EMAIL"},
		},
		{
			name:    "exact beats case-insensitive",
			columns: []string{"EMAIL", "email"},
			want:    ColumnMapping{"email": "email"},
		},
		{
			name:    "unrelated columns ignored",
			columns: []string{"order_total", "warehouse_zone"},
			want:    ColumnMapping{},
		},
		{
			name:    "no columns",
			columns: nil,
			want:    ColumnMapping{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapColumns(schema, tt.columns)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapColumns(%v) = %v, want %v", tt.columns, got, tt.want)
			}
		})
	}
}

func TestMapColumnsFirstClaimWins(t *testing.T) {
	// Both canonical fields fold to the same source column; only the first
	// field in schema order may claim it.
	schema := &model.CanonicalSchema{
		Entity: model.EntityCustomer,
		Fields: []model.Field{
			{Name: "city"},
			{Name: "CITY"},
		},
	}

	got := MapColumns(schema, []string{"City"})
	want := ColumnMapping{"city": "City"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MapColumns = %v, want %v", got, want)
	}
}

func TestMapBatchCompleteInput(t *testing.T) {
	schema := model.EntityProductLine.Schema()
	columns := []string{"product_line_id", "name", "category", "subcategory", "brand", "unit_cost"}
	rows := []model.RawRecord{
		{"product_line_id": int64(10), "name": "Espresso", "category": "Beverages",
			"subcategory": "Coffee", "brand": "Casa", "unit_cost": 2.5},
	}

	records, mapping := New(schema).MapBatch(columns, rows)
	if len(mapping) != len(schema.Fields) {
		t.Fatalf("mapped %d fields, want %d", len(mapping), len(schema.Fields))
	}
	if got := records[0].Get("name"); got != "Espresso" {
		t.Errorf("name = %v, want Espresso", got)
	}
	if got := records[0].Get("unit_cost"); got != 2.5 {
		t.Errorf("unit_cost = %v, want 2.5", got)
	}
}

func TestMapBatchDefaults(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	schema := model.EntityTransaction.Schema()

	// No input column matches anything; every field is defaulted.
	rows := []model.RawRecord{
		{"source_ref": "a"},
		{"source_ref": "b"},
		{"source_ref": "c"},
	}
	records, _ := New(schema).WithClock(fixedClock(now)).MapBatch([]string{"source_ref"}, rows)

	for i, record := range records {
		if got := record.Get("transaction_id"); got != i+1 {
			t.Errorf("row %d transaction_id = %v, want %d", i, got, i+1)
		}
		if got := record.Get("transaction_date"); got != now {
			t.Errorf("row %d transaction_date = %v, want %v", i, got, now)
		}
		if got := record.Get("total_amount"); got != 0.0 {
			t.Errorf("row %d total_amount = %v, want 0.0", i, got)
		}
		if got := record.Get("quantity"); got != 1 {
			t.Errorf("row %d quantity = %v, want 1", i, got)
		}
		if got := record.Get("payment_method"); got != "Unknown" {
			t.Errorf("row %d payment_method = %v, want Unknown", i, got)
		}
	}
}

func TestMapBatchDropsUnclaimedColumns(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	schema := model.EntityStore.Schema()
	columns := []string{"store_name", "internal_notes"}
	rows := []model.RawRecord{{"store_name": "Uptown", "internal_notes": "do not ship"}}

	records, mapping := New(schema).WithClock(fixedClock(now)).MapBatch(columns, rows)

	if _, ok := mapping["internal_notes"]; ok {
		t.Error("unclaimed column internal_notes appears in mapping")
	}
	record := records[0]
	if len(record.Values) != len(schema.Fields) {
		t.Errorf("record has %d values, want %d", len(record.Values), len(schema.Fields))
	}
	if got := record.Get("store_name"); got != "Uptown" {
		t.Errorf("store_name = %v, want Uptown", got)
	}
	if _, ok := record.Values["internal_notes"]; ok {
		t.Error("record carries dropped column internal_notes")
	}
}

func TestMapBatchEmptyRows(t *testing.T) {
	records, _ := New(model.EntityCustomer.Schema()).MapBatch([]string{"email"}, nil)
	if len(records) != 0 {
		t.Errorf("mapped %d records from empty input, want 0", len(records))
	}
}

func TestDefaultValueDeterministic(t *testing.T) {
	now := time.Date(2023, 11, 5, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		field model.Field
		index int
		want  interface{}
	}{
		{"row id", model.Field{Name: "customer_id", Default: model.DefaultRowID}, 0, 1},
		{"row id offset", model.Field{Name: "customer_id", Default: model.DefaultRowID}, 41, 42},
		{"zero", model.Field{Name: "total_amount", Default: model.DefaultZero}, 0, 0.0},
		{"one", model.Field{Name: "quantity", Default: model.DefaultOne}, 0, 1},
		{"now", model.Field{Name: "transaction_date", Default: model.DefaultNow}, 0, now},
		{"unknown", model.Field{Name: "payment_method"}, 0, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultValue(tt.field, tt.index, now)
			if got != tt.want {
				t.Errorf("defaultValue = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}
