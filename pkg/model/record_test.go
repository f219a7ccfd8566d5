// pkg/model/record_test.go
package model

import (
	"encoding/json"
	"testing"
)

func TestMappedRecordMarshalOrder(t *testing.T) {
	schema := EntityStore.Schema()
	record := NewMappedRecord(schema)
	record.Set("store_id", int64(7))
	record.Set("store_name", "Downtown")
	record.Set("address", "1 Main St")
	record.Set("city", "Springfield")
	record.Set("store_type", "Outlet")
	record.Set("opening_date", "2021-03-01T00:00:00")
	record.Set("region", "West")

	got, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"store_id":7,"store_name":"Downtown","address":"1 Main St",` +
		`"city":"Springfield","store_type":"Outlet",` +
		`"opening_date":"2021-03-01T00:00:00","region":"West"}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestMappedRecordMarshalNullForUnset(t *testing.T) {
	schema := EntityProductLine.Schema()
	record := NewMappedRecord(schema)
	record.Set("product_line_id", int64(1))

	got, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(decoded) != len(schema.Fields) {
		t.Errorf("marshaled %d keys, want %d", len(decoded), len(schema.Fields))
	}
	if decoded["brand"] != nil {
		t.Errorf("unset field brand = %v, want null", decoded["brand"])
	}
}
