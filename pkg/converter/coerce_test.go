// pkg/converter/coerce_test.go
package converter

import (
	"errors"
	"testing"
	"time"

	"github.com/retailops/warehouse-ingress/pkg/model"
)

func TestParseTemporal(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339",
			value: "2024-03-15T10:30:00Z",
			want:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "iso without zone",
			value: "2024-03-15T10:30:00",
			want:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "space separated",
			value: "2024-03-15 10:30:00",
			want:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			value: "2024-03-15",
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "us slashes",
			value: "03/15/2024",
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace",
			value: "  2024-03-15  ",
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "already a time",
			value: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
			want:  time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			name:  "byte slice",
			value: []byte("2024-03-15"),
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "unix seconds",
			value: int64(1710498600),
			want:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{name: "garbage text", value: "not a date", wantErr: true},
		{name: "empty string", value: "", wantErr: true},
		{name: "unsupported type", value: struct{}{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTemporal(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTemporal(%v) succeeded, want error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTemporal(%v) failed: %v", tt.value, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTemporal(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestCoerceBatch(t *testing.T) {
	schema := model.EntityStore.Schema()
	record := model.NewMappedRecord(schema)
	record.Set("store_id", 1)
	record.Set("opening_date", "2019-05-20")

	if err := NewTypeCoercer().CoerceBatch([]*model.MappedRecord{record}); err != nil {
		t.Fatalf("CoerceBatch failed: %v", err)
	}

	got, ok := record.Get("opening_date").(time.Time)
	if !ok {
		t.Fatalf("opening_date = %T, want time.Time", record.Get("opening_date"))
	}
	want := time.Date(2019, 5, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("opening_date = %v, want %v", got, want)
	}
	// Non-temporal fields pass through untouched.
	if record.Get("store_id") != 1 {
		t.Errorf("store_id = %v, want 1", record.Get("store_id"))
	}
}

func TestCoerceBatchNullStaysNull(t *testing.T) {
	schema := model.EntityStore.Schema()
	record := model.NewMappedRecord(schema)
	record.Set("opening_date", nil)

	if err := NewTypeCoercer().CoerceBatch([]*model.MappedRecord{record}); err != nil {
		t.Fatalf("CoerceBatch failed: %v", err)
	}
	if record.Get("opening_date") != nil {
		t.Errorf("opening_date = %v, want nil", record.Get("opening_date"))
	}
}

func TestCoerceBatchFailsBatch(t *testing.T) {
	schema := model.EntityStore.Schema()
	good := model.NewMappedRecord(schema)
	good.Set("opening_date", "2019-05-20")
	bad := model.NewMappedRecord(schema)
	bad.Set("opening_date", "next Tuesday")

	err := NewTypeCoercer().CoerceBatch([]*model.MappedRecord{good, bad})
	if err == nil {
		t.Fatal("CoerceBatch succeeded, want error")
	}

	var coerceErr *CoerceError
	if !errors.As(err, &coerceErr) {
		t.Fatalf("error = %T, want *CoerceError", err)
	}
	if coerceErr.Field != "opening_date" {
		t.Errorf("error field = %q, want opening_date", coerceErr.Field)
	}
	if coerceErr.Value != "next Tuesday" {
		t.Errorf("error value = %v, want \"next Tuesday\"", coerceErr.Value)
	}
}

func TestCoerceBatchEmpty(t *testing.T) {
	if err := NewTypeCoercer().CoerceBatch(nil); err != nil {
		t.Errorf("CoerceBatch(nil) = %v, want nil", err)
	}
}
