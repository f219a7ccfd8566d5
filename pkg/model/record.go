// pkg/model/record.go
package model

import (
	"bytes"
	"encoding/json"
)

// RawRecord is one input row as extracted from the source: column name to
// scalar value, with column names exactly as the source provided them.
type RawRecord map[string]interface{}

// MappedRecord is a raw record rewritten to exactly match a canonical
// schema. Values holds one entry per canonical field; the schema supplies
// the field order for serialization.
type MappedRecord struct {
	Schema *CanonicalSchema
	Values map[string]interface{}
}

// NewMappedRecord allocates a mapped record sized for the schema.
func NewMappedRecord(schema *CanonicalSchema) *MappedRecord {
	return &MappedRecord{
		Schema: schema,
		Values: make(map[string]interface{}, len(schema.Fields)),
	}
}

// Get returns the value for a canonical field.
func (r *MappedRecord) Get(field string) interface{} {
	return r.Values[field]
}

// Set stores the value for a canonical field.
func (r *MappedRecord) Set(field string, value interface{}) {
	r.Values[field] = value
}

// MarshalJSON emits the record as a JSON object with keys in canonical
// schema order. encoding/json would otherwise sort map keys alphabetically.
func (r *MappedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Schema.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.Values[f.Name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
