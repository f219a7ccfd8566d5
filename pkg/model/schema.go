// pkg/model/schema.go
package model

// DefaultKind selects the value synthesized for a canonical field when no
// source column was matched to it. The policy is part of the schema itself,
// keyed per field, so matching logic and defaulting never have to inspect
// field names.
type DefaultKind int

const (
	// DefaultUnknown fills the field with the sentinel string "Unknown".
	DefaultUnknown DefaultKind = iota
	// DefaultNow fills the field with the wall-clock timestamp at processing time.
	DefaultNow
	// DefaultRowID fills the field with rowIndex + 1.
	DefaultRowID
	// DefaultZero fills the field with 0.0 (monetary fields).
	DefaultZero
	// DefaultOne fills the field with 1 (quantity fields).
	DefaultOne
)

// Field describes a single canonical schema field.
type Field struct {
	Name     string      // Canonical field name
	Temporal bool        // Whether the field holds a date/timestamp
	Default  DefaultKind // Value policy when no source column matched
}

// CanonicalSchema is the fixed, ordered field list for one entity. Field
// order is significant: mapped records preserve it in their serialized form.
type CanonicalSchema struct {
	Entity Entity
	Fields []Field
}

// registry is the single source of truth for canonical schemas. It is
// initialized once and never mutated; readers need no locking.
var registry = [entityCount]*CanonicalSchema{
	EntityCustomer: {
		Entity: EntityCustomer,
		Fields: []Field{
			{Name: "customer_id", Default: DefaultRowID},
			{Name: "first_name"},
			{Name: "last_name"},
			{Name: "email"},
			{Name: "phone"},
			{Name: "gender"},
			{Name: "birth_date", Temporal: true, Default: DefaultNow},
			{Name: "registration_date", Temporal: true, Default: DefaultNow},
			{Name: "address"},
			{Name: "city"},
		},
	},
	EntityTransaction: {
		Entity: EntityTransaction,
		Fields: []Field{
			{Name: "transaction_id", Default: DefaultRowID},
			{Name: "customer_id", Default: DefaultRowID},
			{Name: "store_id", Default: DefaultRowID},
			{Name: "transaction_date", Temporal: true, Default: DefaultNow},
			{Name: "total_amount", Default: DefaultZero},
			{Name: "payment_method"},
			{Name: "product_line_id", Default: DefaultRowID},
			{Name: "quantity", Default: DefaultOne},
			{Name: "unit_price", Default: DefaultZero},
		},
	},
	EntityStore: {
		Entity: EntityStore,
		Fields: []Field{
			{Name: "store_id", Default: DefaultRowID},
			{Name: "store_name"},
			{Name: "address"},
			{Name: "city"},
			{Name: "store_type"},
			{Name: "opening_date", Temporal: true, Default: DefaultNow},
			{Name: "region"},
		},
	},
	EntityProductLine: {
		Entity: EntityProductLine,
		Fields: []Field{
			{Name: "product_line_id", Default: DefaultRowID},
			{Name: "name"},
			{Name: "category"},
			{Name: "subcategory"},
			{Name: "brand"},
			{Name: "unit_cost", Default: DefaultZero},
		},
	},
}

// Schema returns the canonical schema for an entity.
func (e Entity) Schema() *CanonicalSchema {
	return registry[e]
}

// LookupSchema resolves an entity tag and returns its canonical schema.
// Fails with *UnknownEntityError for unregistered tags.
func LookupSchema(tag string) (*CanonicalSchema, error) {
	entity, err := ParseEntity(tag)
	if err != nil {
		return nil, err
	}
	return entity.Schema(), nil
}

// FieldNames returns the canonical field names in schema order.
func (s *CanonicalSchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// TemporalFields returns the names of the fields flagged as temporal.
func (s *CanonicalSchema) TemporalFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Temporal {
			names = append(names, f.Name)
		}
	}
	return names
}
