// pkg/model/entity.go
package model

import "fmt"

// Entity identifies one of the canonical analytical record kinds.
type Entity int

const (
	EntityCustomer Entity = iota
	EntityTransaction
	EntityStore
	EntityProductLine
)

// entityCount is the number of registered entities. Used to size the
// registry and to range over all entities in tests.
const entityCount = 4

// UnknownEntityError reports an entity tag that is not registered.
type UnknownEntityError struct {
	Tag string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity %q (expected one of customer, transaction, store, product_line)", e.Tag)
}

// ParseEntity resolves an entity tag to its Entity value.
func ParseEntity(tag string) (Entity, error) {
	switch tag {
	case "customer":
		return EntityCustomer, nil
	case "transaction":
		return EntityTransaction, nil
	case "store":
		return EntityStore, nil
	case "product_line":
		return EntityProductLine, nil
	default:
		return 0, &UnknownEntityError{Tag: tag}
	}
}

// Entities returns all registered entities in registry order.
func Entities() []Entity {
	return []Entity{EntityCustomer, EntityTransaction, EntityStore, EntityProductLine}
}

// Tag returns the wire tag for the entity.
func (e Entity) Tag() string {
	switch e {
	case EntityCustomer:
		return "customer"
	case EntityTransaction:
		return "transaction"
	case EntityStore:
		return "store"
	case EntityProductLine:
		return "product_line"
	default:
		return fmt.Sprintf("entity(%d)", int(e))
	}
}

// Table returns the warehouse table name for the entity.
func (e Entity) Table() string {
	switch e {
	case EntityCustomer:
		return "customers"
	case EntityTransaction:
		return "transactions"
	case EntityStore:
		return "stores"
	case EntityProductLine:
		return "product_lines"
	default:
		return e.Tag()
	}
}

// DisplayName returns a human-readable name for UI listings.
func (e Entity) DisplayName() string {
	switch e {
	case EntityCustomer:
		return "Customer Profile"
	case EntityTransaction:
		return "Transactions"
	case EntityStore:
		return "Stores"
	case EntityProductLine:
		return "Product Line"
	default:
		return e.Tag()
	}
}

// Description returns a short description for UI listings.
func (e Entity) Description() string {
	switch e {
	case EntityCustomer:
		return "Customer information"
	case EntityTransaction:
		return "Transaction records"
	case EntityStore:
		return "Store information"
	case EntityProductLine:
		return "Product information"
	default:
		return ""
	}
}

func (e Entity) String() string { return e.Tag() }
