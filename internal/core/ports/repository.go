package ports

import "context"

// Repository is the entity-agnostic persistence contract. One instance is
// bound to one entity type.
//
// Filters are flat equality maps keyed by field name (Go field or column
// name), sufficient for this domain's query shapes and deliberately free of
// query-DSL complexity. Relation names are resolved against an explicit
// per-entity registry; unknown names are logged and skipped.
type Repository[T any] interface {
	// Create persists a new entity and returns it with store-assigned fields
	// (generated ID, defaults) populated.
	Create(ctx context.Context, entity *T) (*T, error)

	// Find returns all entities matching the equality filters, combined
	// conjunctively when andCond is true, disjunctively otherwise. An empty
	// filter map yields the nil sentinel (nil, nil), distinct from the
	// non-nil empty slice returned when nothing matches.
	Find(ctx context.Context, filters map[string]any, andCond bool, relations ...string) ([]*T, error)

	// Update applies each key/value as a field mutation, refreshes the entity
	// from the store, then eager-loads the requested relations. A key that
	// does not correspond to a real field fails with ErrAttributeNotFound.
	Update(ctx context.Context, entity *T, updates map[string]any, relations ...string) (*T, error)

	// ListAll returns every entity of the bound type, with the same relation
	// contract as Find.
	ListAll(ctx context.Context, relations ...string) ([]*T, error)

	// Delete removes the entity's row. Referential constraints blocking the
	// delete surface as ErrIntegrityViolation.
	Delete(ctx context.Context, entity *T) error
}
