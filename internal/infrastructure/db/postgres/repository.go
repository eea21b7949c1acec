package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/assignhub/assignment-api/internal/core/domain"
)

// schemaCache memoizes parsed entity schemas across repository instances.
var schemaCache = &sync.Map{}

// Repository is the generic GORM-backed implementation of ports.Repository.
// One instance is bound to one entity type; it holds no per-request state and
// opens a fresh session (WithContext) per call, so a single instance is safe
// for concurrent use.
type Repository[T any] struct {
	db        *gorm.DB
	relations map[string]string
	log       zerolog.Logger
}

// NewRepository binds a repository to entity type T. relations maps
// caller-facing relation names to GORM association paths; requests for names
// outside the registry are logged and skipped.
func NewRepository[T any](db *gorm.DB, relations map[string]string, log zerolog.Logger) *Repository[T] {
	return &Repository[T]{db: db, relations: relations, log: log}
}

// Create persists the entity inside a transaction so a constraint failure
// leaves no partial state. Store-assigned fields are populated on return.
func (r *Repository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(entity).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return entity, nil
}

// Find builds a conjunctive (andCond) or disjunctive equality filter over the
// given fields. An empty filter map returns the nil sentinel; no rows
// matching returns a non-nil empty slice.
func (r *Repository[T]) Find(ctx context.Context, filters map[string]any, andCond bool, relations ...string) ([]*T, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	q := r.preload(r.db.WithContext(ctx), relations)
	first := true
	for field, value := range filters {
		column, err := r.column(field)
		if err != nil {
			return nil, err
		}
		cond := fmt.Sprintf("%s = ?", column)
		if first || andCond {
			q = q.Where(cond, value)
		} else {
			q = q.Or(cond, value)
		}
		first = false
	}

	results := make([]*T, 0)
	if err := q.Find(&results).Error; err != nil {
		return nil, translateError(err)
	}
	return results, nil
}

// Update applies each key/value as a field mutation in a transaction
// (rolled back on any failure), then refreshes the entity and eager-loads the
// requested relations.
func (r *Repository[T]) Update(ctx context.Context, entity *T, updates map[string]any, relations ...string) (*T, error) {
	columns := make(map[string]any, len(updates))
	for field, value := range updates {
		column, err := r.column(field)
		if err != nil {
			return nil, err
		}
		columns[column] = value
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(entity).Updates(columns).Error
	})
	if err != nil {
		return nil, translateError(err)
	}

	// Refresh by primary key so store-computed values are visible.
	q := r.preload(r.db.WithContext(ctx), relations)
	if err := q.First(entity).Error; err != nil {
		return nil, translateError(err)
	}
	return entity, nil
}

// ListAll returns every row of the entity type.
func (r *Repository[T]) ListAll(ctx context.Context, relations ...string) ([]*T, error) {
	results := make([]*T, 0)
	q := r.preload(r.db.WithContext(ctx), relations)
	if err := q.Find(&results).Error; err != nil {
		return nil, translateError(err)
	}
	return results, nil
}

// Delete removes the entity's row inside a transaction.
func (r *Repository[T]) Delete(ctx context.Context, entity *T) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(entity).Error
	})
	if err != nil {
		return translateError(err)
	}
	return nil
}

// preload attaches an eager load for every registered relation name. All
// requested relations resolve in the same query plan, preserving the
// "all loaded before return" contract as batched fetches per relation.
func (r *Repository[T]) preload(q *gorm.DB, relations []string) *gorm.DB {
	for _, rel := range relations {
		assoc, ok := r.relations[rel]
		if !ok {
			r.log.Warn().Str("relation", rel).Msg("unknown relation requested, skipping")
			continue
		}
		q = q.Preload(assoc)
	}
	return q
}

// column resolves a caller-supplied field name (Go field or column name) to
// its database column, failing with ErrAttributeNotFound for anything that is
// not a real field of T.
func (r *Repository[T]) column(name string) (string, error) {
	sch, err := schema.Parse(new(T), schemaCache, r.db.NamingStrategy)
	if err != nil {
		return "", fmt.Errorf("%w: parse schema: %v", domain.ErrRepository, err)
	}
	if f := sch.LookUpField(name); f != nil && f.DBName != "" {
		return f.DBName, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrAttributeNotFound, name)
}
