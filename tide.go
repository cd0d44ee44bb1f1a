// Package tide is the runtime imported by generated models, migrations,
// seeders, factories and handlers.
//
// Models are plain structs with db tags. The package builds table metadata
// from those tags and runs queries through sqlx on any driver:
//
//	db := sqlx.MustOpen("sqlite", "app.db")
//	user, err := tide.Find[models.User](ctx, db, 1)
//	if tide.IsNotFound(err) {
//	    // ...
//	}
package tide

import (
	"context"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Executor runs queries. *sqlx.DB and *sqlx.Tx implement it.
type Executor interface {
	sqlx.ExtContext
}

// Model is implemented by every generated model.
type Model interface {
	TableName() string
}

// Options are the struct-level attributes of a model.
type Options struct {
	// PrimaryKey is the primary key column. Defaults to "id".
	PrimaryKey string
	// Timestamps keeps created_at and updated_at current.
	Timestamps bool
	// SoftDelete marks rows deleted through deleted_at instead of removing them.
	SoftDelete bool
	// Tokenize enables opaque record tokens.
	Tokenize      bool
	Translatable  []string
	HasOneFiles   []string
	HasManyFiles  []string
	Indexes       []string
	UniqueIndexes []string
}

// ModelOptioner is implemented by models with struct-level attributes.
type ModelOptioner interface {
	ModelOptions() Options
}

// Migration is a reversible schema change.
type Migration interface {
	// Name returns the migration ID. IDs sort in application order.
	Name() string
	Up(ctx context.Context, db Executor) error
	Down(ctx context.Context, db Executor) error
}

// Seeder inserts data.
type Seeder interface {
	Run(ctx context.Context, db Executor) error
}

// Registry is a set of named values that generated packages fill from their
// init functions. It is safe for concurrent use.
type Registry[T any] struct {
	mu     sync.RWMutex
	values map[string]T
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{values: make(map[string]T)}
}

// Add registers v under name, replacing any previous value.
func (r *Registry[T]) Add(name string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[name] = v
}

// Get returns the value registered under name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[name]
	return v, ok
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered values ordered by name.
func (r *Registry[T]) All() []T {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]T, 0, len(names))
	for _, name := range names {
		all = append(all, r.values[name])
	}
	return all
}

// Len returns the number of registered values.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}
