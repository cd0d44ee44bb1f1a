package tide

import (
	"context"
	"encoding/json"
	"reflect"
)

// BelongsTo holds the parent record referenced by a foreign key of the
// owning model.
type BelongsTo[T Model] struct {
	value  *T
	loaded bool
}

// Load fetches the parent with the given key. A nil key, or a nil pointer
// for optional relations, loads nothing and returns nil.
func (r *BelongsTo[T]) Load(ctx context.Context, db Executor, key any) (*T, error) {
	key, ok := deref(key)
	if !ok {
		r.value, r.loaded = nil, true
		return nil, nil
	}
	v, err := Find[T](ctx, db, key)
	if err != nil {
		return nil, err
	}
	r.value, r.loaded = v, true
	return v, nil
}

// Get returns the loaded parent and reports whether Load was called.
func (r *BelongsTo[T]) Get() (*T, bool) {
	return r.value, r.loaded
}

// Set stores a parent loaded elsewhere.
func (r *BelongsTo[T]) Set(v *T) {
	r.value, r.loaded = v, true
}

// IsZero reports whether the relation was never loaded. It lets the
// omitzero JSON option skip unloaded relations.
func (r BelongsTo[T]) IsZero() bool { return !r.loaded }

// MarshalJSON encodes the loaded parent, or null.
func (r BelongsTo[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

// HasOne holds the single child record whose foreign key references the
// owning model.
type HasOne[T Model] struct {
	value  *T
	loaded bool
}

// Load fetches the child whose foreign key column equals ownerID. A
// missing child is not an error; Load returns nil.
func (r *HasOne[T]) Load(ctx context.Context, db Executor, foreignKey string, ownerID any) (*T, error) {
	v, err := FindBy[T](ctx, db, foreignKey, ownerID)
	if err != nil && !IsNotFound(err) {
		return nil, err
	}
	r.value, r.loaded = v, true
	return v, nil
}

// Get returns the loaded child and reports whether Load was called.
func (r *HasOne[T]) Get() (*T, bool) {
	return r.value, r.loaded
}

// Set stores a child loaded elsewhere.
func (r *HasOne[T]) Set(v *T) {
	r.value, r.loaded = v, true
}

// IsZero reports whether the relation was never loaded.
func (r HasOne[T]) IsZero() bool { return !r.loaded }

// MarshalJSON encodes the loaded child, or null.
func (r HasOne[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

// HasMany holds the child records whose foreign key references the owning
// model.
type HasMany[T Model] struct {
	values []T
	loaded bool
}

// Load fetches the children whose foreign key column equals ownerID.
func (r *HasMany[T]) Load(ctx context.Context, db Executor, foreignKey string, ownerID any) ([]T, error) {
	v, err := Where[T](ctx, db, foreignKey, ownerID)
	if err != nil {
		return nil, err
	}
	r.values, r.loaded = v, true
	return v, nil
}

// Get returns the loaded children and reports whether Load was called.
func (r *HasMany[T]) Get() ([]T, bool) {
	return r.values, r.loaded
}

// Set stores children loaded elsewhere.
func (r *HasMany[T]) Set(v []T) {
	r.values, r.loaded = v, true
}

// IsZero reports whether the relation was never loaded.
func (r HasMany[T]) IsZero() bool { return !r.loaded }

// MarshalJSON encodes the loaded children. Unloaded relations encode as
// null and loaded empty ones as [].
func (r HasMany[T]) MarshalJSON() ([]byte, error) {
	if r.loaded && r.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.values)
}

// deref unwraps pointer keys. It reports false for nil keys.
func deref(key any) (any, bool) {
	if key == nil {
		return nil, false
	}
	v := reflect.ValueOf(key)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	return v.Interface(), true
}
