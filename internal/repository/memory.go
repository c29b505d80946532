package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/forgo/circle/api/internal/database"
	"github.com/forgo/circle/api/internal/model"
)

// recordPtr constrains P to be *T and a model.Record so collections can
// hold plain structs while still reading ids and filter fields.
type recordPtr[T any] interface {
	*T
	model.Record
}

// MemoryCollection is a process-local keyed collection. Records are deep
// copied on the way in and on the way out, so callers always work on
// snapshots and must re-fetch before mutating.
type MemoryCollection[T any, P recordPtr[T]] struct {
	mu      sync.RWMutex
	kind    model.Kind
	records map[string]P
	order   []string
	newID   func() string
}

// NewMemoryCollection creates an empty collection for one entity kind
func NewMemoryCollection[T any, P recordPtr[T]](kind model.Kind) *MemoryCollection[T, P] {
	return &MemoryCollection[T, P]{
		kind:    kind,
		records: make(map[string]P),
		newID:   uuid.NewString,
	}
}

// Kind returns the entity kind stored in this collection
func (c *MemoryCollection[T, P]) Kind() model.Kind {
	return c.kind
}

// Create stores a copy of record under a fresh id and returns the stored copy
func (c *MemoryCollection[T, P]) Create(ctx context.Context, record *T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored, err := clone[T](record)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.newID()
	P(stored).SetID(id)
	c.records[id] = P(stored)
	c.order = append(c.order, id)

	return clone[T](stored)
}

// Insert stores a copy of record keeping its id. Used for seeding.
func (c *MemoryCollection[T, P]) Insert(ctx context.Context, record *T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := P(record).GetID()
	if id == "" {
		return nil, fmt.Errorf("%w: %s id is required", database.ErrQuery, c.kind)
	}

	stored, err := clone[T](record)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.records[id]; exists {
		return nil, fmt.Errorf("%w: %s %s", database.ErrDuplicate, c.kind, id)
	}
	c.records[id] = P(stored)
	c.order = append(c.order, id)

	return clone[T](stored)
}

// FindOne returns the first record in insertion order matching filter,
// or nil with no error when nothing matches
func (c *MemoryCollection[T, P]) FindOne(ctx context.Context, filter model.Filter) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.checkFilter(filter); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if filter.Key == model.FieldID {
		rec, ok := c.records[filter.Equals]
		if !ok {
			return nil, nil
		}
		return clone[T]((*T)(rec))
	}

	for _, id := range c.order {
		rec := c.records[id]
		if filter.Matches(rec) {
			return clone[T]((*T)(rec))
		}
	}
	return nil, nil
}

// FindMany returns every record matching filter in insertion order.
// A nil filter returns the whole collection.
func (c *MemoryCollection[T, P]) FindMany(ctx context.Context, filter *model.Filter) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if filter != nil {
		if err := c.checkFilter(*filter); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		rec := c.records[id]
		if filter != nil && !filter.Matches(rec) {
			continue
		}
		cp, err := clone[T]((*T)(rec))
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// Change merges updates (keyed by JSON field name) into the stored record.
// The id key is never merged.
func (c *MemoryCollection[T, P]) Change(ctx context.Context, id string, updates map[string]interface{}) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	patch, err := json.Marshal(withoutID(updates))
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %s changes: %v", database.ErrQuery, c.kind, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.records[id]
	if !ok {
		return nil, database.ErrNotFound
	}

	merged, err := clone[T]((*T)(current))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(patch, merged); err != nil {
		return nil, fmt.Errorf("%w: applying %s changes: %v", database.ErrQuery, c.kind, err)
	}
	P(merged).SetID(id)
	c.records[id] = P(merged)

	return clone[T](merged)
}

// Delete removes the record and returns it
func (c *MemoryCollection[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	delete(c.records, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	return (*T)(rec), nil
}

// Len returns the number of stored records
func (c *MemoryCollection[T, P]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func (c *MemoryCollection[T, P]) checkFilter(filter model.Filter) error {
	var zero T
	if _, ok := P(&zero).Field(filter.Key); !ok {
		return fmt.Errorf("%w: %s cannot be filtered by %q", database.ErrQuery, c.kind, filter.Key)
	}
	return nil
}

// clone deep copies src into a new T
func clone[T any](src *T) (*T, error) {
	dst := new(T)
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copying record: %w", err)
	}
	return dst, nil
}

func withoutID(updates map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if k == model.FieldID {
			continue
		}
		out[k] = v
	}
	return out
}
