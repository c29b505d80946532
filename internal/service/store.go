package service

import (
	"context"
	"fmt"

	"github.com/forgo/circle/api/internal/model"
)

// Finder is the read capability services need for reference checks
type Finder[T any] interface {
	FindOne(ctx context.Context, filter model.Filter) (*T, error)
}

// Store is the keyed collection capability the services are written against.
// FindOne returns (nil, nil) when nothing matches; Change and Delete return
// database.ErrNotFound for a missing id. Every returned record is a snapshot.
type Store[T any] interface {
	Finder[T]
	Create(ctx context.Context, record *T) (*T, error)
	FindMany(ctx context.Context, filter *model.Filter) ([]*T, error)
	Change(ctx context.Context, id string, updates map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// findByID loads a record or returns a NotFound error for kind
func findByID[T any](ctx context.Context, store Finder[T], kind model.Kind, id string) (*T, error) {
	rec, err := store.FindOne(ctx, model.ByID(id))
	if err != nil {
		return nil, fmt.Errorf("finding %s %s: %w", kind, id, err)
	}
	if rec == nil {
		return nil, notFound(kind, id)
	}
	return rec, nil
}

// exists reports whether a record with id is stored
func exists[T any](ctx context.Context, store Finder[T], kind model.Kind, id string) (bool, error) {
	rec, err := store.FindOne(ctx, model.ByID(id))
	if err != nil {
		return false, fmt.Errorf("finding %s %s: %w", kind, id, err)
	}
	return rec != nil, nil
}
