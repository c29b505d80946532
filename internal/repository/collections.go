package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/circle/api/internal/database"
	"github.com/forgo/circle/api/internal/model"
)

// SurrealDB table names
const (
	TableUser       = "user"
	TableProfile    = "profile"
	TablePost       = "post"
	TableMemberType = "member_type"
)

// Collection is the full capability set of a store backend for one entity kind
type Collection[T any] interface {
	Kind() model.Kind
	Create(ctx context.Context, record *T) (*T, error)
	Insert(ctx context.Context, record *T) (*T, error)
	FindOne(ctx context.Context, filter model.Filter) (*T, error)
	FindMany(ctx context.Context, filter *model.Filter) ([]*T, error)
	Change(ctx context.Context, id string, updates map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// Collections bundles the four entity stores used by the services
type Collections struct {
	Users       Collection[model.User]
	Profiles    Collection[model.Profile]
	Posts       Collection[model.Post]
	MemberTypes Collection[model.MemberType]
}

// NewMemory creates in-memory collections seeded with the default member types
func NewMemory() (*Collections, error) {
	c := &Collections{
		Users:       NewMemoryCollection[model.User](model.KindUser),
		Profiles:    NewMemoryCollection[model.Profile](model.KindProfile),
		Posts:       NewMemoryCollection[model.Post](model.KindPost),
		MemberTypes: NewMemoryCollection[model.MemberType](model.KindMemberType),
	}
	if err := c.SeedMemberTypes(context.Background()); err != nil {
		return nil, err
	}
	return c, nil
}

// NewSurreal creates SurrealDB-backed collections and seeds the default
// member types. Tiers that already exist are left untouched.
func NewSurreal(ctx context.Context, db database.Database) (*Collections, error) {
	c := &Collections{
		Users:       NewSurrealCollection[model.User](db, model.KindUser, TableUser),
		Profiles:    NewSurrealCollection[model.Profile](db, model.KindProfile, TableProfile),
		Posts:       NewSurrealCollection[model.Post](db, model.KindPost, TablePost),
		MemberTypes: NewSurrealCollection[model.MemberType](db, model.KindMemberType, TableMemberType),
	}
	if err := c.SeedMemberTypes(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// SeedMemberTypes inserts every default member type that is not stored yet
func (c *Collections) SeedMemberTypes(ctx context.Context) error {
	for _, mt := range model.DefaultMemberTypes() {
		existing, err := c.MemberTypes.FindOne(ctx, model.ByID(mt.ID))
		if err != nil {
			return fmt.Errorf("seeding member type %s: %w", mt.ID, err)
		}
		if existing != nil {
			continue
		}
		if _, err := c.MemberTypes.Insert(ctx, mt); err != nil && !errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("seeding member type %s: %w", mt.ID, err)
		}
	}
	return nil
}
