package service

import (
	"context"

	"github.com/forgo/circle/api/internal/model"
	"github.com/forgo/circle/api/internal/testing/fixtures"
)

// ============================================================================
// Mock Stores
// ============================================================================

// mockStore overrides individual store calls and falls through to base for the rest
type mockStore[T any] struct {
	base         Store[T]
	createFunc   func(ctx context.Context, record *T) (*T, error)
	findOneFunc  func(ctx context.Context, filter model.Filter) (*T, error)
	findManyFunc func(ctx context.Context, filter *model.Filter) ([]*T, error)
	changeFunc   func(ctx context.Context, id string, updates map[string]interface{}) (*T, error)
	deleteFunc   func(ctx context.Context, id string) (*T, error)
}

func (m *mockStore[T]) Create(ctx context.Context, record *T) (*T, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	if m.base != nil {
		return m.base.Create(ctx, record)
	}
	return record, nil
}

func (m *mockStore[T]) FindOne(ctx context.Context, filter model.Filter) (*T, error) {
	if m.findOneFunc != nil {
		return m.findOneFunc(ctx, filter)
	}
	if m.base != nil {
		return m.base.FindOne(ctx, filter)
	}
	return nil, nil
}

func (m *mockStore[T]) FindMany(ctx context.Context, filter *model.Filter) ([]*T, error) {
	if m.findManyFunc != nil {
		return m.findManyFunc(ctx, filter)
	}
	if m.base != nil {
		return m.base.FindMany(ctx, filter)
	}
	return nil, nil
}

func (m *mockStore[T]) Change(ctx context.Context, id string, updates map[string]interface{}) (*T, error) {
	if m.changeFunc != nil {
		return m.changeFunc(ctx, id, updates)
	}
	if m.base != nil {
		return m.base.Change(ctx, id, updates)
	}
	return nil, nil
}

func (m *mockStore[T]) Delete(ctx context.Context, id string) (*T, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	if m.base != nil {
		return m.base.Delete(ctx, id)
	}
	return nil, nil
}

// ============================================================================
// Helper Functions
// ============================================================================

type testServices struct {
	f           *fixtures.Factory
	users       *UserService
	profiles    *ProfileService
	posts       *PostService
	memberTypes *MemberTypeService
}

func newTestServices(f *fixtures.Factory) *testServices {
	cols := f.Cols
	return &testServices{
		f: f,
		users: NewUserService(UserServiceConfig{
			Users:    cols.Users,
			Profiles: cols.Profiles,
			Posts:    cols.Posts,
		}),
		profiles: NewProfileService(ProfileServiceConfig{
			Profiles:    cols.Profiles,
			Users:       cols.Users,
			MemberTypes: cols.MemberTypes,
		}),
		posts: NewPostService(PostServiceConfig{
			Posts: cols.Posts,
			Users: cols.Users,
		}),
		memberTypes: NewMemberTypeService(cols.MemberTypes),
	}
}

const missingID = "00000000-0000-4000-8000-000000000000"
