package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/circle/api/internal/model"
	"github.com/forgo/circle/api/internal/testing/fixtures"
)

func TestMemberTypeService_ListGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestServices(fixtures.NewMemory(t))

	types, err := s.memberTypes.List(ctx)
	require.NoError(t, err)
	require.Len(t, types, 2)

	business, err := s.memberTypes.Get(ctx, model.MemberTypeBusiness)
	require.NoError(t, err)
	assert.Equal(t, 5, business.Discount)
	assert.Equal(t, 100, business.MonthPostsLimit)

	_, err = s.memberTypes.Get(ctx, "gold")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Member type not found")
}

func TestMemberTypeService_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestServices(fixtures.NewMemory(t))

	discount := 10
	updated, err := s.memberTypes.Update(ctx, model.MemberTypeBasic, &model.UpdateMemberTypeRequest{Discount: &discount})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Discount)
	assert.Equal(t, 20, updated.MonthPostsLimit)
}

func TestMemberTypeService_Update_MissingIsPreChecked(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	changed := false
	store := &mockStore[model.MemberType]{
		changeFunc: func(ctx context.Context, id string, updates map[string]interface{}) (*model.MemberType, error) {
			changed = true
			return nil, nil
		},
	}
	svc := NewMemberTypeService(store)

	limit := 1
	_, err := svc.Update(ctx, "gold", &model.UpdateMemberTypeRequest{MonthPostsLimit: &limit})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, changed)
}
