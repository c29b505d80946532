package service

import (
	"context"

	"github.com/forgo/circle/api/internal/model"
)

// MemberTypeStore is the store capability the member type service needs.
// Member types are seeded, so there is no Create or Delete.
type MemberTypeStore interface {
	Finder[model.MemberType]
	FindMany(ctx context.Context, filter *model.Filter) ([]*model.MemberType, error)
	Change(ctx context.Context, id string, updates map[string]interface{}) (*model.MemberType, error)
}

// MemberTypeService handles member type tiers
type MemberTypeService struct {
	memberTypes MemberTypeStore
}

// NewMemberTypeService creates a new member type service
func NewMemberTypeService(memberTypes MemberTypeStore) *MemberTypeService {
	return &MemberTypeService{memberTypes: memberTypes}
}

// List returns every member type
func (s *MemberTypeService) List(ctx context.Context) ([]*model.MemberType, error) {
	return s.memberTypes.FindMany(ctx, nil)
}

// Get retrieves a member type by ID
func (s *MemberTypeService) Get(ctx context.Context, id string) (*model.MemberType, error) {
	return findByID[model.MemberType](ctx, s.memberTypes, model.KindMemberType, id)
}

// Update applies a partial update to a member type
func (s *MemberTypeService) Update(ctx context.Context, id string, req *model.UpdateMemberTypeRequest) (*model.MemberType, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	mt, err := s.memberTypes.Change(ctx, id, req.Updates())
	if err != nil {
		return nil, storeMiss(err, model.KindMemberType, id)
	}
	return mt, nil
}
