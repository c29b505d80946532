package service

import (
	"context"
	"log/slog"

	"github.com/forgo/circle/api/internal/model"
)

// ProfileService handles profiles and their references to users and member types
type ProfileService struct {
	profiles    Store[model.Profile]
	users       Finder[model.User]
	memberTypes Finder[model.MemberType]
	locks       *keyedMutex
	logger      *slog.Logger
}

// ProfileServiceConfig holds configuration for the profile service
type ProfileServiceConfig struct {
	Profiles    Store[model.Profile]
	Users       Finder[model.User]
	MemberTypes Finder[model.MemberType]
	Logger      *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(cfg ProfileServiceConfig) *ProfileService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{
		profiles:    cfg.Profiles,
		users:       cfg.Users,
		memberTypes: cfg.MemberTypes,
		locks:       newKeyedMutex(),
		logger:      logger,
	}
}

// List returns every profile in creation order
func (s *ProfileService) List(ctx context.Context) ([]*model.Profile, error) {
	return s.profiles.FindMany(ctx, nil)
}

// Get retrieves a profile by ID
func (s *ProfileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	return findByID[model.Profile](ctx, s.profiles, model.KindProfile, id)
}

// Create creates a profile. The member type and the owning user must exist,
// and the user must not have a profile yet.
func (s *ProfileService) Create(ctx context.Context, req *model.CreateProfileRequest) (*model.Profile, error) {
	if err := s.checkMemberType(ctx, req.MemberTypeID); err != nil {
		return nil, err
	}

	ok, err := exists[model.User](ctx, s.users, model.KindUser, req.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidReference(model.KindUser, req.UserID)
	}

	unlock := s.locks.Lock(profileOwnerKey(req.UserID))
	defer unlock()

	existing, err := s.profiles.FindOne(ctx, model.Where(model.FieldUserID, req.UserID))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, alreadyExists(model.KindProfile, existing.ID)
	}

	profile, err := s.profiles.Create(ctx, req.ToProfile())
	if err != nil {
		return nil, err
	}
	s.logger.Debug("created profile",
		slog.String("profile_id", profile.ID),
		slog.String("user_id", profile.UserID),
	)
	return profile, nil
}

// Update applies a partial update to a profile. A changed member type must exist.
func (s *ProfileService) Update(ctx context.Context, id string, req *model.UpdateProfileRequest) (*model.Profile, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MemberTypeID != nil && *req.MemberTypeID != current.MemberTypeID {
		if err := s.checkMemberType(ctx, *req.MemberTypeID); err != nil {
			return nil, err
		}
	}

	profile, err := s.profiles.Change(ctx, id, req.Updates())
	if err != nil {
		return nil, storeMiss(err, model.KindProfile, id)
	}
	return profile, nil
}

// Delete removes a profile
func (s *ProfileService) Delete(ctx context.Context, id string) (*model.Profile, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	profile, err := s.profiles.Delete(ctx, id)
	if err != nil {
		return nil, storeMiss(err, model.KindProfile, id)
	}
	return profile, nil
}

func (s *ProfileService) checkMemberType(ctx context.Context, id string) error {
	ok, err := exists[model.MemberType](ctx, s.memberTypes, model.KindMemberType, id)
	if err != nil {
		return err
	}
	if !ok {
		return invalidReference(model.KindMemberType, id)
	}
	return nil
}
