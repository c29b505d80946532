package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/forgo/circle/api/internal/database"
	"github.com/forgo/circle/api/internal/model"
)

// UserService handles users, their subscriptions and the cascade on delete
type UserService struct {
	users    Store[model.User]
	profiles Store[model.Profile]
	posts    Store[model.Post]
	locks    *keyedMutex
	logger   *slog.Logger
}

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	Users    Store[model.User]
	Profiles Store[model.Profile]
	Posts    Store[model.Post]
	Logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(cfg UserServiceConfig) *UserService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:    cfg.Users,
		profiles: cfg.Profiles,
		posts:    cfg.Posts,
		locks:    newKeyedMutex(),
		logger:   logger,
	}
}

// List returns every user in creation order
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.FindMany(ctx, nil)
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	return findByID[model.User](ctx, s.users, model.KindUser, id)
}

// Create creates a user with an empty subscription list
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	return s.users.Create(ctx, &model.User{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		SubscribedToUserIDs: []string{},
	})
}

// Update applies a partial update to a user
func (s *UserService) Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	user, err := s.users.Change(ctx, id, req.Updates())
	if err != nil {
		return nil, storeMiss(err, model.KindUser, id)
	}
	return user, nil
}

// Delete removes a user together with everything that depends on it:
// their posts, their id in every follower's subscription list, and their
// profile. The steps run in that order and are not atomic; a failing step
// aborts the cascade and leaves earlier steps applied.
func (s *UserService) Delete(ctx context.Context, id string) (*model.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	log := s.logger.With(slog.String("user_id", id))
	log.Info("deleting user")

	// Posts
	filter := model.Where(model.FieldUserID, id)
	posts, err := s.posts.FindMany(ctx, &filter)
	if err != nil {
		return nil, fmt.Errorf("deleting user %s: listing posts: %w", id, err)
	}
	for _, post := range posts {
		if _, err := s.posts.Delete(ctx, post.ID); err != nil && !errors.Is(err, database.ErrNotFound) {
			log.Error("cascade aborted deleting post", slog.String("post_id", post.ID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("deleting user %s: deleting post %s: %w", id, post.ID, err)
		}
	}
	log.Debug("deleted posts", slog.Int("count", len(posts)))

	// Followers
	users, err := s.users.FindMany(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("deleting user %s: listing followers: %w", id, err)
	}
	scrubbed := 0
	for _, follower := range users {
		if follower.ID == id || !follower.IsSubscribedTo(id) {
			continue
		}
		if err := s.dropSubscription(ctx, follower.ID, id); err != nil {
			log.Error("cascade aborted updating follower", slog.String("follower_id", follower.ID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("deleting user %s: updating follower %s: %w", id, follower.ID, err)
		}
		scrubbed++
	}
	log.Debug("removed from followers", slog.Int("count", scrubbed))

	// Profile
	profile, err := s.profiles.FindOne(ctx, model.Where(model.FieldUserID, id))
	if err != nil {
		return nil, fmt.Errorf("deleting user %s: finding profile: %w", id, err)
	}
	if profile != nil {
		if _, err := s.profiles.Delete(ctx, profile.ID); err != nil && !errors.Is(err, database.ErrNotFound) {
			log.Error("cascade aborted deleting profile", slog.String("profile_id", profile.ID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("deleting user %s: deleting profile %s: %w", id, profile.ID, err)
		}
		log.Debug("deleted profile", slog.String("profile_id", profile.ID))
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, storeMiss(err, model.KindUser, id)
	}
	log.Info("deleted user")
	return deleted, nil
}

// dropSubscription removes every occurrence of targetID from follower's list.
// A follower deleted in the meantime is skipped.
func (s *UserService) dropSubscription(ctx context.Context, followerID, targetID string) error {
	unlock := s.locks.Lock(userKey(followerID))
	defer unlock()

	follower, err := s.users.FindOne(ctx, model.ByID(followerID))
	if err != nil {
		return err
	}
	if follower == nil || !follower.IsSubscribedTo(targetID) {
		return nil
	}

	_, err = s.users.Change(ctx, followerID, map[string]interface{}{
		"subscribedToUserIds": follower.WithoutSubscription(targetID),
	})
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	return err
}

// Subscribe appends targetID to the source user's subscription list.
// Repeated subscriptions to the same target are kept as separate entries.
func (s *UserService) Subscribe(ctx context.Context, targetID, sourceID string) (*model.User, error) {
	if _, err := s.Get(ctx, sourceID); err != nil {
		return nil, err
	}
	ok, err := exists[model.User](ctx, s.users, model.KindUser, targetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidReference(model.KindUser, targetID)
	}

	unlock := s.locks.Lock(userKey(sourceID))
	defer unlock()

	source, err := s.Get(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	subscriptions := append(source.SubscribedToUserIDs, targetID)
	updated, err := s.users.Change(ctx, sourceID, map[string]interface{}{
		"subscribedToUserIds": subscriptions,
	})
	if err != nil {
		return nil, storeMiss(err, model.KindUser, sourceID)
	}
	return updated, nil
}

// Unsubscribe removes every occurrence of targetID from the source user's
// subscription list. It fails with ErrNotSubscribed when there is none.
func (s *UserService) Unsubscribe(ctx context.Context, targetID, sourceID string) (*model.User, error) {
	if _, err := s.Get(ctx, sourceID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userKey(sourceID))
	defer unlock()

	source, err := s.Get(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if !source.IsSubscribedTo(targetID) {
		return nil, notSubscribed(targetID)
	}

	updated, err := s.users.Change(ctx, sourceID, map[string]interface{}{
		"subscribedToUserIds": source.WithoutSubscription(targetID),
	})
	if err != nil {
		return nil, storeMiss(err, model.KindUser, sourceID)
	}
	return updated, nil
}
