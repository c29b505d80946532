package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/forgo/circle/api/internal/database"
	"github.com/forgo/circle/api/internal/model"
)

// SweepReport counts what a sweep repaired
type SweepReport struct {
	PostsDeleted          int
	ProfilesDeleted       int
	SubscriptionsScrubbed int
}

// Empty reports whether the sweep found nothing to repair
func (r SweepReport) Empty() bool {
	return r.PostsDeleted == 0 && r.ProfilesDeleted == 0 && r.SubscriptionsScrubbed == 0
}

// SweepOrphans removes records left pointing at users that no longer exist.
// A user delete racing a post or profile create, or a subscribe, can leave
// such records behind; the cascade itself does not prevent that.
// Every candidate owner is re-checked before anything is removed, so records
// of users created during the sweep are kept.
func (s *UserService) SweepOrphans(ctx context.Context) (SweepReport, error) {
	var report SweepReport

	users, err := s.users.FindMany(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("sweep: listing users: %w", err)
	}
	// present caches which user ids have been checked and whether they exist
	present := make(map[string]bool, len(users))
	for _, u := range users {
		present[u.ID] = true
	}

	gone := func(userID string) (bool, error) {
		if ok, checked := present[userID]; checked {
			return !ok, nil
		}
		ok, err := exists[model.User](ctx, s.users, model.KindUser, userID)
		if err != nil {
			return false, err
		}
		present[userID] = ok
		return !ok, nil
	}

	posts, err := s.posts.FindMany(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("sweep: listing posts: %w", err)
	}
	for _, post := range posts {
		orphan, err := gone(post.UserID)
		if err != nil {
			return report, fmt.Errorf("sweep: post %s: %w", post.ID, err)
		}
		if !orphan {
			continue
		}
		if _, err := s.posts.Delete(ctx, post.ID); err != nil && !errors.Is(err, database.ErrNotFound) {
			return report, fmt.Errorf("sweep: deleting post %s: %w", post.ID, err)
		}
		s.logger.Info("swept orphan post", slog.String("post_id", post.ID), slog.String("user_id", post.UserID))
		report.PostsDeleted++
	}

	profiles, err := s.profiles.FindMany(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("sweep: listing profiles: %w", err)
	}
	for _, profile := range profiles {
		orphan, err := gone(profile.UserID)
		if err != nil {
			return report, fmt.Errorf("sweep: profile %s: %w", profile.ID, err)
		}
		if !orphan {
			continue
		}
		if _, err := s.profiles.Delete(ctx, profile.ID); err != nil && !errors.Is(err, database.ErrNotFound) {
			return report, fmt.Errorf("sweep: deleting profile %s: %w", profile.ID, err)
		}
		s.logger.Info("swept orphan profile", slog.String("profile_id", profile.ID), slog.String("user_id", profile.UserID))
		report.ProfilesDeleted++
	}

	for _, user := range users {
		dropped := make(map[string]bool)
		for _, target := range user.SubscribedToUserIDs {
			if dropped[target] {
				continue
			}
			orphan, err := gone(target)
			if err != nil {
				return report, fmt.Errorf("sweep: subscriptions of %s: %w", user.ID, err)
			}
			if !orphan {
				continue
			}
			if err := s.dropSubscription(ctx, user.ID, target); err != nil {
				return report, fmt.Errorf("sweep: updating user %s: %w", user.ID, err)
			}
			s.logger.Info("swept dangling subscription", slog.String("user_id", user.ID), slog.String("target_id", target))
			report.SubscriptionsScrubbed++
			dropped[target] = true
		}
	}

	return report, nil
}
