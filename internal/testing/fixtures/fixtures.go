// Package fixtures provides test data factories.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories insert through the store
// collections and return the stored records.
//
// Usage:
//
//	f := fixtures.NewMemory(t)
//	user := f.CreateUser(t)
//	profile := f.CreateProfile(t, user)
//	post := f.CreatePost(t, user)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/forgo/circle/api/internal/model"
	"github.com/forgo/circle/api/internal/repository"
)

// Factory creates test entities in a set of collections
type Factory struct {
	Cols *repository.Collections
}

// New creates a new fixture factory over existing collections
func New(cols *repository.Collections) *Factory {
	return &Factory{Cols: cols}
}

// NewMemory creates a factory over fresh, seeded in-memory collections
func NewMemory(t *testing.T) *Factory {
	t.Helper()

	cols, err := repository.NewMemory()
	if err != nil {
		t.Fatalf("fixtures: failed to create memory store: %v", err)
	}
	return New(cols)
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout that is cancelled at test end
func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	FirstName    string
	LastName     string
	Email        string
	SubscribedTo []string
}

// WithSubscriptions sets the initial subscription list
func WithSubscriptions(userIDs ...string) func(*UserOpts) {
	return func(o *UserOpts) {
		o.SubscribedTo = userIDs
	}
}

// WithEmail sets the user's email
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) {
		o.Email = email
	}
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	id := randomID()
	o := &UserOpts{
		FirstName:    "First_" + id,
		LastName:     "Last_" + id,
		Email:        fmt.Sprintf("user_%s@test.local", id),
		SubscribedTo: []string{},
	}
	for _, fn := range opts {
		fn(o)
	}

	user, err := f.Cols.Users.Create(ctx(t), &model.User{
		FirstName:           o.FirstName,
		LastName:            o.LastName,
		Email:               o.Email,
		SubscribedToUserIDs: o.SubscribedTo,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// Subscribe appends target to the user's subscription list directly in the store
func (f *Factory) Subscribe(t *testing.T, user, target *model.User) *model.User {
	t.Helper()

	current := f.MustUser(t, user.ID)
	updated, err := f.Cols.Users.Change(ctx(t), user.ID, map[string]interface{}{
		"subscribedToUserIds": append(current.SubscribedToUserIDs, target.ID),
	})
	if err != nil {
		t.Fatalf("fixtures: failed to subscribe: %v", err)
	}
	return updated
}

// MustUser re-reads a user and fails the test if it is missing
func (f *Factory) MustUser(t *testing.T, id string) *model.User {
	t.Helper()

	user, err := f.Cols.Users.FindOne(ctx(t), model.ByID(id))
	if err != nil {
		t.Fatalf("fixtures: failed to load user %s: %v", id, err)
	}
	if user == nil {
		t.Fatalf("fixtures: user %s not found", id)
	}
	return user
}

// ============================================================================
// Profile Fixtures
// ============================================================================

// ProfileOpts customizes profile creation
type ProfileOpts struct {
	MemberTypeID string
	Country      string
	City         string
}

// WithMemberType sets the profile's member type
func WithMemberType(id string) func(*ProfileOpts) {
	return func(o *ProfileOpts) {
		o.MemberTypeID = id
	}
}

// CreateProfile creates a profile owned by user
func (f *Factory) CreateProfile(t *testing.T, user *model.User, opts ...func(*ProfileOpts)) *model.Profile {
	t.Helper()

	o := &ProfileOpts{
		MemberTypeID: model.MemberTypeBasic,
		Country:      "Norway",
		City:         "Oslo",
	}
	for _, fn := range opts {
		fn(o)
	}

	profile, err := f.Cols.Profiles.Create(ctx(t), &model.Profile{
		Avatar:       "https://img.test.local/" + randomID() + ".png",
		Sex:          "female",
		Birthday:     time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Country:      o.Country,
		Street:       "Main street 1",
		City:         o.City,
		MemberTypeID: o.MemberTypeID,
		UserID:       user.ID,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create profile: %v", err)
	}
	return profile
}

// ============================================================================
// Post Fixtures
// ============================================================================

// CreatePost creates a post owned by user
func (f *Factory) CreatePost(t *testing.T, user *model.User) *model.Post {
	t.Helper()

	id := randomID()
	post, err := f.Cols.Posts.Create(ctx(t), &model.Post{
		Title:   "Post " + id,
		Content: "Content " + id,
		UserID:  user.ID,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create post: %v", err)
	}
	return post
}

// PostsOf returns every post owned by userID
func (f *Factory) PostsOf(t *testing.T, userID string) []*model.Post {
	t.Helper()

	filter := model.Where(model.FieldUserID, userID)
	posts, err := f.Cols.Posts.FindMany(ctx(t), &filter)
	if err != nil {
		t.Fatalf("fixtures: failed to list posts: %v", err)
	}
	return posts
}

// ProfileOf returns the profile owned by userID, or nil
func (f *Factory) ProfileOf(t *testing.T, userID string) *model.Profile {
	t.Helper()

	profile, err := f.Cols.Profiles.FindOne(ctx(t), model.Where(model.FieldUserID, userID))
	if err != nil {
		t.Fatalf("fixtures: failed to load profile: %v", err)
	}
	return profile
}
