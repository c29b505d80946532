package service

import (
	"context"

	"github.com/forgo/circle/api/internal/model"
)

// PostService handles posts
type PostService struct {
	posts Store[model.Post]
	users Finder[model.User]
}

// PostServiceConfig holds configuration for the post service
type PostServiceConfig struct {
	Posts Store[model.Post]
	Users Finder[model.User]
}

// NewPostService creates a new post service
func NewPostService(cfg PostServiceConfig) *PostService {
	return &PostService{
		posts: cfg.Posts,
		users: cfg.Users,
	}
}

// List returns every post in creation order
func (s *PostService) List(ctx context.Context) ([]*model.Post, error) {
	return s.posts.FindMany(ctx, nil)
}

// Get retrieves a post by ID
func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	return findByID[model.Post](ctx, s.posts, model.KindPost, id)
}

// Create creates a post for an existing user
func (s *PostService) Create(ctx context.Context, req *model.CreatePostRequest) (*model.Post, error) {
	ok, err := exists[model.User](ctx, s.users, model.KindUser, req.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidReference(model.KindUser, req.UserID)
	}

	return s.posts.Create(ctx, &model.Post{
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID,
	})
}

// Update applies a partial update to a post
func (s *PostService) Update(ctx context.Context, id string, req *model.UpdatePostRequest) (*model.Post, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	post, err := s.posts.Change(ctx, id, req.Updates())
	if err != nil {
		return nil, storeMiss(err, model.KindPost, id)
	}
	return post, nil
}

// Delete removes a post
func (s *PostService) Delete(ctx context.Context, id string) (*model.Post, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	post, err := s.posts.Delete(ctx, id)
	if err != nil {
		return nil, storeMiss(err, model.KindPost, id)
	}
	return post, nil
}
