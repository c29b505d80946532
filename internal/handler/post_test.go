package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/circle/api/internal/model"
	"github.com/forgo/circle/api/internal/testing/helpers"
)

func TestPostLifecycle(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	author := api.f.CreateUser(t)

	resp := helpers.NewRequest(t, http.MethodPost, "/posts").
		WithBody(model.CreatePostRequest{Title: "Hello", Content: "First post", UserID: author.ID}).
		Do(api.handler)
	helpers.AssertStatus(t, resp, http.StatusCreated)

	var post model.Post
	helpers.DecodeData(t, resp, &post)
	require.True(t, model.IsValidID(post.ID))
	assert.Equal(t, author.ID, post.UserID)
	assert.Contains(t, resp.Body.String(), `"author":"/users/`+author.ID+`"`)

	resp = helpers.NewRequest(t, http.MethodPatch, "/posts/"+post.ID).
		WithBody(model.UpdatePostRequest{Content: helpers.StringPtr("Edited")}).
		Do(api.handler)
	helpers.AssertStatus(t, resp, http.StatusOK)
	helpers.DecodeData(t, resp, &post)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "Edited", post.Content)

	resp = helpers.NewRequest(t, http.MethodGet, "/posts").Do(api.handler)
	helpers.AssertStatus(t, resp, http.StatusOK)
	var posts []model.Post
	helpers.DecodeData(t, resp, &posts)
	assert.Equal(t, []model.Post{post}, posts)

	resp = helpers.NewRequest(t, http.MethodDelete, "/posts/"+post.ID).Do(api.handler)
	helpers.AssertStatus(t, resp, http.StatusOK)

	resp = helpers.NewRequest(t, http.MethodGet, "/posts/"+post.ID).Do(api.handler)
	helpers.AssertProblemMessage(t, resp, http.StatusNotFound, "Post not found")
}

func TestPost_Failures(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	missing := uuid.NewString()

	resp := helpers.NewRequest(t, http.MethodPost, "/posts").
		WithBody(model.CreatePostRequest{Title: "T", Content: "C", UserID: missing}).
		Do(api.handler)
	helpers.AssertProblemDetails(t, resp, http.StatusBadRequest, model.ErrCodeInvalidReference)
	assert.Equal(t, "User not found", helpers.DecodeProblem(t, resp).Detail)
	assert.Empty(t, api.f.PostsOf(t, missing))

	resp = helpers.NewRequest(t, http.MethodPost, "/posts").
		WithBody(model.CreatePostRequest{Content: "C", UserID: missing}).
		Do(api.handler)
	helpers.AssertValidationError(t, resp, "title")

	resp = helpers.NewRequest(t, http.MethodPatch, "/posts/"+missing).
		WithBody(model.UpdatePostRequest{Title: helpers.StringPtr("T")}).
		Do(api.handler)
	helpers.AssertProblemMessage(t, resp, http.StatusBadRequest, "Post not found")

	resp = helpers.NewRequest(t, http.MethodDelete, "/posts/"+missing).Do(api.handler)
	helpers.AssertProblemMessage(t, resp, http.StatusBadRequest, "Post not found")

	resp = helpers.NewRequest(t, http.MethodDelete, "/posts/123").Do(api.handler)
	helpers.AssertValidationError(t, resp, "id")
}
