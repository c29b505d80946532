package handler

import (
	"net/http"

	"github.com/forgo/circle/api/internal/model"
	"github.com/forgo/circle/api/internal/service"
)

// PostHandler handles post endpoints
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterRoutes mounts the post endpoints on mux
func (h *PostHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /posts", h.List)
	mux.HandleFunc("GET /posts/{id}", h.Get)
	mux.HandleFunc("POST /posts", h.Create)
	mux.HandleFunc("PATCH /posts/{id}", h.Update)
	mux.HandleFunc("DELETE /posts/{id}", h.Delete)
}

func postLinks(p *model.Post) map[string]string {
	return map[string]string{
		"self":   "/posts/" + p.ID,
		"author": "/users/" + p.UserID,
	}
}

// List handles GET /posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, posts, map[string]string{"self": "/posts"})
}

// Get handles GET /posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapLookupError(err))
		return
	}

	WriteData(w, http.StatusOK, post, postLinks(post))
}

// Create handles POST /posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.postService.Create(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, post, postLinks(post))
}

// Update handles PATCH /posts/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.postService.Update(r.Context(), id, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, post, postLinks(post))
}

// Delete handles DELETE /posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.postService.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, post, nil)
}
