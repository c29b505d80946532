package handler

import (
	"net/http"

	"github.com/forgo/circle/api/internal/model"
	"github.com/forgo/circle/api/internal/service"
)

// UserHandler handles user and subscription endpoints
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes mounts the user endpoints on mux
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /users", h.List)
	mux.HandleFunc("GET /users/{id}", h.Get)
	mux.HandleFunc("POST /users", h.Create)
	mux.HandleFunc("PATCH /users/{id}", h.Update)
	mux.HandleFunc("DELETE /users/{id}", h.Delete)
	mux.HandleFunc("POST /users/{id}/subscribeTo", h.Subscribe)
	mux.HandleFunc("POST /users/{id}/unsubscribeFrom", h.Unsubscribe)
}

func userLinks(u *model.User) map[string]string {
	self := "/users/" + u.ID
	return map[string]string{
		"self":            self,
		"subscribeTo":     self + "/subscribeTo",
		"unsubscribeFrom": self + "/unsubscribeFrom",
	}
}

// presentUser makes an empty subscription list render as [] rather than null
func presentUser(u *model.User) *model.User {
	if u.SubscribedToUserIDs == nil {
		u.SubscribedToUserIDs = []string{}
	}
	return u
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	for _, u := range users {
		presentUser(u)
	}
	WriteCollection(w, http.StatusOK, users, map[string]string{"self": "/users"})
}

// Get handles GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapLookupError(err))
		return
	}

	WriteData(w, http.StatusOK, presentUser(user), userLinks(user))
}

// Create handles POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Create(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, presentUser(user), userLinks(user))
}

// Update handles PATCH /users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Update(r.Context(), id, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, presentUser(user), userLinks(user))
}

// Delete handles DELETE /users/{id}, removing the user's posts, profile
// and every subscription to it
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, presentUser(user), nil)
}

// Subscribe handles POST /users/{id}/subscribeTo.
// The path names the user to follow; the body names the subscriber, which is
// the user returned.
func (h *UserHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req model.SubscribeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Subscribe(r.Context(), targetID, req.UserID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, presentUser(user), userLinks(user))
}

// Unsubscribe handles POST /users/{id}/unsubscribeFrom
func (h *UserHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req model.SubscribeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Unsubscribe(r.Context(), targetID, req.UserID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, presentUser(user), userLinks(user))
}
