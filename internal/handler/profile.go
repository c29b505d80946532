package handler

import (
	"net/http"

	"github.com/forgo/circle/api/internal/model"
	"github.com/forgo/circle/api/internal/service"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterRoutes mounts the profile endpoints on mux
func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /profiles", h.List)
	mux.HandleFunc("GET /profiles/{id}", h.Get)
	mux.HandleFunc("POST /profiles", h.Create)
	mux.HandleFunc("PATCH /profiles/{id}", h.Update)
	mux.HandleFunc("DELETE /profiles/{id}", h.Delete)
}

func profileLinks(p *model.Profile) map[string]string {
	return map[string]string{
		"self":       "/profiles/" + p.ID,
		"user":       "/users/" + p.UserID,
		"memberType": "/member-types/" + p.MemberTypeID,
	}
}

// List handles GET /profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, profiles, map[string]string{"self": "/profiles"})
}

// Get handles GET /profiles/{id}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapLookupError(err))
		return
	}

	WriteData(w, http.StatusOK, profile, profileLinks(profile))
}

// Create handles POST /profiles
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.profileService.Create(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, profile, profileLinks(profile))
}

// Update handles PATCH /profiles/{id}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.profileService.Update(r.Context(), id, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, profile, profileLinks(profile))
}

// Delete handles DELETE /profiles/{id}
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, profile, nil)
}
