package handler

import (
	"net/http"
	"strings"

	"github.com/forgo/circle/api/internal/model"
	"github.com/forgo/circle/api/internal/service"
)

// MemberTypeHandler handles member type endpoints.
// Member types are seeded; they can be read and adjusted but not created or deleted.
type MemberTypeHandler struct {
	memberTypeService *service.MemberTypeService
}

// NewMemberTypeHandler creates a new member type handler
func NewMemberTypeHandler(memberTypeService *service.MemberTypeService) *MemberTypeHandler {
	return &MemberTypeHandler{memberTypeService: memberTypeService}
}

// RegisterRoutes mounts the member type endpoints on mux
func (h *MemberTypeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /member-types", h.List)
	mux.HandleFunc("GET /member-types/{id}", h.Get)
	mux.HandleFunc("PATCH /member-types/{id}", h.Update)
}

// memberTypeID reads the path id. Member type ids are tier names, not UUIDs.
func memberTypeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{{
			Field:   "id",
			Message: "id is required",
		}}))
		return "", false
	}
	return id, true
}

// List handles GET /member-types
func (h *MemberTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	memberTypes, err := h.memberTypeService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, memberTypes, map[string]string{"self": "/member-types"})
}

// Get handles GET /member-types/{id}
func (h *MemberTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := memberTypeID(w, r)
	if !ok {
		return
	}

	memberType, err := h.memberTypeService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapLookupError(err))
		return
	}

	WriteData(w, http.StatusOK, memberType, map[string]string{"self": "/member-types/" + memberType.ID})
}

// Update handles PATCH /member-types/{id}
func (h *MemberTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := memberTypeID(w, r)
	if !ok {
		return
	}

	var req model.UpdateMemberTypeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	memberType, err := h.memberTypeService.Update(r.Context(), id, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, memberType, map[string]string{"self": "/member-types/" + memberType.ID})
}
