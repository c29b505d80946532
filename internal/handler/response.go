package handler

import (
	"encoding/json"
	"net/http"

	"github.com/forgo/circle/api/internal/model"
)

// DataResponse wraps a successful response with optional HATEOAS links
type DataResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// CollectionResponse wraps a collection response
type CollectionResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data response
func WriteData(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	WriteJSON(w, status, DataResponse{
		Data:  data,
		Links: links,
	})
}

// WriteCollection writes a collection response
func WriteCollection(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	WriteJSON(w, status, CollectionResponse{
		Data:  data,
		Links: links,
	})
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct.
// Unknown fields are rejected.
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// decodeAndValidate decodes the body into req and runs its validation,
// writing the 400 response itself when either fails
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface {
	Validate() []model.FieldError
}) bool {
	if err := DecodeJSON(r, req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return false
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return false
	}
	return true
}

// pathUUID reads a UUID path parameter, writing a 400 response when it is malformed
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if !model.IsValidID(id) {
		WriteError(w, model.NewValidationError([]model.FieldError{{
			Field:   name,
			Message: name + " must be a valid UUID",
		}}))
		return "", false
	}
	return id, true
}
