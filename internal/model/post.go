package model

// Post is a piece of content owned by a user
type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

func (p *Post) GetID() string   { return p.ID }
func (p *Post) SetID(id string) { p.ID = id }

func (p *Post) Field(key string) (string, bool) {
	switch key {
	case FieldID:
		return p.ID, true
	case FieldUserID:
		return p.UserID, true
	}
	return "", false
}

// CreatePostRequest represents a request to create a post
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

// Validate validates the create post request
func (r *CreatePostRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	}
	if r.Content == "" {
		errors = append(errors, FieldError{Field: "content", Message: "content is required"})
	}
	if !IsValidID(r.UserID) {
		errors = append(errors, FieldError{Field: "userId", Message: "userId must be a valid UUID"})
	}

	return errors
}

// UpdatePostRequest represents a partial post update
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Validate validates the update post request
func (r *UpdatePostRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title != nil && *r.Title == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title cannot be empty"})
	}
	if r.Content != nil && *r.Content == "" {
		errors = append(errors, FieldError{Field: "content", Message: "content cannot be empty"})
	}

	return errors
}

// Updates returns the fields present in the request keyed by their JSON name
func (r *UpdatePostRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Content != nil {
		updates["content"] = *r.Content
	}
	return updates
}
