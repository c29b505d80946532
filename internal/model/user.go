package model

// User represents an account that can own posts and a profile and
// subscribe to other users
type User struct {
	ID                  string   `json:"id"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	Email               string   `json:"email"`
	SubscribedToUserIDs []string `json:"subscribedToUserIds"`
}

func (u *User) GetID() string   { return u.ID }
func (u *User) SetID(id string) { u.ID = id }

func (u *User) Field(key string) (string, bool) {
	switch key {
	case FieldID:
		return u.ID, true
	case FieldEmail:
		return u.Email, true
	}
	return "", false
}

// IsSubscribedTo returns true if userID appears in the subscription list
func (u *User) IsSubscribedTo(userID string) bool {
	for _, id := range u.SubscribedToUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// WithoutSubscription returns the subscription list with every occurrence of userID removed
func (u *User) WithoutSubscription(userID string) []string {
	kept := make([]string, 0, len(u.SubscribedToUserIDs))
	for _, id := range u.SubscribedToUserIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	return kept
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Validate validates the create user request
func (r *CreateUserRequest) Validate() []FieldError {
	var errors []FieldError

	if r.FirstName == "" {
		errors = append(errors, FieldError{Field: "firstName", Message: "firstName is required"})
	}
	if r.LastName == "" {
		errors = append(errors, FieldError{Field: "lastName", Message: "lastName is required"})
	}
	if r.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	}

	return errors
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// Validate validates the update user request
func (r *UpdateUserRequest) Validate() []FieldError {
	var errors []FieldError

	if r.FirstName != nil && *r.FirstName == "" {
		errors = append(errors, FieldError{Field: "firstName", Message: "firstName cannot be empty"})
	}
	if r.LastName != nil && *r.LastName == "" {
		errors = append(errors, FieldError{Field: "lastName", Message: "lastName cannot be empty"})
	}
	if r.Email != nil && *r.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email cannot be empty"})
	}

	return errors
}

// Updates returns the fields present in the request keyed by their JSON name
func (r *UpdateUserRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.FirstName != nil {
		updates["firstName"] = *r.FirstName
	}
	if r.LastName != nil {
		updates["lastName"] = *r.LastName
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	return updates
}

// SubscribeRequest names the user whose subscription list changes
type SubscribeRequest struct {
	UserID string `json:"userId"`
}

// Validate validates the subscribe request
func (r *SubscribeRequest) Validate() []FieldError {
	if !IsValidID(r.UserID) {
		return []FieldError{{Field: "userId", Message: "userId must be a valid UUID"}}
	}
	return nil
}
