package model

// Profile holds descriptive attributes for a user and references its member type
type Profile struct {
	ID           string `json:"id"`
	Avatar       string `json:"avatar"`
	Sex          string `json:"sex"`
	Birthday     int64  `json:"birthday"`
	Country      string `json:"country"`
	Street       string `json:"street"`
	City         string `json:"city"`
	MemberTypeID string `json:"memberTypeId"`
	UserID       string `json:"userId"`
}

func (p *Profile) GetID() string   { return p.ID }
func (p *Profile) SetID(id string) { p.ID = id }

func (p *Profile) Field(key string) (string, bool) {
	switch key {
	case FieldID:
		return p.ID, true
	case FieldUserID:
		return p.UserID, true
	case FieldMemberTypeID:
		return p.MemberTypeID, true
	}
	return "", false
}

// CreateProfileRequest represents a request to create a profile
type CreateProfileRequest struct {
	Avatar       string `json:"avatar"`
	Sex          string `json:"sex"`
	Birthday     int64  `json:"birthday"`
	Country      string `json:"country"`
	Street       string `json:"street"`
	City         string `json:"city"`
	MemberTypeID string `json:"memberTypeId"`
	UserID       string `json:"userId"`
}

// Validate validates the create profile request
func (r *CreateProfileRequest) Validate() []FieldError {
	var errors []FieldError

	required := []struct {
		field string
		value string
	}{
		{"avatar", r.Avatar},
		{"sex", r.Sex},
		{"country", r.Country},
		{"street", r.Street},
		{"city", r.City},
		{"memberTypeId", r.MemberTypeID},
	}
	for _, f := range required {
		if f.value == "" {
			errors = append(errors, FieldError{Field: f.field, Message: f.field + " is required"})
		}
	}
	if !IsValidID(r.UserID) {
		errors = append(errors, FieldError{Field: "userId", Message: "userId must be a valid UUID"})
	}

	return errors
}

// ToProfile builds the record to store
func (r *CreateProfileRequest) ToProfile() *Profile {
	return &Profile{
		Avatar:       r.Avatar,
		Sex:          r.Sex,
		Birthday:     r.Birthday,
		Country:      r.Country,
		Street:       r.Street,
		City:         r.City,
		MemberTypeID: r.MemberTypeID,
		UserID:       r.UserID,
	}
}

// UpdateProfileRequest represents a partial profile update.
// The owning user cannot be changed.
type UpdateProfileRequest struct {
	Avatar       *string `json:"avatar,omitempty"`
	Sex          *string `json:"sex,omitempty"`
	Birthday     *int64  `json:"birthday,omitempty"`
	Country      *string `json:"country,omitempty"`
	Street       *string `json:"street,omitempty"`
	City         *string `json:"city,omitempty"`
	MemberTypeID *string `json:"memberTypeId,omitempty"`
}

// Validate validates the update profile request
func (r *UpdateProfileRequest) Validate() []FieldError {
	var errors []FieldError

	optional := []struct {
		field string
		value *string
	}{
		{"avatar", r.Avatar},
		{"sex", r.Sex},
		{"country", r.Country},
		{"street", r.Street},
		{"city", r.City},
		{"memberTypeId", r.MemberTypeID},
	}
	for _, f := range optional {
		if f.value != nil && *f.value == "" {
			errors = append(errors, FieldError{Field: f.field, Message: f.field + " cannot be empty"})
		}
	}

	return errors
}

// Updates returns the fields present in the request keyed by their JSON name
func (r *UpdateProfileRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Avatar != nil {
		updates["avatar"] = *r.Avatar
	}
	if r.Sex != nil {
		updates["sex"] = *r.Sex
	}
	if r.Birthday != nil {
		updates["birthday"] = *r.Birthday
	}
	if r.Country != nil {
		updates["country"] = *r.Country
	}
	if r.Street != nil {
		updates["street"] = *r.Street
	}
	if r.City != nil {
		updates["city"] = *r.City
	}
	if r.MemberTypeID != nil {
		updates["memberTypeId"] = *r.MemberTypeID
	}
	return updates
}
