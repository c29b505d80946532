package model

// Member type tiers seeded at store initialisation
const (
	MemberTypeBasic    = "basic"
	MemberTypeBusiness = "business"
)

// MemberType is a membership tier referenced by profiles
type MemberType struct {
	ID              string `json:"id"`
	Discount        int    `json:"discount"`
	MonthPostsLimit int    `json:"monthPostsLimit"`
}

func (m *MemberType) GetID() string   { return m.ID }
func (m *MemberType) SetID(id string) { m.ID = id }

func (m *MemberType) Field(key string) (string, bool) {
	if key == FieldID {
		return m.ID, true
	}
	return "", false
}

// DefaultMemberTypes returns the tiers every store starts with
func DefaultMemberTypes() []*MemberType {
	return []*MemberType{
		{ID: MemberTypeBasic, Discount: 0, MonthPostsLimit: 20},
		{ID: MemberTypeBusiness, Discount: 5, MonthPostsLimit: 100},
	}
}

// UpdateMemberTypeRequest represents a partial member type update
type UpdateMemberTypeRequest struct {
	Discount        *int `json:"discount,omitempty"`
	MonthPostsLimit *int `json:"monthPostsLimit,omitempty"`
}

// Validate validates the update member type request
func (r *UpdateMemberTypeRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Discount != nil && (*r.Discount < 0 || *r.Discount > 100) {
		errors = append(errors, FieldError{Field: "discount", Message: "discount must be between 0 and 100"})
	}
	if r.MonthPostsLimit != nil && *r.MonthPostsLimit < 0 {
		errors = append(errors, FieldError{Field: "monthPostsLimit", Message: "monthPostsLimit cannot be negative"})
	}

	return errors
}

// Updates returns the fields present in the request keyed by their JSON name
func (r *UpdateMemberTypeRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Discount != nil {
		updates["discount"] = *r.Discount
	}
	if r.MonthPostsLimit != nil {
		updates["monthPostsLimit"] = *r.MonthPostsLimit
	}
	return updates
}
