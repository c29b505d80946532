package model

import "github.com/google/uuid"

// Kind names an entity collection in user-facing messages
type Kind string

const (
	KindUser       Kind = "User"
	KindProfile    Kind = "Profile"
	KindPost       Kind = "Post"
	KindMemberType Kind = "Member type"
)

// Fields that can be used in an equality Filter
const (
	FieldID           = "id"
	FieldUserID       = "userId"
	FieldEmail        = "email"
	FieldMemberTypeID = "memberTypeId"
)

// Record is implemented by every stored entity.
// Field returns the string value of a filterable field and false for any other key.
type Record interface {
	GetID() string
	SetID(id string)
	Field(key string) (string, bool)
}

// Filter selects records whose Key field equals Equals
type Filter struct {
	Key    string
	Equals string
}

// Where builds an equality filter
func Where(key, equals string) Filter {
	return Filter{Key: key, Equals: equals}
}

// ByID builds a filter on the record id
func ByID(id string) Filter {
	return Filter{Key: FieldID, Equals: id}
}

// Matches reports whether r satisfies the filter
func (f Filter) Matches(r Record) bool {
	v, ok := r.Field(f.Key)
	return ok && v == f.Equals
}

// IsValidID reports whether id is a store-assigned identifier
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
