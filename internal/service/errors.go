package service

import (
	"errors"
	"fmt"

	"github.com/forgo/circle/api/internal/database"
	"github.com/forgo/circle/api/internal/model"
)

// Client-facing error kinds.
// Every error a service returns on purpose is an *Error wrapping one of these;
// anything else is an internal failure. Use errors.Is() to check the kind.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidReference = errors.New("invalid reference")
	ErrNotSubscribed    = errors.New("not subscribed")
)

// Error is a client-facing failure tagged with its kind and the entity it concerns
type Error struct {
	Kind   error
	Entity model.Kind
	ID     string
}

// Error returns the user-facing message for the failure
func (e *Error) Error() string {
	switch e.Kind {
	case ErrAlreadyExists:
		return fmt.Sprintf("%s already exist", e.Entity)
	case ErrNotSubscribed:
		return fmt.Sprintf("%s not subscribed", e.Entity)
	default:
		// ErrNotFound and ErrInvalidReference both report the missing record
		return fmt.Sprintf("%s not found", e.Entity)
	}
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(entity model.Kind, id string) error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id}
}

func alreadyExists(entity model.Kind, id string) error {
	return &Error{Kind: ErrAlreadyExists, Entity: entity, ID: id}
}

func invalidReference(entity model.Kind, id string) error {
	return &Error{Kind: ErrInvalidReference, Entity: entity, ID: id}
}

func notSubscribed(id string) error {
	return &Error{Kind: ErrNotSubscribed, Entity: model.KindUser, ID: id}
}

// AsError extracts the tagged client error from err, if any
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// storeMiss converts a store-level missing record into the tagged kind
func storeMiss(err error, entity model.Kind, id string) error {
	if errors.Is(err, database.ErrNotFound) {
		return notFound(entity, id)
	}
	return fmt.Errorf("%s %s: %w", entity, id, err)
}
