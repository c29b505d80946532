// Package service implements the business logic layer for the Circle API.
//
// The service package holds the referential-integrity checks, the cascade
// that runs when a user is deleted, and the subscription graph operations.
// Services sit between HTTP handlers and the entity stores.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with store dependencies
//   - Services declare the store capability they need (Store, Finder, MemberTypeStore)
//   - Context is passed through for cancellation and request-scoped values
//
// # Referential Integrity
//
// References are verified on every write that establishes them: a profile
// needs an existing member type and user, a post needs an existing user,
// and a subscription target must exist. Updates and deletes look the record
// up first and fail with ErrNotFound when it is missing.
//
// # Cascade Delete
//
// UserService.Delete removes the user's posts, removes the user from every
// follower's subscription list, removes the profile and finally the user.
// The sequence is not atomic.
//
// # Concurrency
//
// Read-modify-write sequences on a subscription list hold a per-user lock,
// and profile creation holds a per-owner lock. Locks are never nested.
//
// # Error Handling
//
// Client-facing failures are *Error values tagged with one of four kinds:
//
//	var (
//	    ErrNotFound         = errors.New("not found")
//	    ErrAlreadyExists    = errors.New("already exists")
//	    ErrInvalidReference = errors.New("invalid reference")
//	    ErrNotSubscribed    = errors.New("not subscribed")
//	)
//
// Any other error is an internal failure.
//
// # Example Usage
//
//	users := NewUserService(UserServiceConfig{
//	    Users:    cols.Users,
//	    Profiles: cols.Profiles,
//	    Posts:    cols.Posts,
//	})
//	follower, err := users.Subscribe(ctx, targetID, sourceID)
package service
