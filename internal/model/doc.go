// Package model defines domain entities and data structures for the Circle API.
//
// The model package contains the stored entities, request types with their
// validation rules, and the RFC 9457 error payload. Models are used across all
// layers of the application.
//
// # Domain Entities
//
//   - User: account with an ordered list of followed user ids
//   - Profile: descriptive attributes, at most one per user, references a MemberType
//   - Post: content owned by a user
//   - MemberType: membership tier (basic, business), seeded at startup
//
// # Records and Filters
//
// Every entity implements Record so the store can assign ids and evaluate
// single-field equality filters:
//
//	profile, err := profiles.FindOne(ctx, model.Where(model.FieldUserID, userID))
//
// # JSON Serialization
//
// Entities and requests use camelCase json tags. Update requests use pointer
// fields; Updates() returns only the fields that were supplied.
package model
