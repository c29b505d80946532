// Package handler provides the HTTP endpoints of the Circle API.
//
// Each entity has a handler struct wrapping its service and a RegisterRoutes
// method that mounts its endpoints on a *http.ServeMux using method patterns:
//
//	users := NewUserHandler(userService)
//	users.RegisterRoutes(mux)
//
// # Response Format
//
//   - WriteData: single resource with HATEOAS links
//   - WriteCollection: list of resources
//   - WriteError: RFC 9457 Problem Details error response
//
// # Error Statuses
//
// Reading a single record that does not exist is a 404 (MapLookupError).
// Every failure of a mutating request that the service reports on purpose
// (missing record, missing reference, duplicate profile, not subscribed) is a
// 400 whose detail is the service message (MapServiceError). Anything else is
// a 500 with a generic detail; the cause is logged.
package handler
