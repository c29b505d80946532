// Package database provides connectivity to SurrealDB for the Circle API.
//
// The in-memory store needs no database at all; this package is only used
// when STORE_BACKEND=surrealdb. It also owns the sentinel errors that both
// store backends return, so services can check them without knowing which
// backend is active.
//
// # Database Interface
//
//	type Database interface {
//	    Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
//	    QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
//	    Execute(ctx context.Context, query string, vars map[string]interface{}) error
//	    Close() error
//	}
//
// # Error Types
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Record id already taken
//   - ErrConnection: Database connection failed
//   - ErrQuery: Query failed or was rejected before execution
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database
