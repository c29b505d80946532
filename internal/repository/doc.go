// Package repository provides the entity stores for the Circle API.
//
// Every entity kind lives in a keyed collection with the same small
// contract: create with a fresh id, find one or many by a single-field
// equality filter, merge a partial change, and delete returning the
// removed record. Two backends implement it:
//
//   - MemoryCollection: process-local map guarded by a RWMutex. Reads and
//     writes are deep copies, so callers only ever hold snapshots.
//   - SurrealCollection: one SurrealDB table per kind, ordered by created_on.
//
// # Usage
//
//	cols, err := repository.NewMemory()
//	if err != nil {
//	    return err
//	}
//	user, err := cols.Users.Create(ctx, &model.User{FirstName: "Ada"})
//
// # Errors
//
// Change and Delete return database.ErrNotFound for a missing id. FindOne
// returns (nil, nil) instead. Filtering on a field the model does not
// expose returns database.ErrQuery.
package repository
