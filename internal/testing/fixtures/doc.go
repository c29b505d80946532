// Package fixtures provides test data factories for the Circle API.
//
// # Factory Pattern
//
// Create a factory over fresh in-memory collections, or over collections
// built on a test database:
//
//	f := fixtures.NewMemory(t)
//	f := fixtures.New(cols)
//
// # Creating Test Data
//
//	user := f.CreateUser(t)
//	follower := f.CreateUser(t, fixtures.WithSubscriptions(user.ID))
//	profile := f.CreateProfile(t, user, fixtures.WithMemberType("business"))
//	post := f.CreatePost(t, user)
//
// # Inspecting State
//
//	f.MustUser(t, id)
//	f.PostsOf(t, userID)
//	f.ProfileOf(t, userID)
//
// Unique names and emails are generated automatically.
package fixtures
