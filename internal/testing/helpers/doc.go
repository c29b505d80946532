// Package helpers provides test utility functions for the Circle API.
//
// # Request Helpers
//
// Build and serve requests against any http.Handler:
//
//	resp := helpers.NewRequest(t, "POST", "/users").
//	    WithBody(map[string]string{"firstName": "Ada"}).
//	    Do(router)
//
// # Assertion Helpers
//
//	helpers.AssertStatus(t, resp, http.StatusCreated)
//	helpers.AssertProblemMessage(t, resp, http.StatusBadRequest, "User not found")
//	helpers.AssertValidationError(t, resp, "email")
//
// # Decoding
//
//	var user model.User
//	helpers.DecodeData(t, resp, &user)
//
// # Pointer Helpers
//
//	name := helpers.StringPtr("test")
//	limit := helpers.IntPtr(42)
package helpers
