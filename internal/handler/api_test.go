package handler

import (
	"net/http"
	"testing"

	"github.com/forgo/circle/api/internal/service"
	"github.com/forgo/circle/api/internal/testing/fixtures"
)

// testAPI serves every endpoint over a seeded in-memory store
type testAPI struct {
	handler http.Handler
	f       *fixtures.Factory
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	f := fixtures.NewMemory(t)
	cols := f.Cols

	users := service.NewUserService(service.UserServiceConfig{
		Users:    cols.Users,
		Profiles: cols.Profiles,
		Posts:    cols.Posts,
	})
	profiles := service.NewProfileService(service.ProfileServiceConfig{
		Profiles:    cols.Profiles,
		Users:       cols.Users,
		MemberTypes: cols.MemberTypes,
	})
	posts := service.NewPostService(service.PostServiceConfig{
		Posts: cols.Posts,
		Users: cols.Users,
	})
	memberTypes := service.NewMemberTypeService(cols.MemberTypes)

	mux := http.NewServeMux()
	NewHealthHandler(nil).RegisterRoutes(mux)
	NewUserHandler(users).RegisterRoutes(mux)
	NewProfileHandler(profiles).RegisterRoutes(mux)
	NewPostHandler(posts).RegisterRoutes(mux)
	NewMemberTypeHandler(memberTypes).RegisterRoutes(mux)

	return &testAPI{handler: mux, f: f}
}
