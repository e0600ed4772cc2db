package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/communityfeed/internal/client/redirect"
	"github.com/dmitrijs2005/communityfeed/internal/client/storage"
)

type fakeAuth struct{ authenticated bool }

func (f *fakeAuth) IsAuthenticated() bool { return f.authenticated }

func newTestGuard(authenticated bool) (*Guard, *redirect.Tracker, *fakeAuth) {
	auth := &fakeAuth{authenticated: authenticated}
	tracker := redirect.NewTracker(storage.NewMemoryStore(), "/login", nil)
	return NewGuard(auth, tracker, "/login", nil), tracker, auth
}

func TestGuard_Check_Unauthenticated(t *testing.T) {
	ctx := context.Background()
	g, tracker, _ := newTestGuard(false)

	d := g.Check(ctx, "/posts/5")

	assert.Equal(t, Decision{Redirect: "/login"}, d)
	assert.Equal(t, "/posts/5", tracker.Consume(ctx, "/feed"))
}

func TestGuard_Check_Authenticated(t *testing.T) {
	ctx := context.Background()
	g, tracker, _ := newTestGuard(true)

	d := g.Check(ctx, "/posts/5")

	assert.Equal(t, Decision{Allow: true}, d)
	assert.Equal(t, "/feed", tracker.Consume(ctx, "/feed"), "tracker must stay untouched")
}

func TestGuard_DefaultLoginPath(t *testing.T) {
	g := NewGuard(&fakeAuth{}, redirect.NewTracker(storage.NewMemoryStore(), "", nil), "", nil)
	assert.Equal(t, "/login", g.Check(context.Background(), "/feed").Redirect)
}

func TestGuard_Middleware(t *testing.T) {
	g, tracker, auth := newTestGuard(false)

	called := false
	h := g.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7?tab=posts", nil))

	assert.False(t, called)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, "/users/7?tab=posts", tracker.Consume(context.Background(), "/feed"))

	auth.authenticated = true
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
