package cli

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/communityfeed/internal/client/client"
)

func TestFeedScreens(t *testing.T) {
	tests := []struct {
		path  string
		mode  client.FeedMode
		title string
	}{
		{"/feed", client.FeedPersonal, "== Your feed =="},
		{"/global", client.FeedGlobal, "== Global =="},
		{"/trending?page=2", client.FeedTrending, "== Trending =="},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			h := newHarness(t, "")
			h.loginAs(t, "alice")
			h.feed.posts = []client.PostSummary{{ID: 9, Username: "bob", ContentPreview: "first!", LikeCount: 2}}
			h.feed.page = &client.Page[client.PostSummary]{Number: 2, TotalPages: 5}

			require.NoError(t, h.router.Navigate(context.Background(), tt.path))

			out := h.out.String()
			assert.Contains(t, out, tt.title)
			assert.Contains(t, out, "#9")
			assert.Contains(t, out, "@bob")
			assert.Contains(t, out, "2 likes")
			assert.Contains(t, out, "page 3 of 5")
			assert.Equal(t, tt.mode, h.feed.lastMode)
		})
	}
}

func TestFeedScreen_PageQuery(t *testing.T) {
	h := newHarness(t, "")
	h.loginAs(t, "alice")

	require.NoError(t, h.router.Navigate(context.Background(), "/global?page=4"))
	assert.Equal(t, 4, h.feed.lastPage)
	assert.Contains(t, h.out.String(), "No posts yet.")
}

func TestFeedScreen_Error(t *testing.T) {
	h := newHarness(t, "")
	h.loginAs(t, "alice")
	h.feed.feedErr = &client.APIError{Status: http.StatusInternalServerError}

	require.NoError(t, h.router.Navigate(context.Background(), "/feed"))
	assert.Contains(t, h.out.String(), "Failed to load feed")
}

func TestPostScreen(t *testing.T) {
	ctx := context.Background()

	t.Run("renders", func(t *testing.T) {
		h := newHarness(t, "")
		h.loginAs(t, "alice")
		h.feed.post = &client.Post{ID: 5, Username: "bob", AuthorFullName: "Bob Stone", Content: "full text", LikeCount: 1}

		require.NoError(t, h.router.Navigate(ctx, "/posts/5"))
		assert.Contains(t, h.out.String(), "== Post #5 by Bob Stone @bob ==\nfull text\n")
	})

	t.Run("not found", func(t *testing.T) {
		h := newHarness(t, "")
		h.loginAs(t, "alice")
		h.feed.readErr = &client.APIError{Status: http.StatusNotFound, Detail: "Post 7 not found"}

		require.NoError(t, h.router.Navigate(ctx, "/posts/7"))
		assert.Contains(t, h.out.String(), "Post not found")
	})

	t.Run("bad id", func(t *testing.T) {
		h := newHarness(t, "")
		h.loginAs(t, "alice")

		require.NoError(t, h.router.Navigate(ctx, "/posts/abc"))
		assert.Contains(t, h.out.String(), "Post not found")
		assert.Zero(t, h.feed.lastPostID)
	})

	t.Run("other failure", func(t *testing.T) {
		h := newHarness(t, "")
		h.loginAs(t, "alice")
		h.feed.readErr = client.ErrUnavailable

		require.NoError(t, h.router.Navigate(ctx, "/posts/7"))
		assert.Contains(t, h.out.String(), "Server unavailable")
	})
}

func TestUserScreen(t *testing.T) {
	h := newHarness(t, "")
	h.loginAs(t, "alice")
	h.feed.user = &client.User{ID: 7, Username: "bob", FirstName: "Bob", LastName: "Stone", Bio: "hiker"}

	require.NoError(t, h.router.Navigate(context.Background(), "/users/7"))
	assert.Equal(t, "== @bob ==\nBob Stone\nhiker\n", h.out.String())
}

func TestProfileScreen_FallsBackToSession(t *testing.T) {
	h := newHarness(t, "")
	h.loginAs(t, "alice")
	h.feed.readErr = client.ErrUnavailable

	require.NoError(t, h.router.Navigate(context.Background(), "/profile"))
	out := h.out.String()
	assert.Contains(t, out, "Server unavailable")
	assert.Contains(t, out, "== @alice ==")
	assert.Contains(t, out, "a@x.com")
}

func TestPublicScreens(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.router.Navigate(context.Background(), "/register"))
	assert.Contains(t, h.out.String(), "== Create account ==")
	assert.Equal(t, "/register", h.router.Current())
}
