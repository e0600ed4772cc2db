package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/communityfeed/internal/client/client"
)

func TestFeed_ReturnsPosts(t *testing.T) {
	fc := &fakeClient{PostsRet: &client.Page[client.PostSummary]{
		Content:    []client.PostSummary{{ID: 1, Username: "bob", ContentPreview: "hello"}},
		Number:     1,
		TotalPages: 4,
	}}
	svc := NewFeedService(fc)

	posts, page, err := svc.Feed(context.Background(), client.FeedTrending, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "bob", posts[0].Username)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, client.FeedTrending, fc.LastMode)
	assert.Equal(t, 1, fc.LastPage)
}

func TestFeed_NegativePageAndMissingContent(t *testing.T) {
	fc := &fakeClient{PostsRet: &client.Page[client.PostSummary]{}}
	svc := NewFeedService(fc)

	posts, _, err := svc.Feed(context.Background(), client.FeedGlobal, -3)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
	assert.Equal(t, 0, fc.LastPage)
}

func TestFeed_ErrorIsWrapped(t *testing.T) {
	fc := &fakeClient{PostsErr: client.ErrUnavailable}
	svc := NewFeedService(fc)

	_, _, err := svc.Feed(context.Background(), client.FeedPersonal, 0)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Contains(t, err.Error(), "load feed")
}

func TestPostAndUser_RejectInvalidIDs(t *testing.T) {
	fc := &fakeClient{}
	svc := NewFeedService(fc)

	_, err := svc.Post(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidID)
	_, err = svc.User(context.Background(), -1)
	require.ErrorIs(t, err, ErrInvalidID)
	assert.Zero(t, fc.LastID, "client must not be called")
}

func TestPostUserProfile(t *testing.T) {
	fc := &fakeClient{
		PostRet:    &client.Post{ID: 5, Content: "full text"},
		UserRet:    &client.User{ID: 7, Username: "bob"},
		ProfileRet: &client.User{ID: 1, Username: "alice"},
	}
	svc := NewFeedService(fc)
	ctx := context.Background()

	p, err := svc.Post(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "full text", p.Content)

	u, err := svc.User(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
	assert.Equal(t, int64(7), fc.LastID)

	me, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
}

func TestPost_NotFound(t *testing.T) {
	fc := &fakeClient{ReadErr: &client.APIError{Status: http.StatusNotFound}}
	svc := NewFeedService(fc)

	_, err := svc.Post(context.Background(), 9)
	require.ErrorIs(t, err, client.ErrNotFound)
}
