package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/communityfeed/internal/client/client"
)

var ErrInvalidID = errors.New("invalid id")

// FeedService reads posts and profiles for the views. Every call goes out
// through the API client, so the access token is attached by its transport.
type FeedService interface {
	Feed(ctx context.Context, mode client.FeedMode, page int) ([]client.PostSummary, *client.Page[client.PostSummary], error)
	Post(ctx context.Context, id int64) (*client.Post, error)
	User(ctx context.Context, id int64) (*client.User, error)
	Profile(ctx context.Context) (*client.User, error)
}

type feedService struct {
	client client.Client
}

func NewFeedService(c client.Client) FeedService {
	return &feedService{client: c}
}

// Feed returns the posts of one listing page together with its envelope.
// A missing content array is an empty page.
func (s *feedService) Feed(ctx context.Context, mode client.FeedMode, page int) ([]client.PostSummary, *client.Page[client.PostSummary], error) {
	if page < 0 {
		page = 0
	}

	p, err := s.client.Posts(ctx, mode, page)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", mode, err)
	}

	posts := p.Content
	if posts == nil {
		posts = []client.PostSummary{}
	}
	return posts, p, nil
}

func (s *feedService) Post(ctx context.Context, id int64) (*client.Post, error) {
	if id <= 0 {
		return nil, fmt.Errorf("post %d: %w", id, ErrInvalidID)
	}
	p, err := s.client.Post(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load post %d: %w", id, err)
	}
	return p, nil
}

func (s *feedService) User(ctx context.Context, id int64) (*client.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("user %d: %w", id, ErrInvalidID)
	}
	u, err := s.client.User(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return u, nil
}

func (s *feedService) Profile(ctx context.Context) (*client.User, error) {
	u, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return u, nil
}
