package client

import (
	"context"
)

// Client is the REST API surface the client consumes.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	Posts(ctx context.Context, mode FeedMode, page int) (*Page[PostSummary], error)
	Post(ctx context.Context, id int64) (*Post, error)
	User(ctx context.Context, id int64) (*User, error)
	CurrentUser(ctx context.Context) (*User, error)
}
