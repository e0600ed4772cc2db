// Package services contains application services for the communityfeed client.
// This file defines the session lifecycle: login, register, token refresh and
// logout, all writing through the shared session store.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/communityfeed/internal/client/client"
	"github.com/dmitrijs2005/communityfeed/internal/client/session"
	"github.com/dmitrijs2005/communityfeed/internal/common"
	"github.com/dmitrijs2005/communityfeed/internal/logging"
)

const defaultLogoutTimeout = 5 * time.Second

// AuthService defines the session lifecycle operations for the CLI.
//
// Contract:
//   - Login/Register: authenticate against the server and install the
//     resulting session. On failure the current state is left as it was.
//   - Refresh: rotate tokens using the stored refresh token. Concurrent calls
//     share one request. Failure never logs the user out.
//   - Logout: best-effort server invalidation, then unconditionally clear the
//     session and any pending redirect and navigate to login.
//
// A response that arrives after the session was changed by someone else is
// discarded with common.ErrStaleSession.
type AuthService interface {
	Login(ctx context.Context, usernameOrEmail, password string) (*session.Session, error)
	Register(ctx context.Context, details RegisterDetails) (*session.Session, error)
	Refresh(ctx context.Context) (*session.Session, error)
	Logout(ctx context.Context) error
}

// RegisterDetails is the data a new account is created with.
type RegisterDetails struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Navigator moves the user to a path.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// IntentClearer drops a pending post-login destination.
type IntentClearer interface {
	Clear(ctx context.Context)
}

type AuthOption func(*authService)

// WithLogoutTimeout bounds the server call made by Logout (default 5s).
func WithLogoutTimeout(d time.Duration) AuthOption {
	return func(a *authService) { a.logoutTimeout = d }
}

// WithLoginPath sets where Logout navigates (default common.LoginPath).
func WithLoginPath(p string) AuthOption {
	return func(a *authService) { a.loginPath = p }
}

type authService struct {
	client    client.Client
	store     *session.Store
	intents   IntentClearer
	navigator Navigator
	log       logging.Logger

	loginPath     string
	logoutTimeout time.Duration
	refreshes     singleflight.Group
}

// NewAuthService binds the lifecycle operations to the API client, the
// session store, the redirect tracker and the navigator.
func NewAuthService(c client.Client, store *session.Store, intents IntentClearer, nav Navigator, log logging.Logger, opts ...AuthOption) AuthService {
	a := &authService{
		client:        c,
		store:         store,
		intents:       intents,
		navigator:     nav,
		log:           logging.OrNop(log).With("component", "auth"),
		loginPath:     common.LoginPath,
		logoutTimeout: defaultLogoutTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *authService) Login(ctx context.Context, usernameOrEmail, password string) (*session.Session, error) {
	_, gen := a.store.Snapshot()

	resp, err := a.client.Login(ctx, client.LoginRequest{UsernameOrEmail: usernameOrEmail, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	s, err := a.install(ctx, gen, fromResponse(resp))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	a.log.Info(ctx, "logged in", "user", s.Username, "user_id", s.UserID)
	return s, nil
}

func (a *authService) Register(ctx context.Context, d RegisterDetails) (*session.Session, error) {
	_, gen := a.store.Snapshot()

	resp, err := a.client.Register(ctx, client.RegisterRequest{
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		FirstName: d.FirstName,
		LastName:  d.LastName,
	})
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}

	s, err := a.install(ctx, gen, fromResponse(resp))
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	a.log.Info(ctx, "registered", "user", s.Username, "user_id", s.UserID)
	return s, nil
}

// Refresh is single-flighted: callers arriving while a refresh is in flight
// wait for it and share its result. The first caller's ctx governs the request.
func (a *authService) Refresh(ctx context.Context) (*session.Session, error) {
	v, err, shared := a.refreshes.Do("refresh", func() (any, error) {
		return a.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		a.log.Debug(ctx, "joined in-flight refresh")
	}
	return v.(*session.Session).Clone(), nil
}

func (a *authService) refresh(ctx context.Context) (*session.Session, error) {
	cur, gen := a.store.Snapshot()
	if cur == nil || cur.RefreshToken == "" {
		return nil, common.ErrMissingRefreshToken
	}

	resp, err := a.client.Refresh(ctx, cur.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh error: %w", err)
	}

	next := fromResponse(resp)
	if next.RefreshToken == "" {
		next.RefreshToken = cur.RefreshToken
	}
	if next.UserID == 0 {
		next.UserID = cur.UserID
	}
	if next.Username == "" {
		next.Username = cur.Username
	}
	if next.Email == "" {
		next.Email = cur.Email
	}
	if resp.Roles == nil {
		next.Roles = cur.Roles
	}

	s, err := a.install(ctx, gen, next)
	if err != nil {
		return nil, fmt.Errorf("refresh error: %w", err)
	}
	a.log.Debug(ctx, "tokens refreshed", "user", s.Username)
	return s, nil
}

// Logout always ends unauthenticated at the login path. Only local failures
// are returned; a failed server call is logged and otherwise ignored.
func (a *authService) Logout(ctx context.Context) error {
	if cur := a.store.Current(); cur != nil && cur.RefreshToken != "" {
		a.invalidate(ctx, cur.RefreshToken)
	}

	var errs []error
	if err := a.store.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	a.intents.Clear(ctx)
	if err := a.navigator.Navigate(ctx, a.loginPath); err != nil {
		errs = append(errs, fmt.Errorf("navigate to login: %w", err))
	}

	a.log.Info(ctx, "logged out")
	return errors.Join(errs...)
}

func (a *authService) invalidate(ctx context.Context, refreshToken string) {
	ctx, cancel := context.WithTimeout(ctx, a.logoutTimeout)
	defer cancel()

	if err := a.client.Logout(ctx, refreshToken); err != nil {
		a.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
	}
}

// install applies next with ReplaceIf. A persistence failure keeps the
// in-memory session, so it is logged and the operation still succeeds.
func (a *authService) install(ctx context.Context, gen uint64, next session.Session) (*session.Session, error) {
	err := a.store.ReplaceIf(ctx, gen, next)
	switch {
	case errors.Is(err, common.ErrStaleSession), errors.Is(err, common.ErrInvalidSession):
		return nil, err
	case err != nil:
		a.log.Warn(ctx, "session active but not persisted", "error", err)
	}
	return next.Clone(), nil
}

func fromResponse(r *client.AuthResponse) session.Session {
	return session.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		UserID:       r.UserID,
		Username:     r.Username,
		Email:        r.Email,
		Roles:        r.Roles,
	}
}
