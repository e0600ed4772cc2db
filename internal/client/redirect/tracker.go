// Package redirect remembers the one path a user tried to reach before being
// sent to login, so navigation can resume there afterwards.
package redirect

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/communityfeed/internal/client/storage"
	"github.com/dmitrijs2005/communityfeed/internal/common"
	"github.com/dmitrijs2005/communityfeed/internal/logging"
)

// Tracker holds the pending post-login destination in memory and mirrors it
// into session-scoped storage, so a recreated tracker still finds it.
// Storage failures are logged and otherwise ignored.
type Tracker struct {
	mu        sync.Mutex
	pending   string
	store     storage.Store
	key       string
	loginPath string
	log       logging.Logger
}

func NewTracker(sessionScoped storage.Store, loginPath string, log logging.Logger) *Tracker {
	if loginPath == "" {
		loginPath = common.LoginPath
	}
	return &Tracker{
		store:     sessionScoped,
		key:       common.RedirectStorageKey,
		loginPath: loginPath,
		log:       logging.OrNop(log).With("component", "redirect"),
	}
}

// Set records url as the pending destination. Empty input and the login
// path itself are ignored.
func (t *Tracker) Set(ctx context.Context, url string) {
	url = strings.TrimSpace(url)
	if url == "" || t.isLoginPath(url) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending = url
	if err := t.store.Set(ctx, t.key, url); err != nil {
		t.log.Warn(ctx, "failed to store redirect intent", "error", err)
	}
}

// Consume returns the pending destination, or fallback when there is none,
// and always leaves the tracker empty.
func (t *Tracker) Consume(ctx context.Context, fallback string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	target := t.pending
	if target == "" {
		stored, ok, err := t.store.Get(ctx, t.key)
		if err != nil {
			t.log.Warn(ctx, "failed to read redirect intent", "error", err)
		}
		if ok {
			target = stored
		}
	}

	t.clear(ctx)

	if target == "" {
		return fallback
	}
	return target
}

// Clear forgets any pending destination.
func (t *Tracker) Clear(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clear(ctx)
}

func (t *Tracker) clear(ctx context.Context) {
	t.pending = ""
	if err := t.store.Remove(ctx, t.key); err != nil {
		t.log.Warn(ctx, "failed to remove redirect intent", "error", err)
	}
}

// isLoginPath matches the login path with or without a trailing slash,
// query or fragment.
func (t *Tracker) isLoginPath(url string) bool {
	rest, ok := strings.CutPrefix(url, t.loginPath)
	if !ok {
		return false
	}
	return rest == "" || strings.ContainsAny(rest[:1], "/?#")
}
