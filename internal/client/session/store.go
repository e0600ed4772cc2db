package session

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/communityfeed/internal/client/storage"
	"github.com/dmitrijs2005/communityfeed/internal/common"
	"github.com/dmitrijs2005/communityfeed/internal/logging"
)

// Store holds the current session and writes every change through to
// persistent storage. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	current    *Session
	generation uint64

	persistent storage.Store
	key        string
	log        logging.Logger

	obsMu     sync.Mutex
	observers []func(*Session)

	// deliverMu serializes observer calls; delivered is the newest
	// generation handed to observers.
	deliverMu sync.Mutex
	delivered uint64
}

// NewStore rehydrates the session persisted in p. A missing, unreadable or
// malformed snapshot yields an unauthenticated store; it is never an error.
func NewStore(ctx context.Context, p storage.Store, log logging.Logger) *Store {
	s := &Store{
		persistent: p,
		key:        common.SessionStorageKey,
		log:        logging.OrNop(log).With("component", "session"),
	}
	s.current = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) *Session {
	raw, ok, err := s.persistent.Get(ctx, s.key)
	if err != nil {
		s.log.Warn(ctx, "stored session unreadable, starting unauthenticated", "error", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var stored Session
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Warn(ctx, "stored session malformed, starting unauthenticated", "error", err)
		return nil
	}
	if stored.AccessToken == "" {
		return nil
	}

	hydrated := Hydrate(stored)
	s.log.Debug(ctx, "session restored", "user", hydrated.Username, "user_id", hydrated.UserID)
	return hydrated.Clone()
}

// Current returns a copy of the present session, or nil.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// AccessToken returns the current access token, or "" when unauthenticated.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}

// Generation increases on every Replace and Clear.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Snapshot returns the current session together with its generation, read
// atomically. Lifecycle operations pass the generation to ReplaceIf.
func (s *Store) Snapshot() (*Session, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone(), s.generation
}

// Replace installs next, persists it and notifies observers. A persistence
// failure is returned but the in-memory session stays installed. The write
// to storage is not cut short by ctx cancellation.
func (s *Store) Replace(ctx context.Context, next Session) error {
	return s.replace(ctx, next, false, 0)
}

// ReplaceIf is Replace guarded by the generation observed before the caller
// started its work. If anything replaced or cleared the session since then,
// next is discarded and common.ErrStaleSession is returned.
func (s *Store) ReplaceIf(ctx context.Context, generation uint64, next Session) error {
	return s.replace(ctx, next, true, generation)
}

func (s *Store) replace(ctx context.Context, next Session, guarded bool, generation uint64) error {
	if next.AccessToken == "" {
		return common.ErrInvalidSession
	}
	installed := next.Clone()

	s.mu.Lock()
	if guarded && s.generation != generation {
		s.mu.Unlock()
		s.log.Warn(ctx, "discarding stale session update", "expected_generation", generation)
		return common.ErrStaleSession
	}
	s.current = installed
	s.generation++
	gen := s.generation
	err := s.persist(context.WithoutCancel(ctx), installed)
	s.mu.Unlock()

	s.notify(installed, gen)
	return err
}

// Clear drops the session, removes the persisted snapshot and notifies
// observers. Like Replace, the removal ignores ctx cancellation so a cleared
// session cannot come back on the next start.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.generation++
	gen := s.generation
	err := s.persistent.Remove(context.WithoutCancel(ctx), s.key)
	s.mu.Unlock()

	if err != nil {
		s.log.Error(ctx, "failed to remove persisted session", "error", err)
		err = fmt.Errorf("remove session: %w", err)
	}
	s.notify(nil, gen)
	return err
}

// persist must be called with mu held so storage order matches memory order.
func (s *Store) persist(ctx context.Context, v *Session) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.persistent.Set(ctx, s.key, string(raw)); err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err)
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Subscribe registers fn to be called synchronously after every Replace and
// Clear with a copy of the new state. Observers are called one at a time and
// never see an older state after a newer one. fn must not write to the store.
func (s *Store) Subscribe(fn func(*Session)) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, fn)
}

// notify delivers the state installed at generation gen. A writer that lost
// the race to a newer one skips delivery.
func (s *Store) notify(v *Session, gen uint64) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if gen <= s.delivered {
		return
	}
	s.delivered = gen

	s.obsMu.Lock()
	observers := slices.Clone(s.observers)
	s.obsMu.Unlock()

	for _, fn := range observers {
		fn(v.Clone())
	}
}
