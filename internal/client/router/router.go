// Package router maps application paths to terminal views. Protected routes
// sit behind a Guard; navigation follows the redirects it issues.
package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/communityfeed/internal/common"
	"github.com/dmitrijs2005/communityfeed/internal/logging"
)

const maxRedirects = 8

var ErrTooManyRedirects = errors.New("too many redirects")

// Screens are the views behind each route. A nil screen renders nothing.
type Screens struct {
	Login    http.Handler
	Register http.Handler
	Feed     http.Handler
	Global   http.Handler
	Trending http.Handler
	Post     http.Handler
	Profile  http.Handler
	User     http.Handler
}

// Router renders the view for a path to out, following guard and fallback
// redirects. It is safe for concurrent use, though navigations are serialized.
type Router struct {
	mu      sync.Mutex
	mux     *chi.Mux
	out     io.Writer
	current string
	log     logging.Logger
}

func New(guard *Guard, screens Screens, landing string, out io.Writer, log logging.Logger) *Router {
	if landing == "" {
		landing = common.LandingPath
	}

	mux := chi.NewRouter()
	mux.Use(middleware.StripSlashes)

	mux.Get(guard.loginPath, orBlank(screens.Login))
	mux.Get(common.RegisterPath, orBlank(screens.Register))

	mux.Group(func(r chi.Router) {
		r.Use(guard.Middleware)
		r.Get("/", redirectTo(landing))
		r.Get("/feed", orBlank(screens.Feed))
		r.Get("/global", orBlank(screens.Global))
		r.Get("/trending", orBlank(screens.Trending))
		r.Get("/posts/{id}", orBlank(screens.Post))
		r.Get("/profile", orBlank(screens.Profile))
		r.Get("/users/{id}", orBlank(screens.User))
	})

	mux.NotFound(redirectTo(landing))

	return &Router{
		mux: mux,
		out: out,
		log: logging.OrNop(log).With("component", "router"),
	}
}

// Navigate renders path, following at most maxRedirects redirects. The path
// finally rendered becomes Current.
func (rt *Router) Navigate(ctx context.Context, path string) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for hop := 0; hop <= maxRedirects; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return fmt.Errorf("navigate %q: %w", path, err)
		}

		s := newScreen()
		rt.mux.ServeHTTP(s, req)

		if loc, ok := s.redirect(); ok {
			rt.log.Debug(ctx, "redirect", "from", path, "to", loc)
			path = loc
			continue
		}

		rt.current = path
		if _, err := rt.out.Write(s.body.Bytes()); err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}
		if s.statusCode() >= http.StatusInternalServerError {
			return fmt.Errorf("render %s: status %d", path, s.statusCode())
		}
		return nil
	}
	return fmt.Errorf("navigate %q: %w", path, ErrTooManyRedirects)
}

// Current is the path most recently rendered, "" before the first navigation.
func (rt *Router) Current() string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.current
}

func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusSeeOther)
	}
}

func orBlank(h http.Handler) http.HandlerFunc {
	if h == nil {
		return func(http.ResponseWriter, *http.Request) {}
	}
	return h.ServeHTTP
}
