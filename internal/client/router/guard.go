package router

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/communityfeed/internal/common"
	"github.com/dmitrijs2005/communityfeed/internal/logging"
)

// Authenticator reports whether a session is present.
type Authenticator interface {
	IsAuthenticated() bool
}

// IntentRecorder remembers the path a denied navigation was heading for.
type IntentRecorder interface {
	Set(ctx context.Context, url string)
}

// Decision is the outcome of a guard check: either Allow, or a Redirect path.
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard gates protected routes on the presence of a session.
type Guard struct {
	auth      Authenticator
	intents   IntentRecorder
	loginPath string
	log       logging.Logger
}

func NewGuard(auth Authenticator, intents IntentRecorder, loginPath string, log logging.Logger) *Guard {
	if loginPath == "" {
		loginPath = common.LoginPath
	}
	return &Guard{
		auth:      auth,
		intents:   intents,
		loginPath: loginPath,
		log:       logging.OrNop(log).With("component", "guard"),
	}
}

// Check allows attempted when authenticated. Otherwise it records attempted
// as the post-login destination before answering with a redirect to login.
func (g *Guard) Check(ctx context.Context, attempted string) Decision {
	if g.auth.IsAuthenticated() {
		return Decision{Allow: true}
	}

	g.intents.Set(ctx, attempted)
	g.log.Debug(ctx, "navigation denied", "path", attempted, "redirect", g.loginPath)
	return Decision{Redirect: g.loginPath}
}

// Middleware runs Check for every request and answers denied ones with a
// 303 to the login path.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := g.Check(r.Context(), r.URL.RequestURI())
		if !d.Allow {
			http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
