package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/communityfeed/internal/client/services"
	"github.com/dmitrijs2005/communityfeed/internal/client/session"
	"github.com/dmitrijs2005/communityfeed/internal/common"
	"github.com/dmitrijs2005/communityfeed/internal/logging"
)

// SessionReader is the read side of the session store.
type SessionReader interface {
	Current() *session.Session
	IsAuthenticated() bool
}

// IntentConsumer yields the destination a login should resume at.
type IntentConsumer interface {
	Consume(ctx context.Context, fallback string) string
}

// Navigator renders paths and remembers the last one shown.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
	Current() string
}

// Options carries the collaborators of an App. In and Out default to the
// process's stdin and stdout.
type Options struct {
	Auth        services.AuthService
	Session     SessionReader
	Intents     IntentConsumer
	Navigator   Navigator
	LandingPath string
	In          io.Reader
	Out         io.Writer
	Log         logging.Logger
}

type App struct {
	authService services.AuthService
	session     SessionReader
	intents     IntentConsumer
	nav         Navigator
	landing     string
	reader      *bufio.Reader
	out         io.Writer
	log         logging.Logger
}

func NewApp(o Options) *App {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.LandingPath == "" {
		o.LandingPath = common.LandingPath
	}
	return &App{
		authService: o.Auth,
		session:     o.Session,
		intents:     o.Intents,
		nav:         o.Navigator,
		landing:     o.LandingPath,
		reader:      bufio.NewReader(o.In),
		out:         o.Out,
		log:         logging.OrNop(o.Log).With("component", "cli"),
	}
}

// Run opens the landing path and serves the REPL until the user exits, input
// ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to communityfeed (type 'help' for commands)")

	if err := a.nav.Navigate(ctx, a.landing); err != nil {
		a.log.Error(ctx, "initial navigation failed", "error", err)
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status is the prompt decoration: the trimmed username, or "Profile" when
// the session has none, followed by the current path.
func (a *App) status() string {
	path := a.nav.Current()

	cur := a.session.Current()
	if cur == nil {
		return path
	}

	name := strings.TrimSpace(cur.Username)
	if name == "" {
		name = "Profile"
	}
	if path == "" {
		return fmt.Sprintf("(%s)", name)
	}
	return fmt.Sprintf("(%s) %s", name, path)
}

// Open navigates to path.
func (a *App) Open(ctx context.Context, path string) error {
	if err := a.nav.Navigate(ctx, path); err != nil {
		fmt.Fprintf(a.out, "Cannot open %s: %v\n", path, err)
		return err
	}
	return nil
}
