package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/communityfeed/internal/client/client"
	"github.com/dmitrijs2005/communityfeed/internal/client/services"
)

// askLine and askSecret are swapped in tests.
var (
	askLine   = promptLine
	askSecret = promptSecret
)

// Login prompts for credentials and authenticates. On success navigation
// resumes at the path that sent the user to login, or at the landing path.
// Server messages are printed; only I/O and navigation errors are returned.
func (a *App) Login(ctx context.Context) error {
	user, err := askLine(a.reader, a.out, "Username or email")
	if err != nil {
		return err
	}

	password, err := askSecret(a.reader, a.out, "Password")
	if err != nil {
		return err
	}
	defer clear(password)

	s, err := a.authService.Login(ctx, user, string(password))
	if err != nil {
		a.log.Debug(ctx, "login failed", "error", err)
		a.printFailure(err, "Login failed")
		return nil
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", s.Username)
	return a.resume(ctx)
}

// Register prompts for the new account's details, creates it and continues
// like Login.
func (a *App) Register(ctx context.Context) error {
	var d services.RegisterDetails
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Username", &d.Username},
		{"Email", &d.Email},
		{"First name (optional)", &d.FirstName},
		{"Last name (optional)", &d.LastName},
	}
	for _, f := range fields {
		v, err := askLine(a.reader, a.out, f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := askSecret(a.reader, a.out, "Password")
	if err != nil {
		return err
	}
	defer clear(password)
	d.Password = string(password)

	s, err := a.authService.Register(ctx, d)
	if err != nil {
		a.log.Debug(ctx, "registration failed", "error", err)
		a.printFailure(err, "Registration failed")
		return nil
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", s.Username)
	return a.resume(ctx)
}

// Logout ends the session. The service navigates to login itself.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logged out, but local cleanup failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Refresh rotates the session tokens.
func (a *App) Refresh(ctx context.Context) error {
	if _, err := a.authService.Refresh(ctx); err != nil {
		a.printFailure(err, "Refresh failed")
		return nil
	}
	fmt.Fprintln(a.out, "Session refreshed")
	return nil
}

// WhoAmI prints the identity carried by the current session.
func (a *App) WhoAmI(context.Context) error {
	cur := a.session.Current()
	if cur == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "%s <%s> id=%d\n", cur.Username, cur.Email, cur.UserID)
	if len(cur.Roles) > 0 {
		fmt.Fprintf(a.out, "roles: %s\n", strings.Join(cur.Roles, ", "))
	}
	return nil
}

func (a *App) resume(ctx context.Context) error {
	target := a.intents.Consume(ctx, a.landing)
	return a.Open(ctx, target)
}

// printFailure shows the server's detail, or fallback, then any field errors
// sorted by field name.
func (a *App) printFailure(err error, fallback string) {
	fmt.Fprintln(a.out, client.UserMessage(err, fallback))

	fieldErrs := client.FieldErrors(err)
	for _, name := range slices.Sorted(maps.Keys(fieldErrs)) {
		fmt.Fprintf(a.out, "  %s: %s\n", name, fieldErrs[name])
	}
}
