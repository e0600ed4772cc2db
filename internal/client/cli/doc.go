// Package cli provides the interactive communityfeed command-line client.
//
// The client renders feed, post and profile views in the terminal. Every
// view lives at an application path; protected paths require a session and
// otherwise send the user to /login, remembering where they were heading.
// After login or registration navigation resumes there.
//
// Key features:
//   - Login / Register / Logout / token Refresh
//   - open <path> with feed, global, trending and profile shortcuts
//   - whoami for the identity held by the current session
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See Screens for the views and runREPL for the commands.
package cli
