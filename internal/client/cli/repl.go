package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Open(ctx context.Context, path string) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on EOF, on "exit" or "quit", or once ctx is done.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts:
//
//	  - help          : show available commands
//	  - login         : authenticate
//	  - register      : create an account
//	  - open <path>   : navigate, e.g. open /posts/5
//	  - feed | global | trending | profile: shortcuts for open
//	  - whoami        : show the current identity
//	  - refresh       : rotate session tokens
//	  - logout        : log out
//	  - exit | quit   : leave the program
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printFn(fmt.Sprintf("feed %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: open <path>, feed, global, trending, profile, whoami, refresh, logout, exit")
			} else {
				printlnFn("Available commands: login, register, open <path>, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "register":
			cmdErr = a.Register(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			cmdErr = a.Open(ctx, args[0])

		case "feed", "global", "trending", "profile":
			cmdErr = a.Open(ctx, "/"+cmd)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
	}
}
