package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal seams, replaced in tests.
var (
	stdinFD      = func() int { return int(os.Stdin.Fd()) }
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// promptLine writes "label: " to w and returns the next line from r with
// surrounding whitespace removed. A final line without a newline still
// counts; EOF with nothing read is returned as io.EOF.
func promptLine(r *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret asks for a password. On a terminal it reads without echo;
// when stdin is piped it falls back to the next line of r so scripted
// logins work. The caller should wipe the result.
func promptSecret(r *bufio.Reader, w io.Writer, label string) ([]byte, error) {
	fd := stdinFD()
	if !isTerminal(fd) {
		line, err := promptLine(r, w, label)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	if len(pw) == 0 {
		return nil, errors.New("password must not be empty")
	}
	return pw, nil
}
