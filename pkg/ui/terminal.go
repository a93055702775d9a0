package ui

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin and stderr are both attached to a
// terminal, which an interactive picker needs.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}
