package ui

import "github.com/mattn/go-isatty"

type fdFile interface {
	Fd() uintptr
}

// IsTerminal reports whether v is a file attached to an interactive
// terminal.
func IsTerminal(v any) bool {
	f, ok := v.(fdFile)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
