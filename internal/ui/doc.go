// Package ui holds the terminal surface of reactforge: the step spinner,
// the project name prompt, and the styled success and failure lines.
// Every component degrades to plain line output when the writer is not
// a terminal.
package ui
