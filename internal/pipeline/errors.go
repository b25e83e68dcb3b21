package pipeline

import (
	"fmt"
	"strings"
)

// CommandError reports an external command that exited non-zero or could
// not be started.
type CommandError struct {
	Program  string
	Args     []string
	ExitCode int    // -1 when the process never ran
	Stderr   string // captured standard error, trimmed
	Err      error
}

func (e *CommandError) Error() string {
	cmdline := strings.TrimSpace(e.Program + " " + strings.Join(e.Args, " "))
	var msg string
	if e.ExitCode < 0 {
		msg = fmt.Sprintf("running %s: %v", cmdline, e.Err)
	} else {
		msg = fmt.Sprintf("%s failed with exit code %d", cmdline, e.ExitCode)
	}
	if tail := lastLines(e.Stderr, 5); tail != "" {
		msg += "\n" + tail
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// StepError is the terminal failure of a run: the index and name of the
// step that failed and its cause.
type StepError struct {
	Index int
	Name  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Name, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// lastLines returns at most n trailing non-empty lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
