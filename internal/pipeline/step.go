package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const killGrace = 2 * time.Second

// Env is the state threaded through a run.
type Env struct {
	// WorkDir is the directory commands run in and actions operate on.
	WorkDir string

	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger

	// CommandTimeout bounds each external command. Zero means no limit.
	CommandTimeout time.Duration
}

// Step is one unit of work in a pipeline.
type Step interface {
	Name() string
	Run(ctx context.Context, env *Env) error
}

// CommandStep runs an external program in the current work directory.
type CommandStep struct {
	Program string
	Args    []string
	Label   string        // shown instead of the command line when set
	Timeout time.Duration // overrides Env.CommandTimeout when non-zero
}

// Command is shorthand for a CommandStep.
func Command(program string, args ...string) *CommandStep {
	return &CommandStep{Program: program, Args: args}
}

// WithLabel sets the display name of the step.
func (c *CommandStep) WithLabel(label string) *CommandStep {
	c.Label = label
	return c
}

func (c *CommandStep) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return strings.TrimSpace(c.Program + " " + strings.Join(c.Args, " "))
}

// Run executes the command with stdin closed. Output goes to the env writers
// and stderr is also kept for the error message.
func (c *CommandStep) Run(ctx context.Context, env *Env) error {
	bin, err := exec.LookPath(c.Program)
	if err != nil {
		return &CommandError{Program: c.Program, Args: c.Args, ExitCode: -1, Err: err}
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = env.CommandTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = env.WorkDir
	if timeout > 0 {
		// Children that outlive a killed process would otherwise hold the
		// output pipes open.
		cmd.WaitDelay = killGrace
	}

	var stderrBuf bytes.Buffer
	cmd.Stdout = writerOrDiscard(env.Stdout)
	cmd.Stderr = io.MultiWriter(writerOrDiscard(env.Stderr), &stderrBuf)

	logger(env).Debug("running command",
		zap.String("program", bin),
		zap.Strings("args", c.Args),
		zap.String("dir", env.WorkDir),
	)

	err = cmd.Run()
	if err == nil {
		return nil
	}

	cmdErr := &CommandError{Program: c.Program, Args: c.Args, ExitCode: -1, Stderr: stderrBuf.String(), Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		cmdErr.Err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return cmdErr
}

// ChangeDirectoryStep moves the run into Dir, resolved against the current
// work directory. Dir must already exist.
type ChangeDirectoryStep struct {
	Dir string
}

// ChangeDirectory is shorthand for a ChangeDirectoryStep.
func ChangeDirectory(dir string) *ChangeDirectoryStep {
	return &ChangeDirectoryStep{Dir: dir}
}

func (c *ChangeDirectoryStep) Name() string { return "cd " + c.Dir }

func (c *ChangeDirectoryStep) Run(_ context.Context, env *Env) error {
	target := c.Dir
	if !filepath.IsAbs(target) {
		target = filepath.Join(env.WorkDir, target)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("entering %s: %w", target, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("entering %s: not a directory", target)
	}
	logger(env).Debug("changing work directory", zap.String("from", env.WorkDir), zap.String("to", target))
	env.WorkDir = target
	return nil
}

// ActionStep runs in-process work against the current work directory.
type ActionStep struct {
	Label string
	Fn    func(ctx context.Context, workDir string) error
}

// Action is shorthand for an ActionStep.
func Action(label string, fn func(ctx context.Context, workDir string) error) *ActionStep {
	return &ActionStep{Label: label, Fn: fn}
}

func (a *ActionStep) Name() string { return a.Label }

func (a *ActionStep) Run(ctx context.Context, env *Env) error {
	return a.Fn(ctx, env.WorkDir)
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func logger(env *Env) *zap.Logger {
	if env.Logger == nil {
		return zap.NewNop()
	}
	return env.Logger
}
