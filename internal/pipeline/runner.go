package pipeline

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"
)

// Observer is notified as steps start and finish.
type Observer interface {
	StepStarted(index, total int, step Step)
	StepFinished(index, total int, step Step, err error)
}

// Runner executes steps in order and stops at the first failure.
type Runner struct {
	Observer Observer
	Logger   *zap.Logger

	// Stdout and Stderr receive command output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	CommandTimeout time.Duration
}

// Result is the outcome of a successful run.
type Result struct {
	Completed []string // names of the steps that ran
	WorkDir   string   // work directory after the last step
}

// Run executes steps starting in workDir. On failure it returns the partial
// Result together with a *StepError naming the failed step.
func (r *Runner) Run(ctx context.Context, workDir string, steps []Step) (*Result, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	env := &Env{
		WorkDir:        workDir,
		Stdout:         r.Stdout,
		Stderr:         r.Stderr,
		Logger:         log,
		CommandTimeout: r.CommandTimeout,
	}
	result := &Result{WorkDir: workDir}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, &StepError{Index: i, Name: step.Name(), Err: err}
		}

		if r.Observer != nil {
			r.Observer.StepStarted(i, len(steps), step)
		}
		start := time.Now()
		err := step.Run(ctx, env)
		if r.Observer != nil {
			r.Observer.StepFinished(i, len(steps), step, err)
		}

		result.WorkDir = env.WorkDir
		if err != nil {
			log.Debug("step failed", zap.Int("index", i), zap.String("step", step.Name()), zap.Error(err))
			return result, &StepError{Index: i, Name: step.Name(), Err: err}
		}

		log.Debug("step completed",
			zap.Int("index", i),
			zap.String("step", step.Name()),
			zap.Duration("elapsed", time.Since(start)),
		)
		result.Completed = append(result.Completed, step.Name())
	}

	return result, nil
}
