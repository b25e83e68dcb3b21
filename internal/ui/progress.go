package ui

import (
	"io"

	"github.com/agentx-labs/reactforge/internal/pipeline"
)

// Progress reports pipeline steps through a Spinner. It implements
// pipeline.Observer.
type Progress struct {
	w       io.Writer
	animate bool
	spinner Spinner
}

// NewProgress returns a Progress writing to w.
func NewProgress(w io.Writer, animate bool) *Progress {
	return &Progress{w: w, animate: animate}
}

func (p *Progress) StepStarted(_, _ int, step pipeline.Step) {
	if p.spinner == nil {
		p.spinner = NewSpinner(p.w, step.Name(), p.animate)
		return
	}
	p.spinner.SetTitle(step.Name())
}

func (p *Progress) StepFinished(_, _ int, _ pipeline.Step, err error) {
	if err != nil {
		p.Done()
	}
}

// Done stops the spinner. It is safe to call more than once.
func (p *Progress) Done() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}
