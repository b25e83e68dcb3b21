package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	successMark = "✅"
	failureMark = "❌"
	hintMark    = "➡️"
)

// Printer writes result lines. Colors are applied only when the target
// writer supports them.
type Printer struct {
	out io.Writer
	err io.Writer

	success lipgloss.Style
	failure lipgloss.Style
	hint    lipgloss.Style
	command lipgloss.Style
}

// NewPrinter returns a Printer writing results to out and failures to errOut.
func NewPrinter(out, errOut io.Writer) *Printer {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errOut)
	return &Printer{
		out:     out,
		err:     errOut,
		success: outR.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		failure: errR.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		hint:    outR.NewStyle().Foreground(lipgloss.Color("12")),
		command: outR.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Success prints a line prefixed with a check mark.
func (p *Printer) Success(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", successMark, p.success.Render(fmt.Sprintf(format, args...)))
}

// Failure prints a line prefixed with a cross to the error writer.
func (p *Printer) Failure(format string, args ...any) {
	_, _ = fmt.Fprintf(p.err, "%s %s\n", failureMark, p.failure.Render(fmt.Sprintf(format, args...)))
}

// Warning prints an unstyled note to the error writer.
func (p *Printer) Warning(format string, args ...any) {
	_, _ = fmt.Fprintf(p.err, "warning: %s\n", fmt.Sprintf(format, args...))
}

// GetStarted prints the commands that start the dev server.
func (p *Printer) GetStarted(dir string, commands ...string) {
	_, _ = fmt.Fprintf(p.out, "\n%s  %s\n\n", hintMark, p.hint.Render("To get started:"))
	_, _ = fmt.Fprintf(p.out, "  %s\n", p.command.Render("cd "+dir))
	for _, c := range commands {
		_, _ = fmt.Fprintf(p.out, "  %s\n", p.command.Render(c))
	}
	_, _ = fmt.Fprintln(p.out)
}
