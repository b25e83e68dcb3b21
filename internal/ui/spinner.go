package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner shows the title of the work in progress.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// brailleDots are the MiniDot frames at a 100ms tick.
var brailleDots = spinner.Spinner{
	Frames: spinner.MiniDot.Frames,
	FPS:    100 * time.Millisecond,
}

// NewSpinner starts a spinner on w. When animate is false, or w is not a
// terminal, each title is printed on its own line instead.
func NewSpinner(w io.Writer, title string, animate bool) Spinner {
	if !animate || !IsTerminal(w) {
		return newLineSpinner(w, title)
	}
	return newAnimatedSpinner(w, title)
}

// --- animated ---

type titleMsg string

type stopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(r *lipgloss.Renderer, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(brailleDots))
	s.Style = r.NewStyle().Foreground(lipgloss.Color("14"))
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case titleMsg:
		m.title = string(msg)
		return m, nil
	case stopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

type animatedSpinner struct {
	program *tea.Program
	once    sync.Once
}

// The program reads no input and leaves signal handling to the caller, so
// Ctrl-C cancels the command context instead of the spinner.
func newAnimatedSpinner(w io.Writer, title string) *animatedSpinner {
	m := newSpinnerModel(lipgloss.NewRenderer(w), title)
	p := tea.NewProgram(m,
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	go func() {
		_, _ = p.Run()
	}()
	return &animatedSpinner{program: p}
}

func (s *animatedSpinner) SetTitle(title string) {
	s.program.Send(titleMsg(title))
}

// Stop clears the spinner line and waits for the program to exit.
func (s *animatedSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(stopMsg{})
		s.program.Wait()
	})
}

// --- headless ---

type lineSpinner struct {
	mu      sync.Mutex
	w       io.Writer
	title   string
	stopped bool
}

func newLineSpinner(w io.Writer, title string) *lineSpinner {
	s := &lineSpinner{w: w}
	s.SetTitle(title)
	return s
}

func (s *lineSpinner) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || title == "" || title == s.title {
		return
	}
	s.title = title
	_, _ = fmt.Fprintf(s.w, "%s\n", title)
}

func (s *lineSpinner) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}
