package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg updates the completed file count.
type ProgressMsg struct {
	Done    int
	Total   int
	Percent int
}

// ProgressDoneMsg ends the display. Result is shown on success.
type ProgressDoneMsg struct {
	Result string
	Err    error
}

// ProgressModel renders "<label> [NN%]" next to a spinner.
type ProgressModel struct {
	spinner   spinner.Model
	label     string
	percent   int
	finished  bool
	cancelled bool
	result    string
	err       error
}

// NewProgressModel creates a spinner labelled label.
func NewProgressModel(label string) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return ProgressModel{spinner: s, label: label}
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.percent = msg.Percent
		return m, nil

	case ProgressDoneMsg:
		m.finished = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	switch {
	case m.finished && m.err != nil:
		return Failure(m.err.Error()) + "\n"
	case m.finished:
		return Success(m.result) + "\n"
	case m.cancelled:
		return Failure(ErrCancelled.Error()) + "\n"
	}
	return fmt.Sprintf("%s %s [%d%%]", m.spinner.View(), m.label, m.percent)
}

// Percent returns the last reported completion.
func (m ProgressModel) Percent() int {
	return m.percent
}

// Finished reports whether the work completed, successfully or not.
func (m ProgressModel) Finished() bool {
	return m.finished
}

// Cancelled reports whether the user interrupted the display.
func (m ProgressModel) Cancelled() bool {
	return m.cancelled
}

// ShownError wraps an error the progress display has already printed.
type ShownError struct {
	Err error
}

func (e *ShownError) Error() string {
	return e.Err.Error()
}

func (e *ShownError) Unwrap() error {
	return e.Err
}

// Reporter forwards progress from the work function to the display.
type Reporter func(done, total, percent int)

// RunWithProgress runs work in the background while a spinner shows its
// progress. Ctrl+C cancels the context handed to work; the call still waits
// for work to return. success is the final line when work returns nil.
// Errors printed by the display come back as *ShownError.
func RunWithProgress(ctx context.Context, label, success string, work func(ctx context.Context, report Reporter) error) error {
	return runWithProgress(ctx, label, success, work, tea.WithOutput(os.Stderr))
}

func runWithProgress(ctx context.Context, label, success string, work func(ctx context.Context, report Reporter) error, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(NewProgressModel(label), opts...)

	errCh := make(chan error, 1)
	go func() {
		err := work(ctx, func(done, total, percent int) {
			program.Send(ProgressMsg{Done: done, Total: total, Percent: percent})
		})
		errCh <- err
		program.Send(ProgressDoneMsg{Result: success, Err: err})
	}()

	final, runErr := program.Run()
	cancel()
	workErr := <-errCh

	if runErr != nil {
		return fmt.Errorf("progress display failed: %w", runErr)
	}
	if m, ok := final.(ProgressModel); ok && m.Cancelled() && !m.Finished() {
		return &ShownError{Err: ErrCancelled}
	}
	if workErr != nil {
		return &ShownError{Err: workErr}
	}
	return nil
}
