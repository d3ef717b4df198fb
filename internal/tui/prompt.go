package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves a prompt with Esc or
// Ctrl+C, or interrupts the progress display.
var ErrCancelled = errors.New("cancelled by user")

// PathPrompt asks for a single folder path. Submitting an empty line
// accepts the default.
type PathPrompt struct {
	question  string
	def       string
	input     textinput.Model
	submitted bool
	cancelled bool
}

// NewPathPrompt creates a focused prompt.
func NewPathPrompt(question, def string) PathPrompt {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 1024
	ti.Width = 80
	ti.Focus()

	return PathPrompt{
		question: question,
		def:      def,
		input:    ti,
	}
}

// Init implements tea.Model.
func (p PathPrompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p PathPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			p.submitted = true
			p.input.Blur()
			return p, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			p.cancelled = true
			p.input.Blur()
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View implements tea.Model.
func (p PathPrompt) View() string {
	var b strings.Builder
	b.WriteString(QuestionMarkStyle.Render("?"))
	b.WriteString(" ")
	b.WriteString(QuestionStyle.Render(p.question))
	b.WriteString(" ")

	if p.submitted {
		b.WriteString(AnswerStyle.Render(p.Value()))
		b.WriteString("\n")
		return b.String()
	}

	if p.def != "" {
		b.WriteString(DefaultValueStyle.Render("(" + p.def + ")"))
		b.WriteString(" ")
	}
	b.WriteString(p.input.View())
	return b.String()
}

// Value returns the typed path, or the default when nothing was typed.
func (p PathPrompt) Value() string {
	v := strings.TrimSpace(p.input.Value())
	if v == "" {
		return p.def
	}
	return v
}

// Submitted reports whether the user pressed Enter.
func (p PathPrompt) Submitted() bool {
	return p.submitted
}

// Cancelled reports whether the user left the prompt.
func (p PathPrompt) Cancelled() bool {
	return p.cancelled
}

// PromptPath runs a PathPrompt on the terminal and returns the answer.
func PromptPath(question, def string) (string, error) {
	program := tea.NewProgram(NewPathPrompt(question, def), tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	prompt, ok := final.(PathPrompt)
	if !ok || prompt.Cancelled() || !prompt.Submitted() {
		return "", ErrCancelled
	}
	return prompt.Value(), nil
}
