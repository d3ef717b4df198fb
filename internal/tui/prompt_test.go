package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestPathPrompt_EmptyAnswerUsesDefault(t *testing.T) {
	m := send(t, NewPathPrompt("Output folder path:", "Definitions folder"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	p := m.(PathPrompt)
	assert.True(t, p.Submitted())
	assert.False(t, p.Cancelled())
	assert.Equal(t, "Definitions folder", p.Value())
}

func TestPathPrompt_TypedAnswer(t *testing.T) {
	m := send(t, NewPathPrompt("Stormworks definitions folder path:", "C:\\defs"),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/tmp/defs")},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	p := m.(PathPrompt)
	assert.Equal(t, "/tmp/defs", p.Value())
	assert.Contains(t, p.View(), "/tmp/defs")
}

func TestPathPrompt_Cancel(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := send(t, NewPathPrompt("q", "d"), tea.KeyMsg{Type: key})
		p := m.(PathPrompt)
		assert.True(t, p.Cancelled())
		assert.False(t, p.Submitted())
	}
}

func TestPathPrompt_EnterQuits(t *testing.T) {
	_, cmd := NewPathPrompt("q", "d").Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestPathPrompt_ViewShowsQuestionAndDefault(t *testing.T) {
	view := NewPathPrompt("Output folder path:", "Definitions folder").View()
	assert.Contains(t, view, "Output folder path:")
	assert.Contains(t, view, "(Definitions folder)")
}

func TestProgressModel_TracksPercent(t *testing.T) {
	m := send(t, NewProgressModel("Parsing XML definitions..."),
		ProgressMsg{Done: 1, Total: 4, Percent: 25},
	)

	p := m.(ProgressModel)
	assert.Equal(t, 25, p.Percent())
	assert.True(t, strings.Contains(p.View(), "Parsing XML definitions... [25%]"))
}

func TestProgressModel_Done(t *testing.T) {
	m := send(t, NewProgressModel("Parsing"), ProgressDoneMsg{Result: "all good"})
	p := m.(ProgressModel)
	assert.True(t, p.Finished())
	assert.Contains(t, p.View(), "all good")

	m = send(t, NewProgressModel("Parsing"), ProgressDoneMsg{Err: errors.New("boom")})
	p = m.(ProgressModel)
	assert.True(t, p.Finished())
	assert.Contains(t, p.View(), "boom")
}

func TestProgressModel_CtrlCCancels(t *testing.T) {
	m, cmd := NewProgressModel("Parsing").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	p := m.(ProgressModel)
	assert.True(t, p.Cancelled())
	assert.False(t, p.Finished())
}

func runQuietly(t *testing.T, work func(ctx context.Context, report Reporter) error) error {
	t.Helper()
	var out bytes.Buffer
	return runWithProgress(context.Background(), "Parsing", "done", work,
		tea.WithInput(&bytes.Buffer{}),
		tea.WithOutput(&out),
		tea.WithoutSignalHandler(),
	)
}

func TestRunWithProgress_Success(t *testing.T) {
	err := runQuietly(t, func(ctx context.Context, report Reporter) error {
		report(1, 2, 50)
		report(2, 2, 100)
		return nil
	})
	assert.NoError(t, err)
}

func TestRunWithProgress_WorkErrorIsMarkedShown(t *testing.T) {
	boom := errors.New("boom")
	err := runQuietly(t, func(ctx context.Context, report Reporter) error {
		return boom
	})
	require.Error(t, err)

	var shown *ShownError
	assert.True(t, errors.As(err, &shown))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "boom", err.Error())
}
