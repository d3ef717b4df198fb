package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMode_EnvForcesNonInteractive(t *testing.T) {
	t.Setenv("SWDEFS_NON_INTERACTIVE", "1")
	assert.Equal(t, ModeNonInteractive, DetectMode())
	assert.False(t, IsInteractive())
}

func TestDetectMode_CI(t *testing.T) {
	t.Setenv("SWDEFS_NON_INTERACTIVE", "")
	t.Setenv("CI", "true")
	assert.Equal(t, ModeNonInteractive, DetectMode())
}
