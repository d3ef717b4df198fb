package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode says whether the convert command may draw prompts and the spinner.
type Mode int

const (
	// ModeNonInteractive logs plain lines and never prompts.
	ModeNonInteractive Mode = iota
	// ModeInteractive asks for folders and shows the spinner.
	ModeInteractive
)

// nonInteractiveEnv set to "1" turns prompts off on any terminal.
const nonInteractiveEnv = "SWDEFS_NON_INTERACTIVE"

// DetectMode picks ModeInteractive only when both stdin and stdout are
// terminals and neither nonInteractiveEnv nor CI is set.
func DetectMode() Mode {
	switch {
	case os.Getenv(nonInteractiveEnv) == "1", os.Getenv("CI") != "":
		return ModeNonInteractive
	case !term.IsTerminal(int(os.Stdin.Fd())), !term.IsTerminal(int(os.Stdout.Fd())):
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive reports DetectMode() == ModeInteractive.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
