// =============================================================================
// Stormworks Definitions Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   swdefs convert       - Convert the definitions folder into output.json
//   swdefs version       - Display the application version
//
// LAYOUT:
//   - cmd/           : Cobra command definitions
//   - internal/      : XML tree, normalizer, converter, config, logging, TUI
//   - pkg/utils/     : Folder checks, file discovery and report writers
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/stormworks-definitions-converter/cmd"
)

func main() {
	cmd.Execute()
}
