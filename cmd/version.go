// =============================================================================
// Stormworks Definitions Converter - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   swdefs version
//
// OUTPUT:
//   Stormworks Definitions Converter
//   Version:    0.3.0
//   Build Date: 2026-10-01
//   Go Version: go1.24.11
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version and BuildDate are overridden at build time:
//
//	go build -ldflags "-X '<module>/cmd.Version=0.3.0' -X '<module>/cmd.BuildDate=2026-10-01'"
var (
	Version   = "0.3.0"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Stormworks Definitions Converter")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
