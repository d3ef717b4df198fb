// =============================================================================
// Stormworks Definitions Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Subcommands attach
// to it in their own init functions.
//
// COBRA CLI STRUCTURE:
//   rootCmd (swdefs)
//   ├── convertCmd (swdefs convert)
//   └── versionCmd (swdefs version)
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/stormworks-definitions-converter/internal/tui"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug output on the console.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "swdefs",
	Short: "Stormworks Definitions Converter - Turn definition XML files into one JSON document",
	Long: `Stormworks Definitions Converter reads every *.xml component definition in
the game's definitions folder and writes a single output.json holding one
normalized record per file.

Example Usage:
  swdefs convert                              # Ask for the folders, then convert
  swdefs convert --input ./defs --no-prompt   # Convert without prompting
  swdefs convert --variant minimal            # Leave geometry out of the records
  swdefs convert --on-error skip --summary    # Skip malformed files and report them`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command with a context cancelled on SIGINT or
// SIGTERM. It is called once by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !alreadyShown(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// alreadyShown reports whether the progress display printed err itself.
func alreadyShown(err error) bool {
	var shown *tui.ShownError
	return errors.As(err, &shown)
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file; a missing file means defaults",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)
}
