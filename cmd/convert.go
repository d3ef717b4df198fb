// =============================================================================
// Stormworks Definitions Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which turns a folder of
// definition XML files into a single JSON document.
//
// COMMAND USAGE:
//   swdefs convert [flags]
//
// FLAGS:
//   --input       : Folder holding the *.xml definitions
//   --output      : Destination folder ("Definitions folder" = same as input)
//   --variant     : Record schema, "extended" or "minimal"
//   --on-error    : Malformed XML policy, "abort" or "skip"
//   --xlsx        : Also write a spreadsheet summary
//   --summary     : Also write a processing summary text file
//   --no-prompt   : Never ask for folders, even on a terminal
//
// PROCESSING PIPELINE:
//   1. Load configuration, then apply flags
//   2. Ask for the input and destination folders (terminal only)
//   3. Check that both folders exist
//   4. List the *.xml files of the input folder
//   5. Convert every file, in order, into one document
//   6. Write output.json, replacing any previous one
//   7. Write the optional spreadsheet, summary and error log
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/stormworks-definitions-converter/internal/config"
	"github.com/ginjaninja78/stormworks-definitions-converter/internal/converter"
	"github.com/ginjaninja78/stormworks-definitions-converter/internal/logging"
	"github.com/ginjaninja78/stormworks-definitions-converter/internal/tui"
	"github.com/ginjaninja78/stormworks-definitions-converter/internal/xlsxwriter"
	"github.com/ginjaninja78/stormworks-definitions-converter/pkg/utils"
)

// progressLabel is shown next to the spinner while files are converted.
const progressLabel = "Parsing XML definitions..."

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// convertOptions carries everything runConvert needs from the command line.
type convertOptions struct {
	configPath string
	verbose    bool

	input    string
	output   string
	variant  string
	onError  string
	xlsx     bool
	summary  bool
	noPrompt bool
}

var convertFlags convertOptions

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert definition XML files into output.json",
	Long: `The convert command reads every *.xml file of the definitions folder, in
name order, and writes one JSON document with a "definitions" array holding a
record per file.

On a terminal the input and destination folders are asked for first; press
Enter to accept the default shown in brackets. A malformed file stops the run
and leaves any previous output.json untouched, unless --on-error skip is set.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convertFlags
		opts.configPath = cfgFile
		opts.verbose = verbose
		return runConvert(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()
	f.StringVar(&convertFlags.input, "input", "", "Folder holding the definition XML files")
	f.StringVar(&convertFlags.output, "output", "", `Destination folder for output.json ("Definitions folder" means the input folder)`)
	f.StringVar(&convertFlags.variant, "variant", "", `Record schema: "extended" or "minimal"`)
	f.StringVar(&convertFlags.onError, "on-error", "", `Malformed XML policy: "abort" or "skip"`)
	f.BoolVar(&convertFlags.xlsx, "xlsx", false, "Also write a spreadsheet of the converted definitions")
	f.BoolVar(&convertFlags.summary, "summary", false, "Also write a processing summary file")
	f.BoolVar(&convertFlags.noPrompt, "no-prompt", false, "Do not ask for folders, use config and flags only")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert loads the configuration, resolves the folders and runs the
// conversion. The success line is written to out.
func runConvert(ctx context.Context, out io.Writer, opts convertOptions) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := config.LoadMainConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyConvertFlags(cfg, opts); err != nil {
		return err
	}

	interactive := !opts.noPrompt && tui.IsInteractive()

	logger, cleanup, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Verbose: opts.verbose,
		Quiet:   interactive,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	// =========================================================================
	// STEP 2: RESOLVE AND CHECK FOLDERS
	// =========================================================================

	if interactive {
		if err := promptFolders(cfg, opts); err != nil {
			return err
		}
	}

	outputDir := cfg.ResolvedOutputDir()
	fm := utils.NewFileManager(cfg.InputDir, outputDir)
	if err := fm.CheckDirectories(); err != nil {
		return err
	}

	logger.Debug("folders resolved",
		zap.String("input", cfg.InputDir),
		zap.String("output", outputDir),
	)

	// =========================================================================
	// STEP 3: DISCOVER INPUT FILES
	// =========================================================================

	files, err := fm.DiscoverInputFiles(utils.DefinitionExtension)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("no definition files found", zap.String("input", cfg.InputDir))
	}

	policy, err := converter.ParseErrorPolicy(cfg.OnParseError)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 4: CONVERT AND WRITE
	// =========================================================================

	job := &convertJob{
		cfg:       cfg,
		fm:        fm,
		files:     files,
		policy:    policy,
		outputDir: outputDir,
		logger:    logger,
	}

	success := fmt.Sprintf("Successfully parsed all XML definitions. An %s file is now available at the chosen destination folder.",
		tui.Highlight(cfg.OutputFile))

	if interactive {
		err = tui.RunWithProgress(ctx, progressLabel, success, func(ctx context.Context, report tui.Reporter) error {
			return job.run(ctx, func(p converter.Progress) {
				report(p.Done, p.Total, p.Percent())
			})
		})
	} else {
		err = job.run(ctx, func(p converter.Progress) {
			logger.Debug(progressLabel, zap.Int("done", p.Done), zap.Int("total", p.Total), zap.Int("percent", p.Percent()))
		})
		if err == nil {
			fmt.Fprintln(out, tui.Success(success))
		}
	}
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 5: SUMMARY AND ERROR LOG
	// =========================================================================

	return job.writeReports(startTime)
}

// applyConvertFlags lets command line flags override the loaded
// configuration, then validates the result again.
func applyConvertFlags(cfg *config.MainConfig, opts convertOptions) error {
	if opts.input != "" {
		cfg.InputDir = opts.input
	}
	if opts.output != "" {
		cfg.OutputDir = opts.output
	}
	if opts.variant != "" {
		cfg.SchemaVariant = opts.variant
	}
	if opts.onError != "" {
		cfg.OnParseError = opts.onError
	}
	if opts.xlsx {
		cfg.XLSXExport = true
	}
	if opts.summary {
		cfg.WriteSummary = true
	}
	return cfg.Validate()
}

// promptFolders asks for the folders the command line did not name.
func promptFolders(cfg *config.MainConfig, opts convertOptions) error {
	if opts.input == "" {
		input, err := tui.PromptPath("Stormworks definitions folder path:", cfg.InputDir)
		if err != nil {
			return err
		}
		cfg.InputDir = input
	}

	if opts.output == "" {
		output, err := tui.PromptPath("Output folder path:", config.SameAsInput)
		if err != nil {
			return err
		}
		cfg.OutputDir = output
	}

	return nil
}

// =============================================================================
// CONVERSION JOB
// =============================================================================

// convertJob holds one run's inputs and, once run, its result.
type convertJob struct {
	cfg       *config.MainConfig
	fm        *utils.FileManager
	files     []string
	policy    converter.ErrorPolicy
	outputDir string
	logger    *zap.Logger

	result     converter.Result
	outputPath string
}

// run converts the files and writes the document plus the optional
// spreadsheet. Nothing is written when conversion fails; a failed
// spreadsheet export is logged as a warning.
func (j *convertJob) run(ctx context.Context, onProgress func(converter.Progress)) error {
	conv := converter.New(converter.Options{
		Variant:    j.cfg.Variant(),
		Policy:     j.policy,
		OnProgress: onProgress,
	}, j.logger)

	doc, result, err := conv.Run(ctx, j.files)
	j.result = result
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	j.outputPath, err = j.fm.WriteOutput(j.cfg.OutputFile, data)
	if err != nil {
		return err
	}
	j.logger.Info("document written",
		zap.String("path", j.outputPath),
		zap.Int("definitions", len(doc.Definitions)),
	)

	// output.json is already in place; a spreadsheet failure does not fail
	// the run.
	if j.cfg.XLSXExport {
		xlsxPath := filepath.Join(j.outputDir, j.cfg.XLSXFile)
		if err := xlsxwriter.Export(doc.Definitions, xlsxPath); err != nil {
			j.logger.Warn("spreadsheet export failed", zap.String("path", xlsxPath), zap.Error(err))
		} else {
			j.logger.Info("spreadsheet written", zap.String("path", xlsxPath))
		}
	}

	return nil
}

// writeReports writes the error log for skipped files and, when enabled,
// the processing summary.
func (j *convertJob) writeReports(startTime time.Time) error {
	if len(j.result.Skipped) > 0 {
		entries := lo.Map(j.result.Skipped, func(fe *converter.FileError, _ int) utils.ErrorLogEntry {
			return utils.ErrorLogEntry{
				Timestamp:    time.Now(),
				FileName:     filepath.Base(fe.Path),
				ErrorType:    "MALFORMED_XML",
				ErrorMessage: fe.Err.Error(),
			}
		})
		logPath, err := utils.WriteErrorLog(entries, j.outputDir)
		if err != nil {
			return err
		}
		j.logger.Warn("some definitions were skipped",
			zap.Int("skipped", len(entries)),
			zap.String("error_log", logPath),
		)
	}

	if !j.cfg.WriteSummary {
		return nil
	}

	summary := utils.NewProcessingSummary(startTime)
	summary.EndTime = time.Now()
	summary.InputDir = j.cfg.InputDir
	summary.OutputFile = j.outputPath
	summary.SchemaVariant = string(j.cfg.Variant())
	summary.TotalFiles = j.result.FilesTotal
	summary.Converted = j.result.FilesConverted
	summary.SkippedFiles = lo.Map(j.result.Skipped, func(fe *converter.FileError, _ int) utils.FailedFileInfo {
		return utils.FailedFileInfo{
			InputFile:    fe.Path,
			ErrorMessage: fe.Err.Error(),
		}
	})

	summaryPath, err := utils.WriteSummaryLog(summary, j.outputDir)
	if err != nil {
		return err
	}
	j.logger.Info("summary written", zap.String("path", summaryPath), zap.String("run_id", summary.RunID))

	return nil
}
