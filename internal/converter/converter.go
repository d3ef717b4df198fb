// =============================================================================
// Stormworks Definitions Converter - Converter Module
// =============================================================================
//
// This module runs the conversion pipeline over a list of definition files
// and accumulates one Definition per file into a Document.
//
// CONVERSION PIPELINE (per file, strictly in list order):
//   1. Read the file
//   2. Parse the XML text into a generic element tree (xmltree)
//   3. Normalize the tree into a Definition record (definition)
//   4. Append the record to the document
//   5. Report progress
//
// CONCURRENCY:
//   None. Files are processed one after another so the output order always
//   matches the input order. The document is owned by the caller of Run and
//   is only handed out once the batch is complete.
//
// ERROR POLICY:
//   PolicyAbort (default) : the first malformed file fails the whole run.
//   PolicySkip            : malformed files are logged, recorded in the
//                           Result and left out of the document.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/stormworks-definitions-converter/internal/definition"
	"github.com/ginjaninja78/stormworks-definitions-converter/internal/xmltree"
)

// =============================================================================
// OPTIONS
// =============================================================================

// ErrorPolicy decides what a malformed file does to the batch.
type ErrorPolicy int

const (
	// PolicyAbort stops the run on the first malformed file.
	PolicyAbort ErrorPolicy = iota

	// PolicySkip leaves malformed files out and carries on.
	PolicySkip
)

// ParseErrorPolicy maps the configuration value onto an ErrorPolicy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "", "abort":
		return PolicyAbort, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyAbort, fmt.Errorf("unknown parse error policy %q", s)
	}
}

// Progress is reported after each file, whether it was converted or
// skipped.
type Progress struct {
	Done  int
	Total int
	File  string
}

// Percent returns the rounded completion percentage.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Done*100 + p.Total/2) / p.Total
}

// Options configures a Converter.
type Options struct {
	// Variant is the record schema applied to every file of the run.
	Variant definition.Variant

	// Policy is the malformed XML policy.
	Policy ErrorPolicy

	// OnProgress, when set, is called after every file.
	OnProgress func(Progress)
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result summarizes one run.
type Result struct {
	// FilesTotal is the number of files handed to Run.
	FilesTotal int

	// FilesConverted is the number of records in the document.
	FilesConverted int

	// Skipped lists the files left out under PolicySkip, in order.
	Skipped []*FileError

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// FileError ties a failure to the file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(e.Path), e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter turns definition files into Definition records.
type Converter struct {
	normalizer definition.Normalizer
	policy     ErrorPolicy
	onProgress func(Progress)
	logger     *zap.Logger

	// readFile is os.ReadFile outside of tests.
	readFile func(string) ([]byte, error)
}

// New creates a Converter. A nil logger discards log output.
func New(opts Options, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		normalizer: definition.NewNormalizer(opts.Variant),
		policy:     opts.Policy,
		onProgress: opts.OnProgress,
		logger:     logger,
		readFile:   os.ReadFile,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run converts files in order and returns the finished document.
//
// PARAMETERS:
//   - ctx: Checked before each file. Cancellation stops the run without a
//     document.
//   - files: Paths of the definition files, in output order.
//
// RETURNS:
//   - The document holding one record per converted file.
//   - The run summary. It is filled in even when an error is returned.
//   - A *FileError when a file cannot be read, or is malformed under
//     PolicyAbort; ctx.Err() when cancelled.
func (c *Converter) Run(ctx context.Context, files []string) (*Document, Result, error) {
	start := time.Now()
	result := Result{FilesTotal: len(files)}
	definitions := make([]definition.Definition, 0, len(files))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			result.ProcessingTime = time.Since(start)
			return nil, result, err
		}

		def, err := c.ConvertFile(path)
		switch {
		case err == nil:
			definitions = append(definitions, def)
			c.logger.Debug("converted definition", zap.String("file", path))

		case c.policy == PolicySkip && isMalformed(err):
			fileErr := &FileError{Path: path, Err: err}
			result.Skipped = append(result.Skipped, fileErr)
			c.logger.Warn("skipping malformed definition", zap.String("file", path), zap.Error(err))

		default:
			result.FilesConverted = len(definitions)
			result.ProcessingTime = time.Since(start)
			return nil, result, &FileError{Path: path, Err: err}
		}

		if c.onProgress != nil {
			c.onProgress(Progress{Done: i + 1, Total: len(files), File: path})
		}
	}

	result.FilesConverted = len(definitions)
	result.ProcessingTime = time.Since(start)

	c.logger.Info("conversion complete",
		zap.Int("files", result.FilesTotal),
		zap.Int("converted", result.FilesConverted),
		zap.Int("skipped", len(result.Skipped)),
		zap.Duration("elapsed", result.ProcessingTime),
	)

	return &Document{Definitions: definitions}, result, nil
}

// ConvertFile reads and converts a single definition file.
func (c *Converter) ConvertFile(path string) (definition.Definition, error) {
	data, err := c.readFile(path)
	if err != nil {
		return definition.Definition{}, fmt.Errorf("failed to read file: %w", err)
	}
	return c.Convert(data)
}

// Convert parses raw XML and normalizes it. The only error is
// *xmltree.MalformedXMLError.
func (c *Converter) Convert(data []byte) (definition.Definition, error) {
	tree, err := xmltree.ParseBytes(data)
	if err != nil {
		return definition.Definition{}, err
	}
	return c.normalizer.Normalize(tree), nil
}
