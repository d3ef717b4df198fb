// =============================================================================
// Stormworks Definitions Converter - File Manager Utility
// =============================================================================
//
// This module provides the file system side of a conversion run:
//   - Folder checks for the input and output directories
//   - Discovery of *.xml definition files
//   - Writing the output document in one step
//   - Error log and processing summary generation
//
// OUTPUT STRATEGY:
//   - output.json is written to a temporary file in the output directory
//     and renamed into place, so readers never see a half written document
//   - Error logs and summaries are time-stamped side files; they never
//     change output.json
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// DefinitionExtension is the suffix of files picked up by discovery.
const DefinitionExtension = ".xml"

// ErrNotDirectory is wrapped when a folder path does not name a directory.
var ErrNotDirectory = errors.New("not a valid folder path")

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the converter.
type FileManager struct {
	// InputDir is the directory holding the definition files.
	InputDir string

	// OutputDir is the directory the output document is written to.
	OutputDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir string) *FileManager {
	return &FileManager{
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
}

// =============================================================================
// DIRECTORY CHECKS
// =============================================================================

// CheckDirectories verifies that both folders exist.
//
// RETURNS:
//   - An error naming the first folder that is missing or is not a
//     directory. The error wraps ErrNotDirectory.
func (fm *FileManager) CheckDirectories() error {
	checks := []struct {
		label string
		path  string
	}{
		{"input", fm.InputDir},
		{"destination", fm.OutputDir},
	}

	for _, c := range checks {
		if !DirExists(c.path) {
			return fmt.Errorf("the %s path provided (%s): %w", c.label, c.path, ErrNotDirectory)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the files in the input directory whose name ends
// with extension. The match is case-sensitive and not recursive. Symbolic
// links are followed; anything that is not a directory is kept, so a
// dangling link surfaces as a read error during conversion.
//
// PARAMETERS:
//   - extension: The suffix to match. If empty, defaults to ".xml".
//
// RETURNS:
//   - A slice of file paths in directory listing order (sorted by name).
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverInputFiles(extension string) ([]string, error) {
	if extension == "" {
		extension = DefinitionExtension
	}

	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	files := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (string, bool) {
		if !strings.HasSuffix(entry.Name(), extension) {
			return "", false
		}
		path := filepath.Join(fm.InputDir, entry.Name())
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return "", false
		}
		return path, true
	})

	return files, nil
}

// =============================================================================
// OUTPUT FILES
// =============================================================================

// WriteOutput writes data to name inside the output directory. The file is
// replaced in one rename, so an interrupted run leaves the previous
// document untouched.
//
// RETURNS:
//   - The path of the written file.
//   - An error if writing fails.
func (fm *FileManager) WriteOutput(name string, data []byte) (string, error) {
	outputPath := filepath.Join(fm.OutputDir, name)

	tmp, err := os.CreateTemp(fm.OutputDir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to sync output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return "", fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return "", fmt.Errorf("failed to move output into place: %w", err)
	}

	return outputPath, nil
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry represents a single error log entry.
type ErrorLogEntry struct {
	Timestamp    time.Time
	FileName     string
	ErrorType    string
	ErrorMessage string
}

// WriteErrorLog writes error entries to a log file.
//
// PARAMETERS:
//   - entries: The error entries to write.
//   - outputDir: The directory to write the log file.
//
// RETURNS:
//   - The path to the error log file, or "" when there was nothing to write.
//   - An error if writing fails.
func WriteErrorLog(entries []ErrorLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	timestamp := time.Now().Format("20060102_150405")
	logPath := filepath.Join(outputDir, fmt.Sprintf("error_log_%s.txt", timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Stormworks Definitions Converter - Error Log\n"+
		"Generated: %s\n"+
		"Total Errors: %d\n"+
		"================================================================================\n\n",
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Error #%d\n"+
			"  Timestamp:      %s\n"+
			"  File:           %s\n"+
			"  Error Type:     %s\n"+
			"  Message:        %s\n\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName,
			entry.ErrorType,
			entry.ErrorMessage)
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	// RunID identifies the run in logs and summaries. NewProcessingSummary
	// fills it with a random UUID.
	RunID string

	StartTime     time.Time
	EndTime       time.Time
	InputDir      string
	OutputFile    string
	SchemaVariant string
	TotalFiles    int
	Converted     int
	SkippedFiles  []FailedFileInfo
}

// FailedFileInfo contains information about a skipped file.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// NewProcessingSummary starts a summary with a fresh run ID.
func NewProcessingSummary(start time.Time) ProcessingSummary {
	return ProcessingSummary{
		RunID:     uuid.New().String(),
		StartTime: start,
	}
}

// WriteSummaryLog writes a processing summary to a log file.
//
// PARAMETERS:
//   - summary: The processing summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	timestamp := summary.EndTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "Stormworks Definitions Converter - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n"+
		"  Input Folder:   %s\n"+
		"  Output File:    %s\n"+
		"  Schema:         %s\n\n"+
		"Statistics:\n"+
		"  Total Files:    %d\n"+
		"  Converted:      %d\n"+
		"  Skipped:        %d\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.InputDir,
		summary.OutputFile,
		summary.SchemaVariant,
		summary.TotalFiles,
		summary.Converted,
		len(summary.SkippedFiles))

	if len(summary.SkippedFiles) > 0 {
		writer.WriteString("Skipped Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, ff := range summary.SkippedFiles {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// DirExists reports whether path names an existing directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
