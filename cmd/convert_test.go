package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/stormworks-definitions-converter/internal/tui"
	"github.com/ginjaninja78/stormworks-definitions-converter/internal/xmltree"
	"github.com/ginjaninja78/stormworks-definitions-converter/pkg/utils"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SWDEFS_INPUT_DIR",
		"SWDEFS_OUTPUT_DIR",
		"SWDEFS_SCHEMA_VARIANT",
		"SWDEFS_ON_PARSE_ERROR",
		"SWDEFS_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func writeDefinitions(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func baseOptions(t *testing.T, input string) convertOptions {
	return convertOptions{
		configPath: filepath.Join(t.TempDir(), "missing.yaml"),
		input:      input,
		noPrompt:   true,
	}
}

type outputDocument struct {
	Definitions []map[string]any `json:"definitions"`
}

func readOutput(t *testing.T, path string) outputDocument {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc outputDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestRunConvert_WritesDocumentNextToInput(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeDefinitions(t, dir, map[string]string{
		"b.xml":     `<definition name="B" tags="x,y"/>`,
		"a.xml":     `<definition name="A" mass="2"/>`,
		"notes.txt": `ignored`,
	})

	var out bytes.Buffer
	err := runConvert(context.Background(), &out, baseOptions(t, dir))
	require.NoError(t, err)

	doc := readOutput(t, filepath.Join(dir, "output.json"))
	require.Len(t, doc.Definitions, 2)
	assert.Equal(t, "A", doc.Definitions[0]["name"])
	assert.Equal(t, "2", doc.Definitions[0]["mass"])
	assert.Equal(t, "B", doc.Definitions[1]["name"])
	assert.Equal(t, []any{"x", "y"}, doc.Definitions[1]["tags"])

	assert.Contains(t, out.String(), "Successfully parsed all XML definitions.")
	assert.Contains(t, out.String(), "output.json")
}

func TestRunConvert_SeparateOutputAndMinimalVariant(t *testing.T) {
	isolateEnv(t)
	input := t.TempDir()
	output := t.TempDir()
	writeDefinitions(t, input, map[string]string{
		"a.xml": `<definition name="A"><surfaces><surface orientation="0"/></surfaces></definition>`,
	})

	opts := baseOptions(t, input)
	opts.output = output
	opts.variant = "minimal"

	require.NoError(t, runConvert(context.Background(), &bytes.Buffer{}, opts))

	assert.NoFileExists(t, filepath.Join(input, "output.json"))
	doc := readOutput(t, filepath.Join(output, "output.json"))
	require.Len(t, doc.Definitions, 1)
	assert.NotContains(t, doc.Definitions[0], "surfaces")
	assert.Nil(t, doc.Definitions[0]["tags"])
}

func TestRunConvert_MalformedFileAbortsWithoutOutput(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeDefinitions(t, dir, map[string]string{
		"a.xml": `<definition name="A"/>`,
		"b.xml": `<definition name="B">`,
	})

	err := runConvert(context.Background(), &bytes.Buffer{}, baseOptions(t, dir))
	require.Error(t, err)

	var malformed *xmltree.MalformedXMLError
	assert.True(t, errors.As(err, &malformed))
	assert.Contains(t, err.Error(), "b.xml")
	assert.NoFileExists(t, filepath.Join(dir, "output.json"))
}

func TestRunConvert_SkipPolicyWritesReports(t *testing.T) {
	isolateEnv(t)
	input := t.TempDir()
	output := t.TempDir()
	writeDefinitions(t, input, map[string]string{
		"a.xml": `<definition name="A"/>`,
		"b.xml": `<definition name="B">`,
	})

	opts := baseOptions(t, input)
	opts.output = output
	opts.onError = "skip"
	opts.summary = true
	opts.xlsx = true

	require.NoError(t, runConvert(context.Background(), &bytes.Buffer{}, opts))

	doc := readOutput(t, filepath.Join(output, "output.json"))
	require.Len(t, doc.Definitions, 1)
	assert.Equal(t, "A", doc.Definitions[0]["name"])

	errorLogs, err := filepath.Glob(filepath.Join(output, "error_log_*.txt"))
	require.NoError(t, err)
	require.Len(t, errorLogs, 1)
	logData, err := os.ReadFile(errorLogs[0])
	require.NoError(t, err)
	assert.Contains(t, string(logData), "b.xml")

	summaries, err := filepath.Glob(filepath.Join(output, "processing_summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	assert.FileExists(t, filepath.Join(output, "definitions.xlsx"))
}

func TestRunConvert_SpreadsheetFailureKeepsDocument(t *testing.T) {
	isolateEnv(t)
	input := t.TempDir()
	output := t.TempDir()
	writeDefinitions(t, input, map[string]string{"a.xml": `<definition name="A"/>`})
	require.NoError(t, os.Mkdir(filepath.Join(output, "definitions.xlsx"), 0755))

	opts := baseOptions(t, input)
	opts.output = output
	opts.xlsx = true

	var out bytes.Buffer
	require.NoError(t, runConvert(context.Background(), &out, opts))

	doc := readOutput(t, filepath.Join(output, "output.json"))
	require.Len(t, doc.Definitions, 1)
	assert.Contains(t, out.String(), "Successfully parsed all XML definitions.")
}

func TestRunConvert_TwoRootElementsAbort(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeDefinitions(t, dir, map[string]string{
		"a.xml": `<definition name="A"/><definition name="B"/>`,
	})

	err := runConvert(context.Background(), &bytes.Buffer{}, baseOptions(t, dir))
	require.Error(t, err)

	var malformed *xmltree.MalformedXMLError
	assert.True(t, errors.As(err, &malformed))
	assert.NoFileExists(t, filepath.Join(dir, "output.json"))
}

func TestAlreadyShown(t *testing.T) {
	base := errors.New("boom")
	assert.False(t, alreadyShown(base))
	assert.True(t, alreadyShown(&tui.ShownError{Err: base}))
	assert.True(t, alreadyShown(fmt.Errorf("wrapped: %w", &tui.ShownError{Err: tui.ErrCancelled})))
}

func TestRunConvert_MissingInputFolder(t *testing.T) {
	isolateEnv(t)
	missing := filepath.Join(t.TempDir(), "nope")

	err := runConvert(context.Background(), &bytes.Buffer{}, baseOptions(t, missing))
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrNotDirectory)
	assert.Contains(t, err.Error(), "input")
}

func TestRunConvert_EmptyFolderWritesEmptyDocument(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	require.NoError(t, runConvert(context.Background(), &bytes.Buffer{}, baseOptions(t, dir)))

	data, err := os.ReadFile(filepath.Join(dir, "output.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"definitions\": []\n}", string(data))
}

func TestRunConvert_CancelledContext(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeDefinitions(t, dir, map[string]string{"a.xml": `<definition name="A"/>`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runConvert(ctx, &bytes.Buffer{}, baseOptions(t, dir))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "output.json"))
}

func TestRunConvert_InvalidFlag(t *testing.T) {
	isolateEnv(t)
	opts := baseOptions(t, t.TempDir())
	opts.variant = "huge"

	err := runConvert(context.Background(), &bytes.Buffer{}, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "huge")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Stormworks Definitions Converter")
	assert.Contains(t, out.String(), "Version:")
}
