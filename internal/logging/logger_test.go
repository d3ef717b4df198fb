package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_FileSinkWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger, cleanup, err := New(Options{Level: "info", File: path, Quiet: true})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("parsed definition", zap.String("file", "box.xml"))
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"parsed definition"`)
	assert.Contains(t, string(data), `"file":"box.xml"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_VerboseEnablesDebugOnConsole(t *testing.T) {
	logger, cleanup, err := New(Options{Level: "error", Verbose: true})
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, logger.Check(zap.DebugLevel, "x"))
}

func TestNew_QuietRaisesConsoleLevel(t *testing.T) {
	logger, cleanup, err := New(Options{Level: "info", Quiet: true})
	require.NoError(t, err)
	defer cleanup()

	assert.Nil(t, logger.Check(zap.InfoLevel, "x"))
	assert.NotNil(t, logger.Check(zap.WarnLevel, "x"))
}
