package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/chapterize/internal/config"
	"github.com/maauso/chapterize/internal/workflow"
	"github.com/maauso/chapterize/internal/workspace"
)

func testConfig() *config.Config {
	return &config.Config{
		FFmpegPath:      "ffmpeg",
		SilenceThreshDB: -30,
		MinSilenceSec:   0.5,
		BulkSplitCap:    99,
		MinSpacingSec:   240,
		ProbeInputs:     true,
		LogFormat:       "text",
		LogLevel:        "info",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewDependencies(t *testing.T) {
	dir := t.TempDir()

	deps, err := NewDependencies(testConfig(), discardLogger(), dir)
	require.NoError(t, err)

	assert.Equal(t, dir, deps.Workspace.Root())
	assert.NotNil(t, deps.Tool)
	assert.NotNil(t, deps.Workflow)
}

func TestNewDependencies_MissingDir(t *testing.T) {
	_, err := NewDependencies(testConfig(), discardLogger(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open working directory")
}

func TestNewDependencies_RunsWorkflow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, workspace.CompleteFilename), []byte("x"), 0o600))

	deps, err := NewDependencies(testConfig(), discardLogger(), dir)
	require.NoError(t, err)

	out, err := deps.Workflow.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workflow.StateDone, out.State)
}
