package workspace

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/chapterize/internal/manifest"
)

func setupWorkspace(t *testing.T, files ...string) *Workspace {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("data"), 0o600))
	}
	ws, err := New(dir)
	require.NoError(t, err)
	return ws
}

func TestNew(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		dir := t.TempDir()
		ws, err := New(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, ws.Root())
	})

	t.Run("defaults to current directory", func(t *testing.T) {
		ws, err := New("")
		require.NoError(t, err)
		assert.Equal(t, ".", ws.Root())
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		ws := setupWorkspace(t, "a.mp3")
		_, err := New(ws.Path("a.mp3"))
		assert.ErrorIs(t, err, ErrNotDirectory)
	})
}

func TestIsAudioFile(t *testing.T) {
	for _, name := range []string{"a.mp3", "b.m4a", "book.m4b", "./x/y.mp3"} {
		assert.True(t, IsAudioFile(name), name)
	}
	for _, name := range []string{"a.wav", "notes.txt", "mp3", "a.MP3", "a.mp3.bak"} {
		assert.False(t, IsAudioFile(name), name)
	}
}

func TestSamePath(t *testing.T) {
	assert.True(t, SamePath("./concat.mp3", "concat.mp3"))
	assert.True(t, SamePath("a/../concat.mp3", "concat.mp3"))
	assert.False(t, SamePath("x/concat.mp3", "concat.mp3"))
}

func TestWorkspace_AudioFiles(t *testing.T) {
	ws := setupWorkspace(t, "02.mp3", "01.m4a", "notes.txt", ConcatFilename, "00.m4b")
	require.NoError(t, os.Mkdir(ws.Path("dir.mp3"), 0o750))

	files, err := ws.AudioFiles(context.Background(), "./"+ConcatFilename)
	require.NoError(t, err)
	assert.Equal(t, []string{"00.m4b", "01.m4a", "02.mp3"}, files)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ws.AudioFiles(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkspace_Remove(t *testing.T) {
	ws := setupWorkspace(t, "a.mp3", "b.mp3")

	require.NoError(t, ws.Remove(context.Background(), "a.mp3", "b.mp3", "missing.mp3"))
	assert.NoFileExists(t, ws.Path("a.mp3"))
	assert.NoFileExists(t, ws.Path("b.mp3"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ws.Remove(ctx, "x"), context.Canceled)
}

func TestWorkspace_RenameAndWrite(t *testing.T) {
	ws := setupWorkspace(t)

	require.NoError(t, ws.WriteFile("in.txt", "hello"))
	require.NoError(t, ws.Rename("in.txt", "out.txt"))

	rc, err := ws.Open("out.txt")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	assert.Error(t, ws.Rename("in.txt", "again.txt"))
	_, err = ws.Open("in.txt")
	assert.Error(t, err)
}

func TestWorkspace_MakeChapterDir(t *testing.T) {
	ws := setupWorkspace(t)

	require.NoError(t, ws.MakeChapterDir("00_prologue"))
	assert.DirExists(t, ws.Path("00_prologue"))

	err := ws.MakeChapterDir("00_prologue")
	assert.ErrorIs(t, err, ErrChapterDirExists)
	assert.ErrorIs(t, err, fs.ErrExist)
}

func TestWorkspace_Markers(t *testing.T) {
	ws := setupWorkspace(t)

	m, err := ws.Markers()
	require.NoError(t, err)
	assert.Equal(t, Markers{}, m)

	require.NoError(t, ws.WriteFile(manifest.Filename, "chap\n"))
	require.NoError(t, ws.WriteFile(manifest.InstructionsFilename, "how to"))
	require.NoError(t, ws.WriteFile(CompleteFilename, "done"))

	m, err = ws.Markers()
	require.NoError(t, err)
	assert.Equal(t, Markers{Manifest: true, Instructions: true, Complete: true}, m)
}

func TestWorkspace_SegmentFiles(t *testing.T) {
	ws := setupWorkspace(t, "00.mp3", "01.mp3", "100.mp3", "a1.mp3", "02.m4a")
	require.NoError(t, ws.MakeChapterDir("00_x"))
	for _, f := range []string{"000.mp3", "001.mp3", "concat.mp3"} {
		require.NoError(t, ws.WriteFile(filepath.Join("00_x", f), "seg"))
	}

	top, err := ws.SegmentFiles(".", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"00.mp3", "01.mp3"}, top)

	chapter, err := ws.SegmentFiles("00_x", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("00_x", "000.mp3"), filepath.Join("00_x", "001.mp3")}, chapter)

	_, err = ws.SegmentFiles("missing", 3)
	assert.Error(t, err)
}

func TestWorkspace_Lock(t *testing.T) {
	ws := setupWorkspace(t)

	unlock, err := ws.Lock()
	require.NoError(t, err)
	assert.FileExists(t, ws.Path(LockFilename))

	other, err := New(ws.Root())
	require.NoError(t, err)
	_, err = other.Lock()
	assert.True(t, errors.Is(err, ErrLocked))

	require.NoError(t, unlock())
	assert.NoFileExists(t, ws.Path(LockFilename))

	unlock, err = other.Lock()
	require.NoError(t, err)
	require.NoError(t, unlock())
}

func TestWorkspace_PathKeepsAbsolute(t *testing.T) {
	ws := setupWorkspace(t)
	abs := filepath.Join(t.TempDir(), "elsewhere.mp3")
	assert.Equal(t, abs, ws.Path(abs))
	assert.Equal(t, filepath.Join(ws.Root(), "a", "b.mp3"), ws.Path("a/b.mp3"))
}
