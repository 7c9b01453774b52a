// Package workspace is the chapterizer's view of its working directory: the
// audio files it consumes, the chapter files it writes and the marker files
// that record how far a previous run got.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Files the workflow creates in the working directory.
const (
	// ConcatFilename is the joined audio, at the root or inside a chapter directory.
	ConcatFilename = "concat.mp3"
	// CompleteFilename marks a finished job; its presence stops all processing.
	CompleteFilename = "chapterization-complete.txt"
	// LockFilename guards against two runs in the same directory.
	LockFilename = ".chapterize.lock"
)

// ErrChapterDirExists is returned when a chapter directory is left over from
// an earlier run.
var ErrChapterDirExists = fmt.Errorf("chapter directory already exists: %w", fs.ErrExist)

// ErrNotDirectory is returned when the workspace root is not a directory.
var ErrNotDirectory = errors.New("workspace root is not a directory")

var audioExtensions = []string{".mp3", ".m4a", ".m4b"}

// IsAudioFile reports whether name has one of the accepted audio extensions.
func IsAudioFile(name string) bool {
	for _, ext := range audioExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// SamePath reports whether two paths name the same file once cleaned.
func SamePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// Workspace performs file operations relative to a root directory.
// Paths passed to and returned from its methods are relative to the root.
type Workspace struct {
	root string
}

// New creates a Workspace rooted at root.
// If root is empty, the current directory is used. The directory must exist.
func New(root string) (*Workspace, error) {
	if root == "" {
		root = "."
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat workspace: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	return &Workspace{root: root}, nil
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

// Path resolves a workspace-relative path. Absolute paths are returned as is.
func (w *Workspace) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(w.root, rel)
}

// Exists reports whether rel exists.
func (w *Workspace) Exists(rel string) (bool, error) {
	_, err := os.Stat(w.Path(rel))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", rel, err)
}

// AudioFiles lists the audio files at the top level of the workspace, in
// name order. Paths equal to any of exclude are left out.
func (w *Workspace) AudioFiles(ctx context.Context, exclude ...string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("read workspace: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsAudioFile(entry.Name()) || excluded(entry.Name(), exclude) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

func excluded(name string, exclude []string) bool {
	for _, ex := range exclude {
		if SamePath(name, ex) {
			return true
		}
	}
	return false
}

// Remove deletes the given files.
// It continues even if some files fail to delete, returning the first error
// encountered. Files that are already gone are ignored.
func (w *Workspace) Remove(ctx context.Context, paths ...string) error {
	var firstErr error
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if err := os.Remove(w.Path(p)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove %s: %w", p, err)
			}
		}
	}
	return firstErr
}

// Rename moves oldRel to newRel.
func (w *Workspace) Rename(oldRel, newRel string) error {
	if err := os.Rename(w.Path(oldRel), w.Path(newRel)); err != nil {
		return fmt.Errorf("rename %s: %w", oldRel, err)
	}
	return nil
}

// MakeChapterDir creates a chapter directory. It fails with
// ErrChapterDirExists if the directory is already present.
func (w *Workspace) MakeChapterDir(rel string) error {
	err := os.Mkdir(w.Path(rel), 0o750)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrChapterDirExists, rel)
	}
	if err != nil {
		return fmt.Errorf("create chapter directory: %w", err)
	}
	return nil
}

// WriteFile writes content to rel, replacing any existing file.
func (w *Workspace) WriteFile(rel, content string) error {
	if err := os.WriteFile(w.Path(rel), []byte(content), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// Open opens rel for reading.
// The caller is responsible for closing the returned ReadCloser.
func (w *Workspace) Open(rel string) (io.ReadCloser, error) {
	f, err := os.Open(w.Path(rel)) // #nosec G304 - path is inside the user's working directory
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", rel, err)
	}
	return f, nil
}
