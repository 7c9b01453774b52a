package workspace

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another run holds the workspace lock.
var ErrLocked = errors.New("another chapterize run is using this directory")

// Lock takes an exclusive, non-blocking lock on the workspace. The returned
// function releases the lock and removes the lock file.
func (w *Workspace) Lock() (func() error, error) {
	lock := flock.New(w.Path(LockFilename))

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() error {
		if err := lock.Unlock(); err != nil {
			return fmt.Errorf("release workspace lock: %w", err)
		}
		if err := os.Remove(lock.Path()); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove lock file: %w", err)
		}
		return nil
	}, nil
}
