package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SegmentFiles lists the numbered ".mp3" files in dir whose stem is exactly
// digits decimal digits, in name order. It is used to see what a split
// actually produced.
func (w *Workspace) SegmentFiles(dir string, digits int) ([]string, error) {
	entries, err := os.ReadDir(w.Path(dir))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var segments []string
	for _, entry := range entries {
		if entry.IsDir() || !isSegmentName(entry.Name(), digits) {
			continue
		}
		segments = append(segments, filepath.Join(dir, entry.Name()))
	}
	return segments, nil
}

func isSegmentName(name string, digits int) bool {
	stem, ok := strings.CutSuffix(name, ".mp3")
	if !ok || len(stem) != digits {
		return false
	}
	for _, r := range stem {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
