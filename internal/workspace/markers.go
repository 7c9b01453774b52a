package workspace

import "github.com/maauso/chapterize/internal/manifest"

// Markers records which workflow marker files were present when a run began.
type Markers struct {
	Manifest     bool
	Instructions bool
	Complete     bool
}

// Markers takes one snapshot of the marker files.
func (w *Workspace) Markers() (Markers, error) {
	var m Markers
	var err error

	if m.Complete, err = w.Exists(CompleteFilename); err != nil {
		return Markers{}, err
	}
	if m.Manifest, err = w.Exists(manifest.Filename); err != nil {
		return Markers{}, err
	}
	if m.Instructions, err = w.Exists(manifest.InstructionsFilename); err != nil {
		return Markers{}, err
	}
	return m, nil
}
