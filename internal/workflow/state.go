// Package workflow runs the two-phase chapterization of a working directory.
//
// Phase 1 joins every recording, cuts the result at its longest silences and
// leaves instructions for writing a groupings manifest. Phase 2 reads that
// manifest and, one chapter at a time, joins the chapter's files and re-cuts
// them at silences at least four minutes apart.
//
// Which phase runs is decided once per invocation from a snapshot of the
// marker files in the directory.
package workflow

import "github.com/maauso/chapterize/internal/workspace"

// State is the workflow position implied by the marker files.
type State int

const (
	// StateDone means the completion marker exists; nothing is done.
	StateDone State = iota
	// StateAwaitingManifestFirstRun means no markers exist; Phase 1 runs.
	StateAwaitingManifestFirstRun
	// StateAwaitingManifest means Phase 1 finished and the user has not yet
	// written a manifest.
	StateAwaitingManifest
	// StateReadyForPhase2 means a manifest exists; Phase 2 runs.
	StateReadyForPhase2
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateDone:
		return "done"
	case StateAwaitingManifestFirstRun:
		return "awaiting_manifest_first_run"
	case StateAwaitingManifest:
		return "awaiting_manifest"
	case StateReadyForPhase2:
		return "ready_for_phase2"
	default:
		return "unknown"
	}
}

// transitions is the state a directory is left in after a successful run.
var transitions = map[State]State{
	StateDone:                     StateDone,
	StateAwaitingManifestFirstRun: StateAwaitingManifest,
	StateAwaitingManifest:         StateAwaitingManifest,
	StateReadyForPhase2:           StateDone,
}

// Next returns the state that follows a successful run from s.
func (s State) Next() State {
	return transitions[s]
}

// StateFor maps a marker snapshot to a state. The completion marker wins
// over everything else, and a manifest wins over the instructions file.
func StateFor(m workspace.Markers) State {
	switch {
	case m.Complete:
		return StateDone
	case m.Manifest:
		return StateReadyForPhase2
	case m.Instructions:
		return StateAwaitingManifest
	default:
		return StateAwaitingManifestFirstRun
	}
}
