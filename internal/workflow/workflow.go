package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maauso/chapterize/internal/audio"
	"github.com/maauso/chapterize/internal/manifest"
	"github.com/maauso/chapterize/internal/media"
	"github.com/maauso/chapterize/internal/probe"
	"github.com/maauso/chapterize/internal/workspace"
)

// ErrNoAudioFiles is returned when Phase 1 finds nothing to join.
var ErrNoAudioFiles = errors.New("no audio files found in working directory")

// completeNote is the content of the completion marker.
const completeNote = "delete this file to restart process\n"

// Options tunes the splitting heuristics and the tool failure policy.
type Options struct {
	// BulkSplitCap is how many of the longest silences Phase 1 cuts at.
	BulkSplitCap int
	// MinSpacing is the minimum distance in seconds between Phase 2 cuts.
	MinSpacing float64
	// StrictTool makes a failed ffmpeg invocation abort the run. When false,
	// failures are logged and the run carries on.
	StrictTool bool
}

// DefaultOptions returns the standard chapterization settings.
func DefaultOptions() Options {
	return Options{
		BulkSplitCap: audio.DefaultBulkSplitCap,
		MinSpacing:   audio.DefaultMinSpacing,
	}
}

// ChapterResult describes one split that the run performed.
type ChapterResult struct {
	// Dir is the directory holding the output, "." for Phase 1.
	Dir string
	// Members are the files joined for this chapter.
	Members []string
	// SplitPoints are the cut points passed to ffmpeg, in seconds.
	SplitPoints []float64
	// Segments are the numbered files found after the split.
	Segments []string
}

// Outcome summarises a run.
type Outcome struct {
	// State is the state the run started in.
	State State
	// Next is the state the directory is left in.
	Next State
	// Message is the one-line status for the user.
	Message string
	// Chapters lists every split performed, in order.
	Chapters []ChapterResult
	// Inputs describes the probed input recordings.
	Inputs probe.Summary
	// ToolFailures counts ffmpeg invocations that exited unsuccessfully.
	ToolFailures int
}

// Workflow chapterizes one working directory.
type Workflow struct {
	ws     *workspace.Workspace
	tool   media.Tool
	prober probe.Prober
	logger *slog.Logger
	opts   Options
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithOptions replaces the splitting options.
func WithOptions(opts Options) Option {
	return func(w *Workflow) {
		w.opts = opts
	}
}

// WithProber enables probing of input durations.
func WithProber(p probe.Prober) Option {
	return func(w *Workflow) {
		w.prober = p
	}
}

// New creates a Workflow over ws that runs ffmpeg through tool.
func New(ws *workspace.Workspace, tool media.Tool, logger *slog.Logger, opts ...Option) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Workflow{
		ws:     ws,
		tool:   tool,
		logger: logger,
		opts:   DefaultOptions(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run resolves the directory's state once and performs the matching step.
func (w *Workflow) Run(ctx context.Context) (*Outcome, error) {
	unlock, err := w.ws.Lock()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			w.logger.Warn("failed to release workspace lock", slog.String("error", err.Error()))
		}
	}()

	markers, err := w.ws.Markers()
	if err != nil {
		return nil, fmt.Errorf("read markers: %w", err)
	}

	state := StateFor(markers)
	w.logger.Info("resolved workflow state",
		slog.String("dir", w.ws.Root()),
		slog.String("state", state.String()),
		slog.Bool("manifest", markers.Manifest),
		slog.Bool("instructions", markers.Instructions),
		slog.Bool("complete", markers.Complete),
	)

	out := &Outcome{State: state}

	switch state {
	case StateDone:
		out.Message = fmt.Sprintf("Process is complete. To start over, delete %s", workspace.CompleteFilename)

	case StateAwaitingManifest:
		out.Message = fmt.Sprintf("read %s, or delete it to start over", manifest.InstructionsFilename)

	case StateAwaitingManifestFirstRun:
		if err := w.runPhase1(ctx, out); err != nil {
			return out, fmt.Errorf("phase 1: %w", err)
		}
		if err := w.ws.WriteFile(manifest.InstructionsFilename, manifest.Instructions()); err != nil {
			return out, err
		}
		out.Message = fmt.Sprintf("done with step 1, read %s to continue", manifest.InstructionsFilename)

	case StateReadyForPhase2:
		if err := w.runPhase2(ctx, out); err != nil {
			return out, fmt.Errorf("phase 2: %w", err)
		}
		if err := w.ws.WriteFile(workspace.CompleteFilename, completeNote); err != nil {
			return out, err
		}
		if err := w.ws.Remove(ctx, manifest.Filename, manifest.InstructionsFilename); err != nil {
			return out, err
		}
		out.Message = fmt.Sprintf("done with step 2, %d chapters written", len(out.Chapters))
	}

	out.Next = state.Next()
	return out, nil
}

// detectSilence runs silence detection on input and parses the result.
func (w *Workflow) detectSilence(ctx context.Context, input string, out *Outcome) ([]audio.SilenceInterval, error) {
	res, err := w.tool.DetectSilence(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("detect silence in %s: %w", input, err)
	}
	if err := w.checkResult("detect silence", input, res, out); err != nil {
		return nil, err
	}

	intervals := audio.ParseSilenceOutput(res.Stderr)
	w.logger.Debug("silence detected",
		slog.String("file", input),
		slog.Int("intervals", len(intervals)),
	)
	return intervals, nil
}

// checkResult applies the tool failure policy to a finished invocation.
func (w *Workflow) checkResult(op, target string, res *media.Result, out *Outcome) error {
	if !res.Failed() {
		return nil
	}

	out.ToolFailures++
	if w.opts.StrictTool {
		return fmt.Errorf("%s %s: %w", op, target, res.AsError())
	}

	w.logger.Warn("ffmpeg failed, continuing",
		slog.String("op", op),
		slog.String("file", target),
		slog.Int("exit_code", res.ExitCode),
		slog.String("stderr", tail(res.Stderr, 512)),
	)
	return nil
}

func (w *Workflow) probeInputs(ctx context.Context, paths []string, out *Outcome) {
	if w.prober == nil || len(paths) == 0 {
		return
	}
	sum := w.prober.Probe(ctx, paths)
	out.Inputs.Merge(sum)
	w.logger.Info("probed input audio",
		slog.Int("files", len(sum.Files)),
		slog.Int("unreadable", sum.Failed),
		slog.String("total_duration", sum.Total.String()),
	)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
