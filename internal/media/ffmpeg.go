package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Static errors for media operations.
var (
	// ErrNoInputs is returned when Concatenate is called without inputs.
	ErrNoInputs = errors.New("no input paths provided")
	// ErrNoSplitPoints is returned when SegmentSplit is called without points.
	ErrNoSplitPoints = errors.New("no split points provided")
)

// SilenceOpts configures the silencedetect filter.
type SilenceOpts struct {
	// ThreshDB is the volume in dBFS below which audio counts as silence.
	// Default: -30 dBFS.
	ThreshDB float64

	// MinDurationSec is the shortest run of quiet audio reported as silence.
	// Default: 0.5 seconds.
	MinDurationSec float64
}

// DefaultSilenceOpts returns the detection settings used for chapter splitting.
func DefaultSilenceOpts() SilenceOpts {
	return SilenceOpts{
		ThreshDB:       -30,
		MinDurationSec: 0.5,
	}
}

// Filter renders the options as an ffmpeg audio filter expression.
func (o SilenceOpts) Filter() string {
	return fmt.Sprintf("silencedetect=n=%sdB:d=%s", formatSeconds(o.ThreshDB), formatSeconds(o.MinDurationSec))
}

// FFmpegTool implements Tool using the ffmpeg CLI.
type FFmpegTool struct {
	// ffmpegPath is the path to the ffmpeg binary. Defaults to "ffmpeg".
	ffmpegPath string
	// workDir is where ffmpeg runs and where playlists are written, so that
	// relative paths in a playlist resolve the same way as relative outputs.
	workDir string
	silence SilenceOpts
}

// Option configures an FFmpegTool.
type Option func(*FFmpegTool)

// WithWorkDir runs ffmpeg in dir. Relative input and output paths are
// resolved against it.
func WithWorkDir(dir string) Option {
	return func(t *FFmpegTool) {
		t.workDir = dir
	}
}

// WithSilenceOpts overrides the silencedetect settings.
func WithSilenceOpts(opts SilenceOpts) Option {
	return func(t *FFmpegTool) {
		t.silence = opts
	}
}

// NewFFmpegTool creates a new FFmpegTool.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found via PATH).
func NewFFmpegTool(ffmpegPath string, opts ...Option) *FFmpegTool {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	t := &FFmpegTool{
		ffmpegPath: ffmpegPath,
		silence:    DefaultSilenceOpts(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CheckAvailable reports whether the ffmpeg binary can be found.
func CheckAvailable(ffmpegPath string) error {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if _, err := exec.LookPath(ffmpegPath); err != nil {
		return fmt.Errorf("binary %q not found: %w", ffmpegPath, err)
	}
	return nil
}

// Concatenate implements Tool.Concatenate.
func (t *FFmpegTool) Concatenate(ctx context.Context, inputs []string, output string) (*Result, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	listFile, err := t.createConcatList(inputs)
	if err != nil {
		return nil, fmt.Errorf("create concat list: %w", err)
	}
	defer func() { _ = os.Remove(listFile) }()

	args := []string{
		"-f", "concat", // Use concat demuxer
		"-safe", "0", // Allow absolute and unusual paths
		"-i", listFile,
		output,
	}
	return t.run(ctx, args)
}

// DetectSilence implements Tool.DetectSilence.
func (t *FFmpegTool) DetectSilence(ctx context.Context, input string) (*Result, error) {
	args := []string{
		"-i", input,
		"-af", t.silence.Filter(),
		"-f", "null",
		"-",
	}
	// ffmpeg writes silencedetect output to stderr
	return t.run(ctx, args)
}

// SegmentSplit implements Tool.SegmentSplit.
func (t *FFmpegTool) SegmentSplit(ctx context.Context, input string, points []float64, pattern string) (*Result, error) {
	if len(points) == 0 {
		return nil, ErrNoSplitPoints
	}

	args := []string{
		"-v", "error",
		"-i", input,
		"-f", "segment",
		"-segment_times", JoinPoints(points),
		pattern,
	}
	return t.run(ctx, args)
}

// JoinPoints formats split points as the comma separated list expected by
// the segment muxer.
func JoinPoints(points []float64) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = formatSeconds(p)
	}
	return strings.Join(parts, ",")
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// createConcatList writes the playlist for the concat demuxer into the
// working directory. Paths are written verbatim inside single quotes.
func (t *FFmpegTool) createConcatList(inputs []string) (string, error) {
	dir := t.workDir
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "concat-list-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(ConcatList(inputs)); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write to concat list: %w", err)
	}

	// ffmpeg runs inside workDir, so a workDir-relative name would not resolve.
	abs, err := filepath.Abs(f.Name())
	if err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("resolve concat list: %w", err)
	}
	return abs, nil
}

// ConcatList renders inputs in the concat demuxer playlist format.
func ConcatList(inputs []string) string {
	var b strings.Builder
	for _, in := range inputs {
		fmt.Fprintf(&b, "file '%s'\n", in)
	}
	return b.String()
}

// run executes ffmpeg with stdin and stdout bound to the null device and
// stderr captured. It only returns an error when ffmpeg could not be started
// or the context ended; a nonzero exit is recorded on the Result.
func (t *FFmpegTool) run(ctx context.Context, args []string) (*Result, error) {
	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	cmd.Dir = t.workDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Args:   args,
		Stderr: stderr.String(),
	}
	if err == nil {
		return res, nil
	}

	if ctx.Err() != nil {
		return res, fmt.Errorf("ffmpeg cancelled: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		res.Err = err
		return res, nil
	}

	return res, fmt.Errorf("start ffmpeg: %w", err)
}

// Verify interface implementation at compile time.
var _ Tool = (*FFmpegTool)(nil)
