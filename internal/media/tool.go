// Package media wraps the ffmpeg command line for the three operations the
// chapterizer needs: concat demuxing, silence detection and segment splitting.
package media

import "context"

// Tool defines the ffmpeg operations used by the chapterization workflow.
//
// Every call blocks until the subprocess exits. A nonzero exit status is
// reported through Result rather than the returned error, so callers choose
// whether a failed invocation is fatal.
type Tool interface {
	// Concatenate joins inputs, in order, into output using the concat demuxer.
	// The temporary playlist is removed whether or not ffmpeg succeeds.
	Concatenate(ctx context.Context, inputs []string, output string) (*Result, error)

	// DetectSilence runs the silencedetect filter over input and captures
	// ffmpeg's diagnostic stream in Result.Stderr.
	DetectSilence(ctx context.Context, input string) (*Result, error)

	// SegmentSplit cuts input at the given ascending points (seconds) into
	// numbered files matching the printf-style pattern.
	SegmentSplit(ctx context.Context, input string, points []float64, pattern string) (*Result, error)
}
