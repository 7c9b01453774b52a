package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maauso/chapterize/internal/audio"
	"github.com/maauso/chapterize/internal/workspace"
)

// phase1Pattern names the numbered files produced by the bulk split.
const phase1Pattern = "%02d.mp3"

// runPhase1 joins every recording into concat.mp3 and cuts it at the longest
// silences. An existing concat.mp3 is taken as already joined, so a rerun
// after an interruption never touches the deleted originals again.
func (w *Workflow) runPhase1(ctx context.Context, out *Outcome) error {
	concat := workspace.ConcatFilename

	exists, err := w.ws.Exists(concat)
	if err != nil {
		return err
	}

	if !exists {
		if err := w.concatenateInputs(ctx, out); err != nil {
			return err
		}
	} else {
		w.logger.Info("reusing existing concatenation", slog.String("file", concat))
	}

	intervals, err := w.detectSilence(ctx, concat, out)
	if err != nil {
		return err
	}

	points := audio.BulkSplitPoints(intervals, w.opts.BulkSplitCap)
	w.logger.Info("computed split points",
		slog.Int("silences", len(intervals)),
		slog.Int("split_points", len(points)),
	)

	if len(points) == 0 {
		// Nothing to cut at: the whole recording becomes the first file.
		if err := w.ws.Rename(concat, fmt.Sprintf(phase1Pattern, 0)); err != nil {
			return err
		}
	} else {
		res, err := w.tool.SegmentSplit(ctx, concat, points, phase1Pattern)
		if err != nil {
			return fmt.Errorf("split %s: %w", concat, err)
		}
		if err := w.checkResult("split", concat, res, out); err != nil {
			return err
		}
		if err := w.ws.Remove(ctx, concat); err != nil {
			return err
		}
	}

	segments, err := w.ws.SegmentFiles(".", 2)
	if err != nil {
		return err
	}
	out.Chapters = append(out.Chapters, ChapterResult{
		Dir:         ".",
		SplitPoints: points,
		Segments:    segments,
	})
	w.logger.Info("done with bulk split", slog.Int("segments", len(segments)))
	return nil
}

// concatenateInputs joins the top-level recordings and deletes them.
func (w *Workflow) concatenateInputs(ctx context.Context, out *Outcome) error {
	concat := workspace.ConcatFilename

	inputs, err := w.ws.AudioFiles(ctx, concat)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return ErrNoAudioFiles
	}

	w.probeInputs(ctx, inputs, out)

	res, err := w.tool.Concatenate(ctx, inputs, concat)
	if err != nil {
		return fmt.Errorf("concatenate inputs: %w", err)
	}
	if err := w.checkResult("concatenate", concat, res, out); err != nil {
		return err
	}

	if err := w.ws.Remove(ctx, inputs...); err != nil {
		return err
	}

	w.logger.Info("done with concatenation", slog.Int("inputs", len(inputs)))
	return nil
}
