package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/maauso/chapterize/internal/audio"
	"github.com/maauso/chapterize/internal/manifest"
	"github.com/maauso/chapterize/internal/workspace"
)

const (
	// chapterPattern names the numbered files inside a chapter directory.
	chapterPattern = "%03d.mp3"
	// wholeChapter is the single file of a chapter with no cut points.
	wholeChapter = "000.mp3"
)

// runPhase2 processes the manifest one chapter at a time. Each chapter is
// fully split and its source files deleted before the next manifest line is
// read.
func (w *Workflow) runPhase2(ctx context.Context, out *Outcome) error {
	rc, err := w.ws.Open(manifest.Filename)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	for group, err := range manifest.Parse(rc) {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}

		if err := w.ws.MakeChapterDir(group.Dir); err != nil {
			return err
		}

		if len(group.Members) == 0 {
			w.logger.Info("chapter has no files", slog.String("dir", group.Dir))
			continue
		}

		chapter, err := w.splitChapter(ctx, group, out)
		if err != nil {
			return fmt.Errorf("chapter %s: %w", group.Dir, err)
		}
		out.Chapters = append(out.Chapters, chapter)
		w.logger.Info("done with chapter",
			slog.String("dir", group.Dir),
			slog.Int("members", len(group.Members)),
			slog.Int("segments", len(chapter.Segments)),
		)
	}
	return nil
}

// splitChapter joins a chapter's members and splits the result evenly.
func (w *Workflow) splitChapter(ctx context.Context, g manifest.Group, out *Outcome) (ChapterResult, error) {
	concat := filepath.Join(g.Dir, workspace.ConcatFilename)

	w.probeInputs(ctx, g.Members, out)

	res, err := w.tool.Concatenate(ctx, g.Members, concat)
	if err != nil {
		return ChapterResult{}, fmt.Errorf("concatenate: %w", err)
	}
	if err := w.checkResult("concatenate", concat, res, out); err != nil {
		return ChapterResult{}, err
	}

	intervals, err := w.detectSilence(ctx, concat, out)
	if err != nil {
		return ChapterResult{}, err
	}

	points := audio.EvenSplitPoints(intervals, w.opts.MinSpacing)
	if len(points) == 0 {
		if err := w.ws.Rename(concat, filepath.Join(g.Dir, wholeChapter)); err != nil {
			return ChapterResult{}, err
		}
	} else {
		res, err := w.tool.SegmentSplit(ctx, concat, points, filepath.Join(g.Dir, chapterPattern))
		if err != nil {
			return ChapterResult{}, fmt.Errorf("split: %w", err)
		}
		if err := w.checkResult("split", concat, res, out); err != nil {
			return ChapterResult{}, err
		}
		if err := w.ws.Remove(ctx, concat); err != nil {
			return ChapterResult{}, err
		}
	}

	if err := w.ws.Remove(ctx, g.Members...); err != nil {
		return ChapterResult{}, err
	}

	segments, err := w.ws.SegmentFiles(g.Dir, 3)
	if err != nil {
		return ChapterResult{}, err
	}

	return ChapterResult{
		Dir:         g.Dir,
		Members:     g.Members,
		SplitPoints: points,
		Segments:    segments,
	}, nil
}
