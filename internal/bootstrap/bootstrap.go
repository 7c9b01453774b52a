// Package bootstrap wires the chapterizer's dependencies from configuration.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/maauso/chapterize/internal/config"
	"github.com/maauso/chapterize/internal/media"
	"github.com/maauso/chapterize/internal/probe"
	"github.com/maauso/chapterize/internal/workflow"
	"github.com/maauso/chapterize/internal/workspace"
)

// Dependencies holds everything a run needs.
type Dependencies struct {
	Workspace *workspace.Workspace
	Tool      *media.FFmpegTool
	Workflow  *workflow.Workflow
}

// NewDependencies creates the workspace for dir and the workflow over it.
func NewDependencies(cfg *config.Config, logger *slog.Logger, dir string) (*Dependencies, error) {
	ws, err := workspace.New(dir)
	if err != nil {
		return nil, fmt.Errorf("open working directory: %w", err)
	}

	// ffmpeg runs inside the workspace so relative playlist entries resolve.
	tool := media.NewFFmpegTool(cfg.FFmpegPath,
		media.WithWorkDir(ws.Root()),
		media.WithSilenceOpts(media.SilenceOpts{
			ThreshDB:       cfg.SilenceThreshDB,
			MinDurationSec: cfg.MinSilenceSec,
		}),
	)

	opts := []workflow.Option{
		workflow.WithOptions(workflow.Options{
			BulkSplitCap: cfg.BulkSplitCap,
			MinSpacing:   cfg.MinSpacingSec,
			StrictTool:   cfg.StrictTool,
		}),
	}
	if cfg.ProbeInputs {
		opts = append(opts, workflow.WithProber(probe.NewMetadataProber(ws.Root(), logger)))
	}

	logger.Debug("dependencies initialised",
		slog.String("dir", ws.Root()),
		slog.String("ffmpeg", cfg.FFmpegPath),
		slog.Bool("strict_tool", cfg.StrictTool),
		slog.Bool("probe_inputs", cfg.ProbeInputs),
	)

	return &Dependencies{
		Workspace: ws,
		Tool:      tool,
		Workflow:  workflow.New(ws, tool, logger, opts...),
	}, nil
}
