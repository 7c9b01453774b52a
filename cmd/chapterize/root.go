package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maauso/chapterize/internal/bootstrap"
	"github.com/maauso/chapterize/internal/config"
	"github.com/maauso/chapterize/internal/media"
	"github.com/maauso/chapterize/internal/report"
)

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chapterize [dir]",
		Short: "Split a folder of audiobook recordings into chapters at silences",
		Long: `chapterize works in two steps, one per invocation.

The first run joins every .mp3, .m4a and .m4b file in the directory, cuts the
result at its longest silences into numbered files and writes instructions for
grouping those files into chapters. After the groupings file is written, the
second run joins each chapter and cuts it at silences at least four minutes
apart. Later runs do nothing until chapterization-complete.txt is deleted.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cmd, dir)
		},
	}
}

func run(ctx context.Context, cmd *cobra.Command, dir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting chapterize",
		slog.String("dir", dir),
		slog.String("log_format", cfg.LogFormat),
		slog.String("log_level", cfg.LogLevel),
		slog.Bool("strict_tool", cfg.StrictTool),
	)

	if err := media.CheckAvailable(cfg.FFmpegPath); err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}

	deps, err := bootstrap.NewDependencies(cfg, logger, dir)
	if err != nil {
		return err
	}

	out, err := deps.Workflow.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("run finished",
		slog.String("state", out.State.String()),
		slog.String("next", out.Next.String()),
		slog.Int("chapters", len(out.Chapters)),
		slog.Int("tool_failures", out.ToolFailures),
	)

	return report.Write(cmd.OutOrStdout(), out)
}
