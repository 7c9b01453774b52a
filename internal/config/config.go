// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// ErrInvalidConfig is returned when a loaded value fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all configuration for the chapterizer.
type Config struct {
	// FFmpeg settings
	FFmpegPath string `env:"FFMPEG_PATH, default=ffmpeg" json:"ffmpeg_path" validate:"required"`

	// Silence detection settings
	SilenceThreshDB float64 `env:"CHAPTERIZE_SILENCE_THRESH_DB, default=-30" json:"silence_thresh_db" validate:"lt=0"`
	MinSilenceSec   float64 `env:"CHAPTERIZE_MIN_SILENCE_SEC, default=0.5" json:"min_silence_sec" validate:"gt=0"`

	// Splitting settings
	BulkSplitCap  int     `env:"CHAPTERIZE_BULK_SPLIT_CAP, default=99" json:"bulk_split_cap" validate:"min=1"`
	MinSpacingSec float64 `env:"CHAPTERIZE_MIN_SPACING_SEC, default=240" json:"min_spacing_sec" validate:"gt=0"`

	// Failure policy
	StrictTool bool `env:"CHAPTERIZE_STRICT_TOOL, default=false" json:"strict_tool"`

	// Reporting
	ProbeInputs bool `env:"CHAPTERIZE_PROBE_INPUTS, default=true" json:"probe_inputs"`

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format" validate:"oneof=text json"`
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level" validate:"oneof=debug info warn warning error"`
}

// Load reads configuration from environment variables using go-envconfig
// and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	// Log values are compared case-insensitively.
	probe := *c
	probe.LogFormat = strings.ToLower(c.LogFormat)
	probe.LogLevel = strings.ToLower(c.LogLevel)

	if err := validator.New().Struct(&probe); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidConfig, fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs; otherwise human-readable
// text. Logs go to stderr, leaving stdout for the run summary.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a one-line representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{FFmpegPath: %s, SilenceThreshDB: %g, MinSilenceSec: %g, BulkSplitCap: %d, MinSpacingSec: %g, StrictTool: %t, ProbeInputs: %t, LogFormat: %s, LogLevel: %s}",
		c.FFmpegPath,
		c.SilenceThreshDB,
		c.MinSilenceSec,
		c.BulkSplitCap,
		c.MinSpacingSec,
		c.StrictTool,
		c.ProbeInputs,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
