// Package probe reads the duration of input recordings so a run can report
// how much audio it is about to join. Probing never blocks the workflow: a
// file that cannot be read is counted and skipped.
package probe

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/simonhull/audiometa"
)

// Info is what was learned about one input file.
type Info struct {
	Path     string
	Format   string
	Duration time.Duration
	Err      error
}

// Summary aggregates the probe results for a set of inputs.
type Summary struct {
	Files  []Info
	Total  time.Duration
	Failed int
}

// Merge adds the results of o to s.
func (s *Summary) Merge(o Summary) {
	s.Files = append(s.Files, o.Files...)
	s.Total += o.Total
	s.Failed += o.Failed
}

// Prober reads audio metadata for a list of files.
type Prober interface {
	Probe(ctx context.Context, paths []string) Summary
}

// MetadataProber implements Prober with audiometa.
type MetadataProber struct {
	root   string
	logger *slog.Logger
}

// NewMetadataProber creates a prober resolving relative paths against root.
func NewMetadataProber(root string, logger *slog.Logger) *MetadataProber {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataProber{root: root, logger: logger}
}

// Probe implements Prober.
func (p *MetadataProber) Probe(ctx context.Context, paths []string) Summary {
	var sum Summary
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		info := p.probeOne(ctx, path)
		if info.Err != nil {
			sum.Failed++
			p.logger.Warn("could not read audio metadata",
				slog.String("file", path),
				slog.String("error", info.Err.Error()),
			)
		} else {
			sum.Total += info.Duration
		}
		sum.Files = append(sum.Files, info)
	}
	return sum
}

func (p *MetadataProber) probeOne(ctx context.Context, path string) Info {
	info := Info{Path: path}

	full := path
	if p.root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(p.root, path)
	}

	file, err := audiometa.OpenContext(ctx, full)
	if err != nil {
		info.Err = err
		return info
	}
	defer func() { _ = file.Close() }()

	info.Format = file.Format.String()
	info.Duration = file.Audio.Duration
	return info
}

// Verify interface implementation at compile time.
var _ Prober = (*MetadataProber)(nil)
