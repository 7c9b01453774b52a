package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/maauso/chapterize/internal/media"
)

// fakeTool stands in for ffmpeg by creating the files ffmpeg would create.
type fakeTool struct {
	root string
	// silence maps an input path to the diagnostic text DetectSilence returns.
	silence map[string]string
	// failOps makes the named operation ("concat", "detect", "split") exit 1
	// without producing output.
	failOps map[string]bool

	concatCalls [][]string
	splitCalls  [][]float64
	patterns    []string
}

func newFakeTool(root string) *fakeTool {
	return &fakeTool{
		root:    root,
		silence: make(map[string]string),
		failOps: make(map[string]bool),
	}
}

func (f *fakeTool) path(rel string) string {
	return filepath.Join(f.root, rel)
}

func (f *fakeTool) failed(op string, args ...string) *media.Result {
	return &media.Result{Args: args, ExitCode: 1, Stderr: op + " failed", Err: fmt.Errorf("exit status 1")}
}

func (f *fakeTool) Concatenate(_ context.Context, inputs []string, output string) (*media.Result, error) {
	f.concatCalls = append(f.concatCalls, append([]string(nil), inputs...))
	if f.failOps["concat"] {
		return f.failed("concat", output), nil
	}

	var b strings.Builder
	for _, in := range inputs {
		data, err := os.ReadFile(f.path(in))
		if err != nil {
			return f.failed("concat", in), nil
		}
		b.Write(data)
	}
	if err := os.WriteFile(f.path(output), []byte(b.String()), 0o600); err != nil {
		return nil, err
	}
	return &media.Result{Args: []string{output}}, nil
}

func (f *fakeTool) DetectSilence(_ context.Context, input string) (*media.Result, error) {
	if f.failOps["detect"] {
		return f.failed("detect", input), nil
	}
	return &media.Result{Args: []string{input}, Stderr: f.silence[input]}, nil
}

func (f *fakeTool) SegmentSplit(_ context.Context, input string, points []float64, pattern string) (*media.Result, error) {
	f.splitCalls = append(f.splitCalls, append([]float64(nil), points...))
	f.patterns = append(f.patterns, pattern)
	if f.failOps["split"] {
		return f.failed("split", input), nil
	}
	for i := 0; i <= len(points); i++ {
		if err := os.WriteFile(f.path(fmt.Sprintf(pattern, i)), []byte("segment"), 0o600); err != nil {
			return nil, err
		}
	}
	return &media.Result{Args: []string{input, pattern}}, nil
}

var _ media.Tool = (*fakeTool)(nil)

// mockTool is a testify mock of media.Tool for call expectations.
type mockTool struct {
	mock.Mock
}

func (m *mockTool) Concatenate(ctx context.Context, inputs []string, output string) (*media.Result, error) {
	args := m.Called(ctx, inputs, output)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Result), args.Error(1)
}

func (m *mockTool) DetectSilence(ctx context.Context, input string) (*media.Result, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Result), args.Error(1)
}

func (m *mockTool) SegmentSplit(ctx context.Context, input string, points []float64, pattern string) (*media.Result, error) {
	args := m.Called(ctx, input, points, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Result), args.Error(1)
}

var _ media.Tool = (*mockTool)(nil)

// silenceText renders intervals the way ffmpeg's silencedetect reports them.
func silenceText(pairs ...[2]float64) string {
	var b strings.Builder
	b.WriteString("Input #0, mp3, from 'concat.mp3':\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "[silencedetect @ 0x5581] silence_start: %g\n", p[0])
		fmt.Fprintf(&b, "[silencedetect @ 0x5581] silence_end: %g | silence_duration: %g\n", p[1], p[1]-p[0])
	}
	b.WriteString("size=N/A time=01:00:00.00 bitrate=N/A speed= 300x\n")
	return b.String()
}
