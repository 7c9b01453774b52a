package media

import "fmt"

// Result describes one completed ffmpeg invocation.
type Result struct {
	// Args are the arguments passed to ffmpeg, without the binary name.
	Args []string
	// ExitCode is the process exit status. Zero on success.
	ExitCode int
	// Stderr is ffmpeg's diagnostic output.
	Stderr string
	// Err is the wait error for a nonzero exit, if any.
	Err error
}

// Failed reports whether ffmpeg exited unsuccessfully.
func (r *Result) Failed() bool {
	return r != nil && (r.ExitCode != 0 || r.Err != nil)
}

// AsError returns the failure as an *FFmpegError, or nil on success.
func (r *Result) AsError() error {
	if !r.Failed() {
		return nil
	}
	return &FFmpegError{
		Args:     r.Args,
		ExitCode: r.ExitCode,
		Stderr:   r.Stderr,
		Err:      r.Err,
	}
}

// FFmpegError represents an error from running ffmpeg, including the stderr output.
type FFmpegError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *FFmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %v (exit %d)\nargs: %v\nstderr: %s", e.Err, e.ExitCode, e.Args, e.Stderr)
}

func (e *FFmpegError) Unwrap() error {
	return e.Err
}
