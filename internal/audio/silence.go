// Package audio turns ffmpeg silencedetect diagnostics into silence intervals
// and chooses the points at which chapter audio is cut.
package audio

import (
	"strconv"
	"strings"
)

// Diagnostic tokens emitted by the silencedetect filter.
const (
	silenceStartToken = "silence_start:"
	silenceEndToken   = "silence_end:"
)

// SilenceInterval is a detected stretch of silence, in seconds.
type SilenceInterval struct {
	Start float64
	End   float64
}

// Duration returns the length of the interval in seconds.
func (s SilenceInterval) Duration() float64 {
	return s.End - s.Start
}

// ParseSilenceOutput extracts silence intervals from ffmpeg's diagnostic
// stream. The text is scanned as whitespace separated tokens: the token after
// "silence_start:" opens an interval and the token after "silence_end:"
// closes and emits it. Intervals are returned in the order they appear, which
// is chronological. A trailing start without an end is dropped, as happens
// when the audio is still silent at end of stream. A marker followed by a
// token that is not a number is skipped, and so is an end with no start.
func ParseSilenceOutput(output string) []SilenceInterval {
	var (
		intervals   []SilenceInterval
		pending     SilenceInterval
		haveStart   bool
		expectStart bool
		expectEnd   bool
	)

	for _, word := range strings.Fields(output) {
		switch {
		case expectStart:
			expectStart = false
			v, err := strconv.ParseFloat(word, 64)
			if err != nil {
				continue
			}
			pending.Start = v
			haveStart = true
		case expectEnd:
			expectEnd = false
			v, err := strconv.ParseFloat(word, 64)
			if err != nil || !haveStart {
				continue
			}
			pending.End = v
			intervals = append(intervals, pending)
			pending = SilenceInterval{}
			haveStart = false
		case word == silenceStartToken:
			expectStart = true
		case word == silenceEndToken:
			expectEnd = true
		}
	}

	return intervals
}
