package audio

import (
	"slices"
	"sort"
)

const (
	// DefaultBulkSplitCap is how many of the longest silences become cut
	// points when the whole recording is split in one pass.
	DefaultBulkSplitCap = 99

	// DefaultMinSpacing is the minimum distance in seconds between cuts
	// when a chapter is split evenly.
	DefaultMinSpacing = 240.0

	// longSilence is the duration at which a cut moves from the middle of
	// the silence to shortly before its end.
	longSilence = 1.0

	// leadIn is how much silence is kept before speech resumes on a long gap.
	leadIn = 0.5
)

// PointsFromIntervals converts each silence into one cut point. Silences of
// at least one second are cut half a second before they end; shorter ones are
// cut at their midpoint. The output order matches the input order.
func PointsFromIntervals(intervals []SilenceInterval) []float64 {
	points := make([]float64, 0, len(intervals))
	for _, iv := range intervals {
		point := iv.End - leadIn
		if iv.Duration() < longSilence {
			point = iv.Start + iv.Duration()/2
		}
		points = append(points, point)
	}
	return points
}

// ReduceBySpacing keeps a point only if it lies at least minSpacing seconds
// after the previously kept point. Scanning starts from a virtual point at
// 0.0, so a first cut earlier than minSpacing is dropped. points must be
// sorted ascending.
func ReduceBySpacing(points []float64, minSpacing float64) []float64 {
	reduced := make([]float64, 0, len(points))
	last := 0.0
	for _, p := range points {
		if p-last >= minSpacing {
			reduced = append(reduced, p)
			last = p
		}
	}
	return reduced
}

// LongestIntervals returns up to n intervals ordered by duration, longest
// first. Equal durations keep their original order. The input is not modified.
func LongestIntervals(intervals []SilenceInterval, n int) []SilenceInterval {
	sorted := slices.Clone(intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Duration() > sorted[j].Duration()
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// BulkSplitPoints picks cut points for a whole recording: only the maxCuts
// longest silences are used, on the assumption that long pauses mark real
// track boundaries. The result is sorted ascending, as the segment muxer
// requires.
func BulkSplitPoints(intervals []SilenceInterval, maxCuts int) []float64 {
	points := PointsFromIntervals(LongestIntervals(intervals, maxCuts))
	slices.Sort(points)
	return points
}

// EvenSplitPoints picks cut points for one chapter: every silence is a
// candidate and the sorted candidates are thinned to at most one cut per
// minSpacing seconds.
func EvenSplitPoints(intervals []SilenceInterval, minSpacing float64) []float64 {
	points := PointsFromIntervals(intervals)
	slices.Sort(points)
	return ReduceBySpacing(points, minSpacing)
}
