package analysis

import (
	"math"

	"evidencelens/domain/evidence"
)

// slopeThreshold is the fixed absolute slope separating a signal trend from
// a stable signal. Key indicators use a std-scaled threshold instead.
const slopeThreshold = 0.01

// Trend fits the signal slope and counts rolling two-sigma outliers.
func Trend(series []float64) *evidence.TrendSummary {
	slope := Slope(series)
	outliers := CountOutliers(series, OutlierWindow(len(series)))
	return &evidence.TrendSummary{
		Slope:             slope,
		Direction:         SignalDirection(slope),
		OutlierCount:      outliers,
		OutlierPercentage: percentage(outliers, len(series)),
	}
}

// SignalDirection classifies a slope against the fixed threshold.
func SignalDirection(slope float64) evidence.TrendDirection {
	switch {
	case slope > slopeThreshold:
		return evidence.TrendIncreasing
	case slope < -slopeThreshold:
		return evidence.TrendDecreasing
	}
	return evidence.TrendStable
}

// ScaledDirection classifies the slope of series against a tenth of its own
// standard deviation. Fewer than ten values are insufficient.
func ScaledDirection(series []float64) evidence.TrendDirection {
	if len(series) < 10 {
		return evidence.TrendInsufficientData
	}
	slope := Slope(series)
	limit := 0.1 * SampleStd(series)
	switch {
	case slope > limit:
		return evidence.TrendIncreasing
	case slope < -limit:
		return evidence.TrendDecreasing
	}
	return evidence.TrendStable
}

// OutlierWindow is max(1, min(10, n/4)).
func OutlierWindow(n int) int {
	w := n / 4
	if w > 10 {
		w = 10
	}
	if w < 1 {
		w = 1
	}
	return w
}

// CountOutliers counts points further than two rolling standard deviations
// from the rolling mean. Points without a defined, non-zero rolling std are
// never flagged.
func CountOutliers(series []float64, window int) int {
	_, scaled := normalize(series)
	means, stds := RollingStats(scaled, window)
	count := 0
	for i, v := range scaled {
		if math.IsNaN(means[i]) || math.IsNaN(stds[i]) || stds[i] <= 0 {
			continue
		}
		if math.Abs(v-means[i]) > 2*stds[i] {
			count++
		}
	}
	return count
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}
