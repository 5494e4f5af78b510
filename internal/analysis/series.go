package analysis

import (
	"fmt"
	"math"

	"evidencelens/domain/core"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeriesSummary holds the descriptive statistics of a numeric series.
type SeriesSummary struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
	RMS  float64
}

// overflowGuard is the magnitude above which a series is divided by its
// largest absolute value before anything is squared or summed.
const overflowGuard = 1e100

// DescribeSeries computes mean, sample standard deviation, extremes and
// root-mean-square. A single value has zero spread. Statistics that do not
// fit in a float64 are reported as ErrNonFiniteStatistic.
func DescribeSeries(series []float64) (SeriesSummary, error) {
	var d SeriesSummary
	var err error
	if d.Min, err = stats.Min(series); err != nil {
		return d, err
	}
	if d.Max, err = stats.Max(series); err != nil {
		return d, err
	}
	scale, scaled := normalize(series)
	if d.Mean, err = stats.Mean(scaled); err != nil {
		return d, err
	}
	d.Mean *= scale
	d.Std = SampleStd(series)
	d.RMS = scale * math.Sqrt(floats.Dot(scaled, scaled)/float64(len(scaled)))
	if !Finite(d.Mean, d.Std, d.Min, d.Max, d.RMS) {
		return d, fmt.Errorf("%w: mean %g, std %g, rms %g", core.ErrNonFiniteStatistic, d.Mean, d.Std, d.RMS)
	}
	return d, nil
}

// SampleStd is the n-1 normalized standard deviation, 0 for fewer than two values.
func SampleStd(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	scale, scaled := normalize(series)
	std, err := stats.StandardDeviationSample(scaled)
	if err != nil {
		return 0
	}
	return scale * std
}

// Slope fits a least-squares line against the index sequence and returns its
// leading coefficient.
func Slope(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	scale, scaled := normalize(series)
	index := make([]float64, len(scaled))
	for i := range index {
		index[i] = float64(i)
	}
	_, beta := stat.LinearRegression(index, scaled, nil, false)
	return scale * beta
}

// Correlation is the Pearson correlation of x and y, computed on normalized
// copies so large magnitudes cannot overflow the cross products.
func Correlation(x, y []float64) (float64, error) {
	_, sx := normalize(x)
	_, sy := normalize(y)
	return stats.Correlation(sx, sy)
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// normalize returns series divided by its largest magnitude, and that
// magnitude, when the magnitude exceeds overflowGuard. Smaller series are
// returned as is with a scale of one.
func normalize(series []float64) (float64, []float64) {
	scale := floats.Norm(series, math.Inf(1))
	if scale <= overflowGuard || !Finite(scale) {
		return 1, series
	}
	scaled := make([]float64, len(series))
	for i, v := range series {
		scaled[i] = v / scale
	}
	return scale, scaled
}

// RollingStats returns the trailing-window mean and sample standard deviation
// at every position. Positions before the first full window, and every
// position of a window of one, are NaN.
func RollingStats(series []float64, window int) (means, stds []float64) {
	means = make([]float64, len(series))
	stds = make([]float64, len(series))
	for i := range series {
		if window < 1 || i < window-1 {
			means[i], stds[i] = math.NaN(), math.NaN()
			continue
		}
		w := series[i-window+1 : i+1]
		means[i] = stat.Mean(w, nil)
		if window < 2 {
			stds[i] = math.NaN()
			continue
		}
		stds[i] = stat.StdDev(w, nil)
	}
	return means, stds
}
