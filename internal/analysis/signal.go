package analysis

import (
	"fmt"

	"evidencelens/adapters/coercer"
	"evidencelens/domain/core"
	"evidencelens/domain/evidence"
	"evidencelens/internal"
	"evidencelens/internal/errors"
)

const (
	// minSignalPoints is the count a column must exceed to be analyzed.
	minSignalPoints = 10
	// numericFallbackColumns is how many numeric columns stand in when no
	// amplitude column exists.
	numericFallbackColumns = 2
)

// SignalAnalyzer computes per-column signal statistics.
type SignalAnalyzer struct {
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewSignalAnalyzer creates a signal analyzer.
func NewSignalAnalyzer(c *coercer.TypeCoercer, logger *internal.Logger) *SignalAnalyzer {
	return &SignalAnalyzer{coercer: c, logger: logger.With("signal")}
}

// SelectColumns returns every amplitude column, or the first two numeric
// columns when there is none.
func SelectColumns(columns evidence.ColumnAnalysis) []string {
	selected := columns.ColumnsWithRole(evidence.RoleAmplitude)
	if len(selected) > 0 {
		return selected
	}
	numeric := columns.ColumnsWithRole(evidence.RoleNumeric)
	if len(numeric) > numericFallbackColumns {
		numeric = numeric[:numericFallbackColumns]
	}
	return numeric
}

// Analyze runs every selected column independently. Columns with too few
// numeric values are left out; a failing column is recorded with its error
// and does not affect the others.
func (a *SignalAnalyzer) Analyze(table *evidence.Table, columns evidence.ColumnAnalysis) evidence.SignalAnalysis {
	var results evidence.SignalAnalysis
	for _, col := range SelectColumns(columns) {
		series := a.coercer.NumericSeries(table.Column(col))
		if len(series) <= minSignalPoints {
			a.logger.Debug("skipping %q: %d numeric values", col, len(series))
			continue
		}
		stats, err := a.analyzeColumn(series)
		if err != nil {
			a.logger.Warn("%v", errors.ColumnAnalysisFailure(col, err))
			results.Set(col, evidence.SignalResult{Err: err.Error()})
			continue
		}
		results.Set(col, evidence.SignalResult{Stats: stats})
	}
	return results
}

// analyzeColumn turns a panic in a numeric routine into a column error so a
// single column cannot abort the batch.
func (a *SignalAnalyzer) analyzeColumn(series []float64) (stats *evidence.SignalStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			stats, err = nil, fmt.Errorf("%v", r)
		}
	}()

	if len(series) == 0 {
		return nil, core.ErrInsufficientData
	}
	summary, err := DescribeSeries(series)
	if err != nil {
		return nil, err
	}
	stats = &evidence.SignalStats{
		Mean: summary.Mean,
		Std:  summary.Std,
		Max:  summary.Max,
		Min:  summary.Min,
		RMS:  summary.RMS,
	}
	if len(series) >= MinSpectrumPoints {
		stats.SpectrumSummary = Spectrum(series)
	}
	stats.TrendSummary = Trend(series)
	if err := checkFinite(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// checkFinite rejects stats that cannot be rendered as JSON numbers.
func checkFinite(s *evidence.SignalStats) error {
	if s.SpectrumSummary != nil {
		if !Finite(s.PeakMagnitude) {
			return fmt.Errorf("%w: fft peak magnitude %g", core.ErrNonFiniteStatistic, s.PeakMagnitude)
		}
		for _, peak := range s.DominantFrequencies {
			if !Finite(peak.Frequency, peak.Magnitude) {
				return fmt.Errorf("%w: fft magnitude %g", core.ErrNonFiniteStatistic, peak.Magnitude)
			}
		}
	}
	if !Finite(s.Slope, s.OutlierPercentage) {
		return fmt.Errorf("%w: trend slope %g", core.ErrNonFiniteStatistic, s.Slope)
	}
	return nil
}
