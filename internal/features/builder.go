package features

import (
	"fmt"

	"evidencelens/adapters/coercer"
	"evidencelens/domain/evidence"
	"evidencelens/internal"
	"evidencelens/internal/analysis"

	"github.com/montanaflynn/stats"
)

const (
	maxKeyIndicators     = 5
	maxAnomalies         = 5
	minSamplingPoints    = 10
	shortDurationRows    = 50
	limitedChannelCount  = 3
	missingDataThreshold = 90.0
	outlierAnomalyRate   = 5.0
	rmsAnomalySigmas     = 3.0
)

// Input is everything the builder consumes for one table.
type Input struct {
	Table      *evidence.Table
	Columns    evidence.ColumnAnalysis
	Signals    evidence.SignalAnalysis
	Assessment evidence.DiagnosticAssessment
	Config     evidence.EvidenceConfig
	Delimiter  string
}

// Builder assembles the feature envelope and the domain sub-features.
type Builder struct {
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewBuilder creates a feature builder.
func NewBuilder(c *coercer.TypeCoercer, logger *internal.Logger) *Builder {
	return &Builder{coercer: c, logger: logger.With("features")}
}

// Build detects the evidence type, fills the common envelope and appends the
// sub-features of the resolved domain.
func (b *Builder) Build(in Input) *evidence.Features {
	fileType := DetectEvidenceType(in.Columns, in.Config)
	domain := evidence.ResolveDomain(fileType)

	f := &evidence.Features{
		FileType:          fileType,
		Duration:          b.duration(in),
		SamplingRate:      b.samplingRate(in),
		KeyIndicators:     b.keyIndicators(in),
		DiagnosticQuality: qualityFlags(in),
		AnomalySummary:    anomalies(in.Signals),
		RowCount:          in.Table.RowCount(),
		ColumnCount:       in.Table.ColumnCount(),
		ColumnTypes:       in.Columns,
		SignalAnalysis:    in.Signals,
		Delimiter:         in.Delimiter,
		DataQuality:       in.Assessment.DataQuality,
		Domain:            domain,
	}

	switch domain {
	case evidence.DomainVibration:
		f.DomainFeatures = vibrationFeatures(in)
	case evidence.DomainThermal:
		f.DomainFeatures = b.thermalFeatures(in)
	case evidence.DomainProcess:
		f.DomainFeatures = processFeatures(in)
	case evidence.DomainAcoustic:
		f.DomainFeatures = acousticFeatures(in)
	default:
		f.DomainFeatures = b.genericFeatures(in)
	}
	b.logger.Debug("type %q -> %s builder, %d domain features", fileType, domain, len(f.DomainFeatures))
	return f
}

// series returns the coercible values of a column.
func (b *Builder) series(in Input, column string) []float64 {
	return b.coercer.NumericSeries(in.Table.Column(column))
}

// timeSeries returns the values of the first time column.
func (b *Builder) timeSeries(in Input) ([]float64, bool) {
	timeCols := in.Columns.ColumnsWithRole(evidence.RoleTime)
	if len(timeCols) == 0 {
		return nil, false
	}
	return b.series(in, timeCols[0]), true
}

func (b *Builder) duration(in Input) string {
	if values, ok := b.timeSeries(in); ok && len(values) > 1 {
		summary, err := analysis.DescribeSeries(values)
		if err == nil {
			return fmt.Sprintf("%.2f seconds", summary.Max-summary.Min)
		}
	}
	return fmt.Sprintf("%d data points", in.Table.RowCount())
}

func (b *Builder) samplingRate(in Input) string {
	values, ok := b.timeSeries(in)
	if !ok || len(values) <= minSamplingPoints {
		return "Unknown"
	}
	diffs := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs[i-1] = values[i] - values[i-1]
	}
	interval, err := stats.Mean(diffs)
	if err != nil || interval <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%.1f Hz", 1/interval)
}

func (b *Builder) keyIndicators(in Input) evidence.OrderedMap[evidence.KeyIndicator] {
	var indicators evidence.OrderedMap[evidence.KeyIndicator]
	cols := in.Columns.ColumnsWhere(evidence.ColumnRole.IsNumericLike)
	for _, col := range firstN(cols, maxKeyIndicators) {
		values := b.series(in, col)
		summary, err := analysis.DescribeSeries(values)
		if err != nil {
			continue
		}
		indicators.Set(col, evidence.KeyIndicator{
			Max:   summary.Max,
			Min:   summary.Min,
			Avg:   summary.Mean,
			Std:   summary.Std,
			Trend: analysis.ScaledDirection(values),
		})
	}
	return indicators
}

func qualityFlags(in Input) evidence.QualityFlags {
	q := evidence.QualityFlags{
		Score: in.Assessment.ConfidenceImpact,
		Level: in.Assessment.Value,
		Flags: []string{},
	}
	if in.Table.RowCount() < shortDurationRows {
		q.Flags = append(q.Flags, evidence.FlagShortDuration)
	}
	if in.Table.ColumnCount() < limitedChannelCount {
		q.Flags = append(q.Flags, evidence.FlagLimitedChannels)
	}
	if in.Table.Completeness() < missingDataThreshold {
		q.Flags = append(q.Flags, evidence.FlagMissingData)
	}
	return q
}

func anomalies(signals evidence.SignalAnalysis) []string {
	found := []string{}
	for _, col := range signals.Keys() {
		s, ok := signals.Stats(col)
		if !ok {
			continue
		}
		if s.TrendSummary != nil && s.OutlierPercentage > outlierAnomalyRate {
			found = append(found, fmt.Sprintf("High outlier rate in %s: %.1f%%", col, s.OutlierPercentage))
		}
		if s.RMS > s.Mean+rmsAnomalySigmas*s.Std {
			found = append(found, fmt.Sprintf("Elevated RMS in %s: %.2f", col, s.RMS))
		}
	}
	if len(found) > maxAnomalies {
		found = found[:maxAnomalies]
	}
	return found
}

// firstN truncates a column list.
func firstN(cols []string, n int) []string {
	if len(cols) > n {
		return cols[:n]
	}
	return cols
}
