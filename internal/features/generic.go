package features

import (
	"math"

	"evidencelens/domain/evidence"
	"evidencelens/internal/analysis"

	"github.com/montanaflynn/stats"
)

const (
	genericSummaryColumns = 3
	// NumericAnalysisKey names the generic sub-feature.
	NumericAnalysisKey = "numeric_analysis"
)

// NumericAnalysis summarizes numeric columns of an unrecognized evidence type.
type NumericAnalysis struct {
	ChannelsAnalyzed    int                               `json:"channels_analyzed"`
	StatisticalSummary  evidence.OrderedMap[ColumnSpread] `json:"statistical_summary"`
	DataCharacteristics DataCharacteristics               `json:"data_characteristics"`
}

// ColumnSpread is the range and sample std of one column.
type ColumnSpread struct {
	Range       float64 `json:"range"`
	Variability float64 `json:"variability"`
}

// DataCharacteristics describes the numeric columns as a group.
type DataCharacteristics struct {
	TotalVariance       float64  `json:"total_variance"`
	MaxCrossCorrelation *float64 `json:"max_cross_correlation,omitempty"`
	DataDensity         float64  `json:"data_density"`
}

func (b *Builder) genericFeatures(in Input) []evidence.DomainFeature {
	cols := in.Columns.ColumnsWithRole(evidence.RoleNumeric)
	if len(cols) == 0 {
		return nil
	}

	numeric := NumericAnalysis{ChannelsAnalyzed: len(cols)}
	for _, col := range firstN(cols, genericSummaryColumns) {
		var spread ColumnSpread
		if summary, err := analysis.DescribeSeries(b.series(in, col)); err == nil && analysis.Finite(summary.Max-summary.Min) {
			spread = ColumnSpread{Range: summary.Max - summary.Min, Variability: summary.Std}
		} else {
			b.logger.Debug("no spread for %q", col)
		}
		numeric.StatisticalSummary.Set(col, spread)
	}
	numeric.DataCharacteristics = b.characterize(in, cols)

	return []evidence.DomainFeature{{Key: NumericAnalysisKey, Value: numeric}}
}

func (b *Builder) characterize(in Input, cols []string) DataCharacteristics {
	var c DataCharacteristics
	for _, col := range cols {
		values := b.series(in, col)
		if len(values) < 2 {
			continue
		}
		variance, err := stats.SampleVariance(values)
		if err != nil || !analysis.Finite(c.TotalVariance+variance) {
			b.logger.Debug("variance of %q left out of the total", col)
			continue
		}
		c.TotalVariance += variance
	}
	if len(cols) >= 2 {
		if corr, ok := b.maxCrossCorrelation(in, cols); ok {
			c.MaxCrossCorrelation = &corr
		}
	}
	c.DataDensity = float64(in.Table.RowCount()) / float64(in.Table.ColumnCount())
	return c
}

// maxCrossCorrelation is the largest absolute Pearson correlation between two
// distinct columns, over rows where both coerce. Pairs without variation
// have no correlation and are skipped.
func (b *Builder) maxCrossCorrelation(in Input, cols []string) (float64, bool) {
	best, found := 0.0, false
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			x, y := b.pairedSeries(in, cols[i], cols[j])
			if len(x) < 2 || analysis.SampleStd(x) == 0 || analysis.SampleStd(y) == 0 {
				continue
			}
			corr, err := analysis.Correlation(x, y)
			if err != nil || !analysis.Finite(corr) {
				continue
			}
			if !found || math.Abs(corr) > best {
				best, found = math.Abs(corr), true
			}
		}
	}
	return best, found
}

func (b *Builder) pairedSeries(in Input, a, c string) (x, y []float64) {
	for _, row := range in.Table.Rows {
		va, okA := b.coercer.ToNumber(row[a])
		vc, okC := b.coercer.ToNumber(row[c])
		if okA && okC {
			x = append(x, va)
			y = append(y, vc)
		}
	}
	return x, y
}
