package features

import (
	"math"

	"evidencelens/domain/evidence"
	"evidencelens/internal/analysis"
)

const (
	thermalChannels = 3
	stabilityWindow = 10
)

// Stability classes of a temperature channel.
const (
	StabilityHigh         = "highly_stable"
	StabilityModerate     = "moderately_stable"
	StabilityNone         = "unstable"
	StabilityInsufficient = "insufficient_data"
)

// ThermalChannel describes one temperature channel.
type ThermalChannel struct {
	MaxTemp            float64 `json:"maxTemp"`
	TempRiseRate       float64 `json:"tempRiseRate"`
	StabilityDuration  string  `json:"stabilityDuration"`
	ComparisonBaseline float64 `json:"comparisonBaseline"`
}

func (b *Builder) thermalFeatures(in Input) []evidence.DomainFeature {
	var out []evidence.DomainFeature
	cols := in.Columns.ColumnsWithRole(evidence.RoleTemperature, evidence.RoleNumeric)
	for _, col := range firstN(cols, thermalChannels) {
		values := b.series(in, col)
		summary, err := analysis.DescribeSeries(values)
		slope := analysis.Slope(values)
		if err != nil || !analysis.Finite(slope) {
			b.logger.Debug("no thermal channel for %q", col)
			continue
		}
		out = append(out, evidence.DomainFeature{
			Key: col + "_analysis",
			Value: ThermalChannel{
				MaxTemp:            summary.Max,
				TempRiseRate:       slope,
				StabilityDuration:  AssessStability(values),
				ComparisonBaseline: summary.Mean,
			},
		})
	}
	return out
}

// AssessStability classifies the share of points whose 10-wide rolling std
// stays under a tenth of the channel's overall std.
func AssessStability(values []float64) string {
	if len(values) < stabilityWindow {
		return StabilityInsufficient
	}
	limit := 0.1 * analysis.SampleStd(values)
	_, rolling := analysis.RollingStats(values, stabilityWindow)
	stable := 0
	for _, std := range rolling {
		if !math.IsNaN(std) && std < limit {
			stable++
		}
	}
	share := 100 * float64(stable) / float64(len(values))
	switch {
	case share > 80:
		return StabilityHigh
	case share > 50:
		return StabilityModerate
	}
	return StabilityNone
}
