package features

import (
	"math"

	"evidencelens/domain/evidence"
)

const processChannels = 3

// ProcessChannel describes one process tag.
type ProcessChannel struct {
	TagFluctuationSummary float64 `json:"tagFluctuationSummary"`
	RateOfChange          float64 `json:"rateOfChange"`
	ControllerOutputShift float64 `json:"controllerOutputShift"`
}

func processFeatures(in Input) []evidence.DomainFeature {
	var out []evidence.DomainFeature
	cols := in.Columns.ColumnsWithRole(evidence.RolePressure, evidence.RoleNumeric, evidence.RoleSpeed)
	for _, col := range firstN(cols, processChannels) {
		s, ok := in.Signals.Stats(col)
		if !ok {
			continue
		}
		shift := math.Abs(s.Max - s.Min)
		if math.IsInf(shift, 0) {
			continue
		}
		channel := ProcessChannel{
			TagFluctuationSummary: s.Std,
			ControllerOutputShift: shift,
		}
		if s.TrendSummary != nil {
			channel.RateOfChange = s.Slope
		}
		out = append(out, evidence.DomainFeature{Key: col + "_analysis", Value: channel})
	}
	return out
}
