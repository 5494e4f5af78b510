package features

import "evidencelens/domain/evidence"

const acousticChannels = 2

// AcousticChannel describes one acoustic or ultrasound channel. The peak
// amplitude stands in for a decibel level.
type AcousticChannel struct {
	DecibelLevel    float64                  `json:"decibelLevel"`
	FrequencyBands  []evidence.FrequencyPeak `json:"frequencyBands"`
	TransientEvents int                      `json:"transientEvents"`
}

func acousticFeatures(in Input) []evidence.DomainFeature {
	var out []evidence.DomainFeature
	cols := in.Columns.ColumnsWithRole(evidence.RoleAmplitude, evidence.RoleNumeric)
	for _, col := range firstN(cols, acousticChannels) {
		s, ok := in.Signals.Stats(col)
		if !ok {
			continue
		}
		channel := AcousticChannel{
			DecibelLevel:   s.Max,
			FrequencyBands: dominantFrequencies(s),
		}
		if s.TrendSummary != nil {
			channel.TransientEvents = s.OutlierCount
		}
		out = append(out, evidence.DomainFeature{Key: col + "_analysis", Value: channel})
	}
	return out
}
