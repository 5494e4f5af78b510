package features

import (
	"fmt"
	"math"
	"strings"

	"evidencelens/domain/evidence"
)

const vibrationChannels = 3

// VibrationChannel describes one vibration sensor channel.
type VibrationChannel struct {
	RMSAmplitude        float64                  `json:"rmsAmplitude"`
	PeakAmplitude       float64                  `json:"peakAmplitude"`
	DominantFrequencies []evidence.FrequencyPeak `json:"dominantFrequencies"`
	HarmonicContent     string                   `json:"harmonicContent"`
	BroadbandNoiseLevel float64                  `json:"broadbandNoiseLevel"`
	SensorInfo          SensorInfo               `json:"sensorInfo"`
}

// SensorInfo is what a column name reveals about its sensor.
type SensorInfo struct {
	Axis        string `json:"axis"`
	Location    string `json:"location"`
	Calibration string `json:"calibration"`
}

const unknownInfo = "unknown"

var axisKeywords = []struct {
	axis     string
	keywords []string
}{
	{"X/Horizontal", []string{"x", "horizontal", "radial"}},
	{"Y/Vertical", []string{"y", "vertical"}},
	{"Z/Axial", []string{"z", "axial"}},
}

// Drive end is checked first, so any name containing "de" (including
// "nde") reads as drive end, matching the axis check's substring rule.
var locationKeywords = []struct {
	location string
	keywords []string
}{
	{"Drive End", []string{"de", "drive", "motor"}},
	{"Non-Drive End", []string{"nde", "free", "fan"}},
}

func vibrationFeatures(in Input) []evidence.DomainFeature {
	var out []evidence.DomainFeature
	cols := in.Columns.ColumnsWithRole(evidence.RoleAmplitude, evidence.RoleNumeric)
	for _, col := range firstN(cols, vibrationChannels) {
		s, ok := in.Signals.Stats(col)
		if !ok {
			continue
		}
		out = append(out, evidence.DomainFeature{
			Key: col + "_analysis",
			Value: VibrationChannel{
				RMSAmplitude:        s.RMS,
				PeakAmplitude:       s.Max,
				DominantFrequencies: dominantFrequencies(s),
				HarmonicContent:     DetectHarmonics(s),
				BroadbandNoiseLevel: s.Std,
				SensorInfo:          ParseSensorInfo(col),
			},
		})
	}
	return out
}

// dominantFrequencies is never nil so channels always render a list.
func dominantFrequencies(s *evidence.SignalStats) []evidence.FrequencyPeak {
	if s.SpectrumSummary == nil || s.DominantFrequencies == nil {
		return []evidence.FrequencyPeak{}
	}
	return s.DominantFrequencies
}

// DetectHarmonics treats the lowest dominant frequency as the fundamental and
// counts higher dominant frequencies lying within 10% above a multiple of it.
func DetectHarmonics(s *evidence.SignalStats) string {
	if s.SpectrumSummary == nil || len(s.DominantFrequencies) < 2 {
		return "Unknown"
	}
	base := s.DominantFrequencies[0].Frequency
	for _, peak := range s.DominantFrequencies[1:] {
		base = math.Min(base, peak.Frequency)
	}
	harmonics := 0
	for _, peak := range s.DominantFrequencies {
		if peak.Frequency > base && math.Mod(peak.Frequency, base) < 0.1*base {
			harmonics++
		}
	}
	if harmonics == 0 {
		return "No clear harmonics"
	}
	return fmt.Sprintf("%d harmonics detected", harmonics)
}

// ParseSensorInfo infers axis and mounting location from a column name.
func ParseSensorInfo(column string) SensorInfo {
	lower := strings.ToLower(column)
	info := SensorInfo{Axis: unknownInfo, Location: unknownInfo, Calibration: unknownInfo}
	for _, entry := range axisKeywords {
		if containsAny(lower, entry.keywords) {
			info.Axis = entry.axis
			break
		}
	}
	for _, entry := range locationKeywords {
		if containsAny(lower, entry.keywords) {
			info.Location = entry.location
			break
		}
	}
	return info
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
