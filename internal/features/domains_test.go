package features

import (
	"encoding/json"
	"testing"

	"evidencelens/domain/evidence"
	"evidencelens/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func peaks(freqs ...float64) *evidence.SignalStats {
	s := &evidence.SignalStats{SpectrumSummary: &evidence.SpectrumSummary{Performed: true}}
	for _, f := range freqs {
		s.DominantFrequencies = append(s.DominantFrequencies, evidence.FrequencyPeak{Frequency: f, Magnitude: 1})
	}
	return s
}

func TestDetectHarmonics(t *testing.T) {
	assert.Equal(t, "2 harmonics detected", DetectHarmonics(peaks(0.25, 0.125, 0.375, 0.3)))
	assert.Equal(t, "No clear harmonics", DetectHarmonics(peaks(0.125, 0.2)))
	assert.Equal(t, "Unknown", DetectHarmonics(peaks(0.125)))
	assert.Equal(t, "Unknown", DetectHarmonics(&evidence.SignalStats{}))
}

func TestParseSensorInfo(t *testing.T) {
	tests := []struct {
		column   string
		axis     string
		location string
	}{
		{"acc_x_de", "X/Horizontal", "Drive End"},
		{"Vertical NDE", "Y/Vertical", "Drive End"},
		{"free_end_y", "Y/Vertical", "Non-Drive End"},
		{"fan_bearing_horizontal", "X/Horizontal", "Non-Drive End"},
		{"axial_fan", "X/Horizontal", "Non-Drive End"},
		{"motor_z", "Z/Axial", "Drive End"},
		{"ch1", "unknown", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			info := ParseSensorInfo(tt.column)
			assert.Equal(t, tt.axis, info.Axis)
			assert.Equal(t, tt.location, info.Location)
			assert.Equal(t, "unknown", info.Calibration)
		})
	}
}

func TestVibrationFeatures(t *testing.T) {
	table := testkit.NewSensorDataGenerator(testkit.DefaultSensorConfig()).Table()
	f := buildFeatures(t, table, evidence.EvidenceConfig{EvidenceCategory: "Vibration Route"})
	require.Equal(t, evidence.DomainVibration, f.Domain)

	value, ok := f.Feature("velocity_x_de_analysis")
	require.True(t, ok)
	channel := value.(VibrationChannel)
	stats, _ := f.SignalAnalysis.Stats("velocity_x_de")
	assert.Equal(t, stats.RMS, channel.RMSAmplitude)
	assert.Equal(t, stats.Max, channel.PeakAmplitude)
	assert.Equal(t, stats.Std, channel.BroadbandNoiseLevel)
	require.NotEmpty(t, channel.DominantFrequencies)
	strongest := channel.DominantFrequencies[len(channel.DominantFrequencies)-1]
	assert.InDelta(t, 0.125, strongest.Frequency, 0.01, "12.5 Hz at 100 Hz sampling")
	assert.Equal(t, SensorInfo{Axis: "X/Horizontal", Location: "Drive End", Calibration: "unknown"}, channel.SensorInfo)

	value, ok = f.Feature("velocity_y_nde_analysis")
	require.True(t, ok)
	assert.Equal(t, "Drive End", value.(VibrationChannel).SensorInfo.Location, "nde contains de")
}

func TestVibrationFeatures_ShortSignalHasEmptySpectrum(t *testing.T) {
	config := testkit.DefaultSensorConfig()
	config.Rows = 30
	f := buildFeatures(t, testkit.NewSensorDataGenerator(config).Table(), evidence.EvidenceConfig{EvidenceCategory: "waveform"})

	value, ok := f.Feature("velocity_x_de_analysis")
	require.True(t, ok)
	channel := value.(VibrationChannel)
	assert.NotNil(t, channel.DominantFrequencies)
	assert.Empty(t, channel.DominantFrequencies)
	assert.Equal(t, "Unknown", channel.HarmonicContent)
}

func TestAssessStability(t *testing.T) {
	spike := func(n int) []float64 {
		values := make([]float64, n)
		values[0] = 100
		return values
	}
	ramp := make([]float64, 30)
	for i := range ramp {
		ramp[i] = float64(i)
	}

	assert.Equal(t, StabilityInsufficient, AssessStability(make([]float64, 9)))
	assert.Equal(t, StabilityHigh, AssessStability(spike(100)))
	assert.Equal(t, StabilityModerate, AssessStability(spike(30)))
	assert.Equal(t, StabilityNone, AssessStability(spike(20)))
	assert.Equal(t, StabilityNone, AssessStability(ramp))
}

func TestThermalFeatures(t *testing.T) {
	table := testkit.TableFromColumns(
		[]string{"time", "oil_temp", "ambient"},
		sequence(20, func(i int) float64 { return float64(i) }),
		sequence(20, func(i int) float64 { return 40 + 0.5*float64(i) }),
		[]string{"cold"},
	)
	f := buildFeatures(t, table, evidence.EvidenceConfig{})
	require.Equal(t, evidence.TypeTemperature, f.FileType)
	require.Equal(t, evidence.DomainThermal, f.Domain)

	value, ok := f.Feature("oil_temp_analysis")
	require.True(t, ok)
	channel := value.(ThermalChannel)
	assert.Equal(t, 49.5, channel.MaxTemp)
	assert.InDelta(t, 0.5, channel.TempRiseRate, 1e-9)
	assert.InDelta(t, 44.75, channel.ComparisonBaseline, 1e-9)
	assert.Equal(t, StabilityNone, channel.StabilityDuration)

	_, ok = f.Feature("ambient_analysis")
	assert.False(t, ok, "text columns carry no thermal features")
}

func TestProcessFeatures(t *testing.T) {
	table := testkit.TableFromColumns(
		[]string{"pressure_bar", "flow"},
		sequence(15, func(i int) float64 { return 4 + 0.1*float64(i%3) }),
		sequence(15, func(i int) float64 { return 100 - 2*float64(i) }),
	)
	f := buildFeatures(t, table, evidence.EvidenceConfig{})
	require.Equal(t, evidence.TypePressure, f.FileType)
	require.Equal(t, evidence.DomainProcess, f.Domain)

	// Only columns the signal analyzer selected carry process features.
	_, ok := f.Feature("pressure_bar_analysis")
	assert.False(t, ok)

	value, ok := f.Feature("flow_analysis")
	require.True(t, ok)
	channel := value.(ProcessChannel)
	assert.InDelta(t, -2.0, channel.RateOfChange, 1e-9)
	assert.InDelta(t, 28.0, channel.ControllerOutputShift, 1e-9)
	assert.Greater(t, channel.TagFluctuationSummary, 0.0)
}

func TestAcousticFeatures(t *testing.T) {
	config := testkit.DefaultSensorConfig()
	config.Channels = append(config.Channels, testkit.ChannelConfig{Name: "peak_3", Frequency: 5, Amplitude: 1})
	f := buildFeatures(t, testkit.NewSensorDataGenerator(config).Table(), evidence.EvidenceConfig{EvidenceCategory: "Ultrasound"})
	require.Equal(t, evidence.DomainAcoustic, f.Domain)

	require.Len(t, f.DomainFeatures, 2, "at most two acoustic channels")
	channel := f.DomainFeatures[0].Value.(AcousticChannel)
	stats, _ := f.SignalAnalysis.Stats("velocity_x_de")
	assert.Equal(t, "velocity_x_de_analysis", f.DomainFeatures[0].Key)
	assert.Equal(t, stats.Max, channel.DecibelLevel)
	assert.Equal(t, stats.OutlierCount, channel.TransientEvents)
	assert.Equal(t, stats.DominantFrequencies, channel.FrequencyBands)
}

func TestGenericFeatures(t *testing.T) {
	table := testkit.TableFromColumns(
		[]string{"a", "b", "c", "d"},
		sequence(20, func(i int) float64 { return float64(i) }),
		sequence(20, func(i int) float64 { return 1 - 2*float64(i) }),
		sequence(20, func(i int) float64 { return float64(i % 4) }),
		sequence(20, func(i int) float64 { return 7 }),
	)
	f := buildFeatures(t, table, evidence.EvidenceConfig{EvidenceCategory: "Operator Log"})
	require.Equal(t, evidence.DomainGeneric, f.Domain)

	value, ok := f.Feature(NumericAnalysisKey)
	require.True(t, ok)
	numeric := value.(NumericAnalysis)
	assert.Equal(t, 4, numeric.ChannelsAnalyzed)
	assert.Equal(t, []string{"a", "b", "c"}, numeric.StatisticalSummary.Keys())
	spread, _ := numeric.StatisticalSummary.Get("b")
	assert.Equal(t, 38.0, spread.Range)
	require.NotNil(t, numeric.DataCharacteristics.MaxCrossCorrelation)
	assert.InDelta(t, 1.0, *numeric.DataCharacteristics.MaxCrossCorrelation, 1e-9)
	assert.Equal(t, 5.0, numeric.DataCharacteristics.DataDensity)

	encoded, err := json.Marshal(f)
	require.NoError(t, err)
	doc := gjson.ParseBytes(encoded)
	assert.Equal(t, int64(4), doc.Get("numeric_analysis.channels_analyzed").Int())
	assert.True(t, doc.Get("numeric_analysis.statistical_summary.a.variability").Exists())
}

func TestGenericFeatures_SingleNumericColumnStaysGeneric(t *testing.T) {
	table := testkit.TableFromColumns(
		[]string{"reading", "note"},
		sequence(15, func(i int) float64 { return float64(i * i) }),
		[]string{"x", "y"},
	)
	f := buildFeatures(t, table, evidence.EvidenceConfig{EvidenceCategory: "Field Notes"})

	assert.Equal(t, evidence.DomainGeneric, f.Domain)
	require.Len(t, f.DomainFeatures, 1)
	assert.Equal(t, NumericAnalysisKey, f.DomainFeatures[0].Key)
	numeric := f.DomainFeatures[0].Value.(NumericAnalysis)
	assert.Nil(t, numeric.DataCharacteristics.MaxCrossCorrelation)
}
