package testkit

import (
	"encoding/json"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"evidencelens/domain/evidence"
)

// ChannelConfig describes one synthetic sensor channel: a sine wave on an
// offset with a linear drift and gaussian noise.
type ChannelConfig struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"` // Hz
	Amplitude float64 `json:"amplitude"`
	Offset    float64 `json:"offset"`
	Drift     float64 `json:"drift"` // units per sample
	Noise     float64 `json:"noise"` // noise std
}

// SensorGeneratorConfig configures the sensor data generator
type SensorGeneratorConfig struct {
	Rows        int             `json:"rows"`
	SampleRate  float64         `json:"sample_rate"` // Hz
	TimeColumn  string          `json:"time_column"` // empty omits the time column
	Channels    []ChannelConfig `json:"channels"`
	MissingRate float64         `json:"missing_rate"` // share of channel cells left blank
	Seed        int64           `json:"seed"`
}

// DefaultSensorConfig returns a two-channel vibration recording at 100 Hz
func DefaultSensorConfig() SensorGeneratorConfig {
	return SensorGeneratorConfig{
		Rows:       256,
		SampleRate: 100,
		TimeColumn: "time",
		Channels: []ChannelConfig{
			{Name: "velocity_x_de", Frequency: 12.5, Amplitude: 2.0, Noise: 0.05},
			{Name: "velocity_y_nde", Frequency: 25, Amplitude: 1.0, Noise: 0.05},
		},
		Seed: 42,
	}
}

// SensorDataGenerator generates deterministic sensor recordings
type SensorDataGenerator struct {
	config SensorGeneratorConfig
	rng    *rand.Rand
}

// NewSensorDataGenerator creates a new sensor data generator
func NewSensorDataGenerator(config SensorGeneratorConfig) *SensorDataGenerator {
	return &SensorDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Columns returns the header of the generated recording
func (g *SensorDataGenerator) Columns() []string {
	var columns []string
	if g.config.TimeColumn != "" {
		columns = append(columns, g.config.TimeColumn)
	}
	for _, ch := range g.config.Channels {
		columns = append(columns, ch.Name)
	}
	return columns
}

// Records generates the recording as rows of formatted cells. Blank cells
// stand for missing readings.
func (g *SensorDataGenerator) Records() [][]string {
	dt := 1.0
	if g.config.SampleRate > 0 {
		dt = 1 / g.config.SampleRate
	}

	records := make([][]string, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		t := float64(i) * dt
		var row []string
		if g.config.TimeColumn != "" {
			row = append(row, formatFloat(t))
		}
		for _, ch := range g.config.Channels {
			if g.config.MissingRate > 0 && g.rng.Float64() < g.config.MissingRate {
				row = append(row, "")
				continue
			}
			v := ch.Offset + ch.Amplitude*math.Sin(2*math.Pi*ch.Frequency*t) + ch.Drift*float64(i)
			if ch.Noise > 0 {
				v += g.rng.NormFloat64() * ch.Noise
			}
			row = append(row, formatFloat(v))
		}
		records = append(records, row)
	}
	return records
}

// CSV renders the recording with the given delimiter
func (g *SensorDataGenerator) CSV(delimiter string) string {
	var b strings.Builder
	b.WriteString(strings.Join(g.Columns(), delimiter))
	b.WriteByte('\n')
	for _, row := range g.Records() {
		b.WriteString(strings.Join(row, delimiter))
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON renders the recording as an array of objects. Missing readings are null.
func (g *SensorDataGenerator) JSON() (string, error) {
	columns := g.Columns()
	var b strings.Builder
	b.WriteByte('[')
	for i, row := range g.Records() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('{')
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			key, err := json.Marshal(columns[j])
			if err != nil {
				return "", err
			}
			b.Write(key)
			b.WriteByte(':')
			if cell == "" {
				b.WriteString("null")
			} else {
				b.WriteString(cell)
			}
		}
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String(), nil
}

// Table builds the recording directly as a table of text cells
func (g *SensorDataGenerator) Table() *evidence.Table {
	columns := g.Columns()
	table := evidence.NewTable(columns)
	for _, row := range g.Records() {
		cells := make(map[string]evidence.Value, len(row))
		for j, cell := range row {
			if cell == "" {
				cells[columns[j]] = evidence.MissingValue()
			} else {
				cells[columns[j]] = evidence.TextValue(cell)
			}
		}
		table.AddRow(cells)
	}
	return table
}

// TableFromColumns builds a text-cell table from literal columns. Columns
// shorter than the longest one are padded with missing cells.
func TableFromColumns(names []string, values ...[]string) *evidence.Table {
	table := evidence.NewTable(names)
	rows := 0
	for _, col := range values {
		if len(col) > rows {
			rows = len(col)
		}
	}
	for i := 0; i < rows; i++ {
		cells := make(map[string]evidence.Value, len(names))
		for j, name := range names {
			if j < len(values) && i < len(values[j]) && values[j][i] != "" {
				cells[name] = evidence.TextValue(values[j][i])
			}
		}
		table.AddRow(cells)
	}
	return table
}

// FloatColumn formats a numeric series as cell text
func FloatColumn(series []float64) []string {
	out := make([]string, len(series))
	for i, v := range series {
		out[i] = formatFloat(v)
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
