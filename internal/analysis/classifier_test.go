package analysis

import (
	"testing"

	"evidencelens/adapters/coercer"
	"evidencelens/domain/evidence"
	"evidencelens/internal"
	"evidencelens/internal/testkit"

	"github.com/stretchr/testify/assert"
)

func newTestClassifier() *ColumnClassifier {
	return NewColumnClassifier(coercer.Default, internal.NewNopLogger())
}

func TestRoleFromName(t *testing.T) {
	tests := []struct {
		name string
		want evidence.ColumnRole
	}{
		{"time", evidence.RoleTime},
		{"Timestamp", evidence.RoleTime},
		{"t [s]", evidence.RoleTime},
		{"Elapsed Seconds", evidence.RoleTime},
		{"Frequency (Hz)", evidence.RoleFrequency},
		{"f [1/s]", evidence.RoleFrequency},
		{"CPM", evidence.RoleFrequency},
		{"Amplitude", evidence.RoleAmplitude},
		{"velocity_mm/s", evidence.RoleAmplitude},
		{"Peak", evidence.RoleAmplitude},
		{"Disp µm", evidence.RoleAmplitude},
		{"RPM", evidence.RoleSpeed},
		{"shaft rotation", evidence.RoleSpeed},
		{"Temp °C", evidence.RoleTemperature},
		{"Stator ℃", evidence.RoleTemperature},
		{"Fahrenheit", evidence.RoleTemperature},
		{"Pressure_bar", evidence.RolePressure},
		{"line psi", evidence.RolePressure},
		{"1X", evidence.RoleHarmonic},
		{"harmonic order", evidence.RoleHarmonic},
		// Earlier groups win over later ones.
		{"time_hz", evidence.RoleTime},
		{"freq amp", evidence.RoleFrequency},
		{"rms_temp", evidence.RoleAmplitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := RoleFromName(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.want, role)
		})
	}

	_, ok := RoleFromName("status")
	assert.False(t, ok)
}

func TestColumnClassifier_ContentFallback(t *testing.T) {
	table := testkit.TableFromColumns(
		[]string{"reading", "status", "notes", "mostly", "partly"},
		[]string{"1", "2.5", "-3", "4e2", "5", "6", "7", "8", "9", "10", "oops"},
		[]string{"ok", "ok", "warn", "ok"},
		[]string{},
		[]string{"1", "2", "3", "4", "5", "6", "7", "8", "x", "y"},
		[]string{"1", "2", "3", "4", "5", "6", "7", "x", "y", "z"},
	)

	columns := newTestClassifier().Classify(table)

	assert.Equal(t, []string{"reading", "status", "notes", "mostly", "partly"}, columns.Keys())
	role, _ := columns.Role("reading")
	assert.Equal(t, evidence.RoleNumeric, role, "only the first ten values are sampled")
	role, _ = columns.Role("status")
	assert.Equal(t, evidence.RoleText, role)
	role, _ = columns.Role("notes")
	assert.Equal(t, evidence.RoleText, role, "an all-missing column is text")
	role, _ = columns.Role("mostly")
	assert.Equal(t, evidence.RoleNumeric, role, "80% numeric is numeric")
	role, _ = columns.Role("partly")
	assert.Equal(t, evidence.RoleText, role)
}

func TestColumnClassifier_NameBeatsContent(t *testing.T) {
	table := testkit.TableFromColumns(
		[]string{"temp_status", "amp"},
		[]string{"hot", "cold", "hot"},
		[]string{"a", "b", "c"},
	)
	columns := newTestClassifier().Classify(table)

	role, _ := columns.Role("temp_status")
	assert.Equal(t, evidence.RoleTemperature, role)
	role, _ = columns.Role("amp")
	assert.Equal(t, evidence.RoleAmplitude, role)
}

func TestColumnClassifier_Deterministic(t *testing.T) {
	table := testkit.NewSensorDataGenerator(testkit.DefaultSensorConfig()).Table()
	classifier := newTestClassifier()

	first := classifier.Classify(table)
	second := classifier.Classify(table)
	assert.Equal(t, first, second)

	role, _ := first.Role("time")
	assert.Equal(t, evidence.RoleTime, role)
	assert.Equal(t, []string{"velocity_x_de", "velocity_y_nde"}, first.ColumnsWithRole(evidence.RoleAmplitude))
}
