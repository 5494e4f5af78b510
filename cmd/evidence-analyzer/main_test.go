package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"evidencelens/internal/config"
	"evidencelens/internal/errors"
	"evidencelens/internal/input"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testConfig(pretty bool) *config.Config {
	return &config.Config{
		Log:    config.LogConfig{Level: "ERROR"},
		Input:  config.InputConfig{MaxContentBytes: config.DefaultMaxContentBytes},
		Output: config.OutputConfig{Pretty: pretty},
	}
}

func TestDecodeEvidenceConfig(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"blank", "  ", ""},
		{"json object", `{"evidenceCategory": "Vibration"}`, "Vibration"},
		{"yaml mapping", "evidenceCategory: Thermal Imaging\n", "Thermal Imaging"},
		{"unknown keys ignored", `{"other": 1}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := decodeEvidenceConfig(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.EvidenceCategory)
		})
	}
}

func TestDecodeEvidenceConfig_Invalid(t *testing.T) {
	_, err := decodeEvidenceConfig(`{"evidenceCategory": [`)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestRunAnalyze_FileArgument(t *testing.T) {
	fs := afero.NewMemMapFs()
	var csv strings.Builder
	csv.WriteString("time,amplitude\n")
	for i := 0; i < 20; i++ {
		csv.WriteString(strconv.Itoa(i) + ",1.5\n")
	}
	require.NoError(t, afero.WriteFile(fs, "/data/motor.csv", []byte(csv.String()), 0o644))

	var out bytes.Buffer
	req := analyzeRequest{Argument: "/data/motor.csv", Filename: "motor.csv", RawConfig: `{"evidenceCategory": "Vibration"}`}
	require.NoError(t, runAnalyze(&out, testConfig(false), input.NewResolver(fs, config.DefaultMaxContentBytes), req))

	body := out.String()
	require.True(t, gjson.Valid(body))
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(body), "\n")+1, "compact output is a single line")
	assert.Equal(t, "motor.csv", gjson.Get(body, "filename").String())
	assert.Equal(t, "Vibration", gjson.Get(body, "evidenceType").String())
	assert.Equal(t, "Available", gjson.Get(body, "status").String())
	assert.Equal(t, ",", gjson.Get(body, "extractedFeatures.delimiter").String())
}

func TestRunAnalyze_InlineUnsupported(t *testing.T) {
	var out bytes.Buffer
	req := analyzeRequest{Argument: "whatever", Filename: "reading.xyz"}
	require.NoError(t, runAnalyze(&out, testConfig(true), input.NewResolver(afero.NewMemMapFs(), 1024), req))

	body := out.String()
	require.True(t, gjson.Valid(body))
	assert.Contains(t, body, "\n  \"filename\"")
	assert.Equal(t, "Low", gjson.Get(body, "diagnosticValue").String())
	assert.Equal(t, int64(10), gjson.Get(body, "evidenceConfidenceImpact").Int())
	assert.False(t, gjson.Get(body, "extractedFeatures").Exists())
}

func TestRunAnalyze_RejectsOversizedInline(t *testing.T) {
	var out bytes.Buffer
	req := analyzeRequest{Argument: strings.Repeat("a", 64), Filename: "big.csv"}
	err := runAnalyze(&out, testConfig(false), input.NewResolver(afero.NewMemMapFs(), 16), req)

	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Empty(t, out.String())
}

func TestFormatsCommand(t *testing.T) {
	cmd := newFormatsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"delimited", "spreadsheet", "records"}, strings.Fields(out.String()))
}
