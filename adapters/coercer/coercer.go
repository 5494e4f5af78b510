package coercer

import (
	"math"
	"strconv"
	"strings"

	"evidencelens/domain/evidence"
)

// TypeCoercer handles deterministic numeric coercion of raw cells
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion thresholds and rules
type CoercionConfig struct {
	NumericThreshold float64  `json:"numeric_threshold"` // share of sampled values that must parse as numbers
	SampleSize       int      `json:"sample_size"`       // non-missing values inspected per column
	MissingTokens    []string `json:"missing_tokens"`    // raw cell texts treated as missing
}

// DefaultMissingTokens are the NA spellings recognized in delimited and
// spreadsheet sources.
var DefaultMissingTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold: 0.8, // 80% must parse as numbers
		SampleSize:       10,
		MissingTokens:    DefaultMissingTokens,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// Default is the coercer used by readers and analyzers.
var Default = NewTypeCoercer(DefaultCoercionConfig())

// IsMissingToken reports whether a raw cell spells a missing value.
func (c *TypeCoercer) IsMissingToken(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	for _, token := range c.config.MissingTokens {
		if trimmed == token {
			return true
		}
	}
	return false
}

// CellValue converts raw text from a delimited or spreadsheet source into a cell.
func (c *TypeCoercer) CellValue(raw string) evidence.Value {
	if c.IsMissingToken(raw) {
		return evidence.MissingValue()
	}
	return evidence.TextValue(raw)
}

// ToNumber coerces a cell to a finite float. Missing, non-numeric and
// non-finite cells do not coerce.
func (c *TypeCoercer) ToNumber(v evidence.Value) (float64, bool) {
	if v.Missing {
		return 0, false
	}
	if v.Numeric {
		if math.IsInf(v.Num, 0) || math.IsNaN(v.Num) {
			return 0, false
		}
		return v.Num, true
	}
	return c.tryParseNumeric(v.Raw)
}

// tryParseNumeric parses plain decimal and scientific notation only; unit
// suffixes, currency and thousands separators are not numbers here.
func (c *TypeCoercer) tryParseNumeric(strVal string) (float64, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return 0, false
	}
	lower := strings.ToLower(cleanVal)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "-0x") || strings.HasPrefix(lower, "+0x") || strings.Contains(cleanVal, "_") {
		return 0, false
	}
	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// NumericSeries returns the coercible values of a column in order, dropping
// everything that does not coerce.
func (c *TypeCoercer) NumericSeries(values []evidence.Value) []float64 {
	series := make([]float64, 0, len(values))
	for _, v := range values {
		if num, ok := c.ToNumber(v); ok {
			series = append(series, num)
		}
	}
	return series
}

// Sample returns up to SampleSize non-missing values from the head of a column.
func (c *TypeCoercer) Sample(values []evidence.Value) []evidence.Value {
	sample := make([]evidence.Value, 0, c.config.SampleSize)
	for _, v := range values {
		if len(sample) >= c.config.SampleSize {
			break
		}
		if !v.Missing {
			sample = append(sample, v)
		}
	}
	return sample
}

// AnalyzeTypeDistribution analyzes a sample to determine whether it is numeric
func (c *TypeCoercer) AnalyzeTypeDistribution(sample []evidence.Value) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(sample)}
	for _, v := range sample {
		if _, ok := c.ToNumber(v); ok {
			analysis.NumericCount++
		}
	}
	if analysis.TotalCount > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.TotalCount)
		analysis.IsNumeric = analysis.NumericRatio >= c.config.NumericThreshold
	}
	return analysis
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount   int     `json:"total_count"`
	NumericCount int     `json:"numeric_count"`
	NumericRatio float64 `json:"numeric_ratio"`
	IsNumeric    bool    `json:"is_numeric"`
}
