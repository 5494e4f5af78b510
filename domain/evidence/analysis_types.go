package evidence

import "encoding/json"

// ColumnRole is the semantic category assigned to a table column.
type ColumnRole string

const (
	RoleTime        ColumnRole = "time"
	RoleFrequency   ColumnRole = "frequency"
	RoleAmplitude   ColumnRole = "amplitude"
	RoleSpeed       ColumnRole = "speed"
	RoleTemperature ColumnRole = "temperature"
	RolePressure    ColumnRole = "pressure"
	RoleHarmonic    ColumnRole = "harmonic"
	RoleNumeric     ColumnRole = "numeric"
	RoleText        ColumnRole = "text"
	RoleUnknown     ColumnRole = "unknown"
)

// IsNumericLike reports whether a role carries a measured quantity.
func (r ColumnRole) IsNumericLike() bool {
	switch r {
	case RoleNumeric, RoleAmplitude, RoleTemperature, RolePressure, RoleSpeed:
		return true
	}
	return false
}

// ColumnAnalysis maps every column name to exactly one role, in table order.
type ColumnAnalysis struct {
	OrderedMap[ColumnRole]
}

// Role returns the role assigned to a column.
func (c ColumnAnalysis) Role(column string) (ColumnRole, bool) {
	return c.Get(column)
}

// ColumnsWithRole lists columns whose role is one of roles, in table order.
func (c ColumnAnalysis) ColumnsWithRole(roles ...ColumnRole) []string {
	return c.ColumnsWhere(func(role ColumnRole) bool {
		for _, want := range roles {
			if role == want {
				return true
			}
		}
		return false
	})
}

// ColumnsWhere lists columns whose role satisfies keep, in table order.
func (c ColumnAnalysis) ColumnsWhere(keep func(ColumnRole) bool) []string {
	var out []string
	for _, col := range c.keys {
		if keep(c.values[col]) {
			out = append(out, col)
		}
	}
	return out
}

// HasRole reports whether any column carries role.
func (c ColumnAnalysis) HasRole(role ColumnRole) bool {
	return len(c.ColumnsWithRole(role)) > 0
}

// DistinctRoles counts the distinct roles present.
func (c ColumnAnalysis) DistinctRoles() int {
	seen := make(map[ColumnRole]bool)
	for _, role := range c.values {
		seen[role] = true
	}
	return len(seen)
}

// TrendDirection labels the sign of a fitted slope.
type TrendDirection string

const (
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// FrequencyPeak is one dominant bin of a magnitude spectrum.
type FrequencyPeak struct {
	Frequency float64 `json:"frequency"`
	Magnitude float64 `json:"magnitude"`
}

// SpectrumSummary is present only when a frequency-domain step ran.
type SpectrumSummary struct {
	DominantFrequencies []FrequencyPeak `json:"fft_dominant_frequencies"`
	PeakMagnitude       float64         `json:"fft_peak_magnitude"`
	Performed           bool            `json:"fft_analysis_performed"`
}

// TrendSummary is present only when the trend and outlier step ran.
type TrendSummary struct {
	Slope             float64        `json:"trend_slope"`
	Direction         TrendDirection `json:"trend_direction"`
	OutlierCount      int            `json:"outlier_count"`
	OutlierPercentage float64        `json:"outlier_percentage"`
}

// SignalStats describes one analyzed column.
type SignalStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
	RMS  float64 `json:"rms"`
	*SpectrumSummary
	*TrendSummary
}

// SignalResult is either the stats of a column or the reason it failed.
type SignalResult struct {
	Stats *SignalStats
	Err   string
}

// MarshalJSON renders a failure as {"error": msg} and success as the stats.
func (r SignalResult) MarshalJSON() ([]byte, error) {
	if r.Err != "" || r.Stats == nil {
		return json.Marshal(map[string]string{"error": r.Err})
	}
	return json.Marshal(r.Stats)
}

// Failed reports whether the column analysis failed.
func (r SignalResult) Failed() bool {
	return r.Err != "" || r.Stats == nil
}

// SignalAnalysis maps analyzed column names to their results.
type SignalAnalysis struct {
	OrderedMap[SignalResult]
}

// SpectrumPerformed reports whether any column completed a frequency-domain step.
func (s SignalAnalysis) SpectrumPerformed() bool {
	for _, col := range s.keys {
		if r := s.values[col]; !r.Failed() && r.Stats.SpectrumSummary != nil {
			return true
		}
	}
	return false
}

// TrendCount counts columns that produced a trend slope.
func (s SignalAnalysis) TrendCount() int {
	count := 0
	for _, col := range s.keys {
		if r := s.values[col]; !r.Failed() && r.Stats.TrendSummary != nil {
			count++
		}
	}
	return count
}

// Stats returns the successful stats of a column, if any.
func (s SignalAnalysis) Stats(column string) (*SignalStats, bool) {
	r, ok := s.Get(column)
	if !ok || r.Failed() {
		return nil, false
	}
	return r.Stats, true
}

// DiagnosticValue is the coarse usefulness rating of a piece of evidence.
type DiagnosticValue string

const (
	DiagnosticHigh   DiagnosticValue = "High"
	DiagnosticMedium DiagnosticValue = "Medium"
	DiagnosticLow    DiagnosticValue = "Low"
)

// DataQuality is the scoring breakdown of an assessment.
type DataQuality struct {
	CompletenessScore float64
	TotalScore        float64
	Factors           []string
	Err               string
}

// MarshalJSON renders a failed assessment as {"error": msg}.
func (q DataQuality) MarshalJSON() ([]byte, error) {
	if q.Err != "" {
		return json.Marshal(map[string]string{"error": q.Err})
	}
	factors := q.Factors
	if factors == nil {
		factors = []string{}
	}
	return json.Marshal(struct {
		CompletenessScore float64  `json:"completeness_score"`
		TotalScore        float64  `json:"total_score"`
		Factors           []string `json:"assessment_factors"`
	}{q.CompletenessScore, q.TotalScore, factors})
}

// DiagnosticAssessment is the scored usefulness of a table.
type DiagnosticAssessment struct {
	Value            DiagnosticValue `json:"diagnostic_value"`
	ConfidenceImpact int             `json:"confidence_impact"`
	Summary          string          `json:"summary"`
	Remarks          string          `json:"remarks"`
	DataQuality      DataQuality     `json:"data_quality"`
}
