package evidence

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EvidenceConfig is the caller-supplied configuration of one invocation.
type EvidenceConfig struct {
	// EvidenceCategory overrides automatic evidence-type detection when set.
	EvidenceCategory string `json:"evidenceCategory,omitempty" yaml:"evidenceCategory"`
}

// CategoryOr returns the configured category or fallback.
func (c EvidenceConfig) CategoryOr(fallback string) string {
	if c.EvidenceCategory != "" {
		return c.EvidenceCategory
	}
	return fallback
}

// Status of an evidence result.
type Status string

const (
	StatusAvailable  Status = "Available"
	StatusIncomplete Status = "Incomplete"
)

// KeyIndicator summarizes one numeric-like column.
type KeyIndicator struct {
	Max   float64        `json:"max"`
	Min   float64        `json:"min"`
	Avg   float64        `json:"avg"`
	Std   float64        `json:"std"`
	Trend TrendDirection `json:"trend"`
}

// QualityFlags is the diagnostic-quality block of the feature envelope.
type QualityFlags struct {
	Score int             `json:"score"`
	Level DiagnosticValue `json:"level"`
	Flags []string        `json:"flags"`
}

// Quality flag names.
const (
	FlagShortDuration   = "short_duration"
	FlagLimitedChannels = "limited_channels"
	FlagMissingData     = "missing_data"
)

// DomainFeature is one named domain-specific sub-feature.
type DomainFeature struct {
	Key   string
	Value any
}

// Features is the extracted feature envelope. Domain features are rendered
// as additional top-level members after the common ones.
type Features struct {
	FileType          string                   `json:"fileType"`
	Duration          string                   `json:"duration"`
	SamplingRate      string                   `json:"samplingRate"`
	KeyIndicators     OrderedMap[KeyIndicator] `json:"keyIndicators"`
	DiagnosticQuality QualityFlags             `json:"diagnosticQuality"`
	AnomalySummary    []string                 `json:"anomalySummary"`
	RowCount          int                      `json:"rowCount"`
	ColumnCount       int                      `json:"columnCount"`
	ColumnTypes       ColumnAnalysis           `json:"columnTypes"`
	SignalAnalysis    SignalAnalysis           `json:"signalAnalysis"`
	Delimiter         string                   `json:"delimiter"`
	DataQuality       DataQuality              `json:"dataQuality"`
	Domain            EvidenceDomain           `json:"-"`
	DomainFeatures    []DomainFeature          `json:"-"`
}

// Feature returns the domain sub-feature stored under key.
func (f *Features) Feature(key string) (any, bool) {
	for _, df := range f.DomainFeatures {
		if df.Key == key {
			return df.Value, true
		}
	}
	return nil, false
}

// MarshalJSON flattens domain features into the envelope object.
func (f Features) MarshalJSON() ([]byte, error) {
	type envelope Features
	env := envelope(f)
	if env.AnomalySummary == nil {
		env.AnomalySummary = []string{}
	}
	if env.DiagnosticQuality.Flags == nil {
		env.DiagnosticQuality.Flags = []string{}
	}
	base, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	if len(f.DomainFeatures) == 0 {
		return base, nil
	}
	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	for _, df := range f.DomainFeatures {
		buf.WriteByte(',')
		if err := writeMember(&buf, df.Key, df.Value); err != nil {
			return nil, fmt.Errorf("domain feature %q: %w", df.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EvidenceResult is the single terminal artifact of an invocation.
type EvidenceResult struct {
	Filename                  string          `json:"filename"`
	EvidenceType              string          `json:"evidenceType"`
	DiagnosticValue           DiagnosticValue `json:"diagnosticValue"`
	ParsedResultSummary       string          `json:"parsedResultSummary"`
	ConfidenceImpact          int             `json:"evidenceConfidenceImpact"`
	Remarks                   string          `json:"aiRemarks"`
	Status                    Status          `json:"status"`
	DetectedColumns           []string        `json:"detectedColumns,omitempty"`
	ExtractedFeatures         *Features       `json:"extractedFeatures,omitempty"`
	RequiresUserClarification bool            `json:"requiresUserClarification,omitempty"`
	ClarificationPrompt       string          `json:"clarificationPrompt,omitempty"`

	// FailureCode carries the internal error code of a terminal failure.
	FailureCode string `json:"-"`
}
