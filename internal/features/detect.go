package features

import (
	"strings"

	"evidencelens/domain/evidence"
)

// nameKeywords maps column-name substrings to an evidence type, in priority order.
var nameKeywords = []struct {
	evidenceType string
	keywords     []string
}{
	{evidence.TypeVibration, []string{"vibration", "vib"}},
	{evidence.TypeTemperature, []string{"temp", "thermal"}},
	{evidence.TypePressure, []string{"pressure", "press"}},
}

// DetectEvidenceType resolves the evidence type of a table. A configured
// category wins outright, then column-name keywords, then role combinations.
func DetectEvidenceType(columns evidence.ColumnAnalysis, cfg evidence.EvidenceConfig) string {
	if cfg.EvidenceCategory != "" {
		return cfg.EvidenceCategory
	}

	names := columns.Keys()
	for _, entry := range nameKeywords {
		for _, name := range names {
			lower := strings.ToLower(name)
			for _, kw := range entry.keywords {
				if strings.Contains(lower, kw) {
					return entry.evidenceType
				}
			}
		}
	}

	switch {
	case columns.HasRole(evidence.RoleFrequency) && columns.HasRole(evidence.RoleAmplitude):
		return evidence.TypeWaveform
	case columns.HasRole(evidence.RoleTime) && len(columns.ColumnsWithRole(evidence.RoleNumeric, evidence.RoleAmplitude)) > 0:
		return evidence.TypeTimeSeries
	}
	return evidence.TypeProcessData
}
