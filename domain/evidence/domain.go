package evidence

import "strings"

// EvidenceDomain selects the domain-specific feature builder.
type EvidenceDomain int

const (
	DomainGeneric EvidenceDomain = iota
	DomainVibration
	DomainThermal
	DomainProcess
	DomainAcoustic
)

var domainNames = map[EvidenceDomain]string{
	DomainGeneric:   "generic",
	DomainVibration: "vibration",
	DomainThermal:   "thermal",
	DomainProcess:   "process",
	DomainAcoustic:  "acoustic",
}

func (d EvidenceDomain) String() string {
	if n, ok := domainNames[d]; ok {
		return n
	}
	return "unknown"
}

// domainKeywords is evaluated in order; the first keyword contained in the
// lower-cased evidence type wins.
var domainKeywords = []struct {
	domain   EvidenceDomain
	keywords []string
}{
	{DomainVibration, []string{"vibration", "waveform"}},
	{DomainThermal, []string{"temperature", "thermal"}},
	{DomainProcess, []string{"pressure", "process"}},
	{DomainAcoustic, []string{"acoustic", "ultrasound"}},
}

// ResolveDomain maps a detected or configured evidence type to its domain.
func ResolveDomain(evidenceType string) EvidenceDomain {
	lower := strings.ToLower(evidenceType)
	for _, entry := range domainKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.domain
			}
		}
	}
	return DomainGeneric
}

// Detected evidence types produced without a configured category.
const (
	TypeVibration   = "Vibration"
	TypeTemperature = "Temperature"
	TypePressure    = "Pressure"
	TypeWaveform    = "Waveform"
	TypeTimeSeries  = "Time Series"
	TypeProcessData = "Process Data"
)
