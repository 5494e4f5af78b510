package analysis

import (
	"regexp"
	"strings"

	"evidencelens/adapters/coercer"
	"evidencelens/domain/evidence"
	"evidencelens/internal"

	"golang.org/x/text/unicode/norm"
)

// rolePattern pairs a compiled name pattern with the role it assigns.
type rolePattern struct {
	role    evidence.ColumnRole
	pattern *regexp.Regexp
}

// namePatterns are evaluated in order against the normalized column name.
// The first match wins; content is only inspected when nothing matches.
var namePatterns = []rolePattern{
	{evidence.RoleTime, regexp.MustCompile(`time|t\s*\[|timestamp|seconds|minutes|hours`)},
	{evidence.RoleFrequency, regexp.MustCompile(`freq|f\s*\[|hz|cycles|cpm`)},
	{evidence.RoleAmplitude, regexp.MustCompile(`amp|magnitude|rms|peak|velocity|acceleration|displacement|mm/s|g\s|µm|μm`)},
	{evidence.RoleSpeed, regexp.MustCompile(`rpm|speed|rotation`)},
	{evidence.RoleTemperature, regexp.MustCompile(`temp|°c|°f|celsius|fahrenheit`)},
	{evidence.RolePressure, regexp.MustCompile(`pressure|bar|psi|kpa|mpa`)},
	{evidence.RoleHarmonic, regexp.MustCompile(`1x|2x|3x|harmonic`)},
}

// ColumnClassifier assigns a semantic role to every column of a table.
type ColumnClassifier struct {
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewColumnClassifier creates a classifier.
func NewColumnClassifier(c *coercer.TypeCoercer, logger *internal.Logger) *ColumnClassifier {
	return &ColumnClassifier{coercer: c, logger: logger.With("classifier")}
}

// Classify labels each column, name first and content second. The result
// keeps the table's column order.
func (c *ColumnClassifier) Classify(table *evidence.Table) evidence.ColumnAnalysis {
	var columns evidence.ColumnAnalysis
	for _, col := range table.Columns {
		role := c.classifyColumn(col, table.Column(col))
		columns.Set(col, role)
		c.logger.Trace("column %q -> %s", col, role)
	}
	return columns
}

func (c *ColumnClassifier) classifyColumn(name string, values []evidence.Value) evidence.ColumnRole {
	if role, ok := RoleFromName(name); ok {
		return role
	}
	return c.roleFromContent(values)
}

// RoleFromName matches a column name against the ordered name patterns.
func RoleFromName(name string) (evidence.ColumnRole, bool) {
	normalized := normalizeName(name)
	for _, p := range namePatterns {
		if p.pattern.MatchString(normalized) {
			return p.role, true
		}
	}
	return "", false
}

// roleFromContent samples the head of a column. A column with no values to
// sample has no numeric share and is text.
func (c *ColumnClassifier) roleFromContent(values []evidence.Value) evidence.ColumnRole {
	sample := c.coercer.Sample(values)
	if len(sample) > 0 && c.coercer.AnalyzeTypeDistribution(sample).IsNumeric {
		return evidence.RoleNumeric
	}
	return evidence.RoleText
}

// normalizeName folds compatibility characters (℃, fullwidth letters) before
// lower-casing so unit spellings match one pattern.
func normalizeName(name string) string {
	return strings.ToLower(norm.NFKC.String(name))
}
