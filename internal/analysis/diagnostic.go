package analysis

import (
	"fmt"
	"math"
	"strings"

	"evidencelens/domain/core"
	"evidencelens/domain/evidence"
	"evidencelens/internal"
	"evidencelens/internal/errors"
)

// Score contributions.
const (
	maxCompletenessScore = 30
	diverseRolesScore    = 20
	moderateRolesScore   = 10
	spectrumScore        = 25
	trendScore           = 15
	largeDatasetScore    = 10
	mediumDatasetScore   = 5

	largeDatasetRows  = 1000
	mediumDatasetRows = 100

	highThreshold   = 80
	mediumThreshold = 50
	highCap         = 95
	mediumCap       = 75
	lowFloor        = 20

	summaryRemarks = 3
)

// DiagnosticScorer rates how useful a table is as diagnostic evidence.
type DiagnosticScorer struct {
	logger *internal.Logger
}

// NewDiagnosticScorer creates a scorer.
func NewDiagnosticScorer(logger *internal.Logger) *DiagnosticScorer {
	return &DiagnosticScorer{logger: logger.With("scorer")}
}

// Assess scores a table. It never fails: an internal error degrades to a
// fixed Low assessment that carries the error.
func (s *DiagnosticScorer) Assess(table *evidence.Table, columns evidence.ColumnAnalysis, signals evidence.SignalAnalysis) (assessment evidence.DiagnosticAssessment) {
	defer func() {
		if r := recover(); r != nil {
			assessment = s.fallback(fmt.Errorf("%v", r))
		}
	}()

	assessment, err := score(table, columns, signals)
	if err != nil {
		return s.fallback(err)
	}
	s.logger.Debug("score %.1f -> %s (%d)", assessment.DataQuality.TotalScore, assessment.Value, assessment.ConfidenceImpact)
	return assessment
}

func (s *DiagnosticScorer) fallback(cause error) evidence.DiagnosticAssessment {
	s.logger.Warn("%v", errors.AssessmentFailure(cause))
	return evidence.DiagnosticAssessment{
		Value:            evidence.DiagnosticLow,
		ConfidenceImpact: lowFloor,
		Summary:          fmt.Sprintf("Assessment failed: %v", cause),
		Remarks:          "Could not assess data quality",
		DataQuality:      evidence.DataQuality{Err: cause.Error()},
	}
}

func score(table *evidence.Table, columns evidence.ColumnAnalysis, signals evidence.SignalAnalysis) (evidence.DiagnosticAssessment, error) {
	if table.IsEmpty() {
		return evidence.DiagnosticAssessment{}, fmt.Errorf("%w: empty table", core.ErrAssessment)
	}

	var total float64
	var remarks []string

	completeness := table.Completeness()
	total += math.Min(completeness, maxCompletenessScore)
	remarks = append(remarks, fmt.Sprintf("Data completeness: %.1f%%", completeness))

	switch roles := columns.DistinctRoles(); {
	case roles >= 3:
		total += diverseRolesScore
		remarks = append(remarks, "Good column type diversity")
	case roles >= 2:
		total += moderateRolesScore
		remarks = append(remarks, "Moderate column type diversity")
	}

	if signals.SpectrumPerformed() {
		total += spectrumScore
		remarks = append(remarks, "FFT analysis completed")
	}

	if trends := signals.TrendCount(); trends > 0 {
		total += trendScore
		remarks = append(remarks, fmt.Sprintf("Trend analysis on %d signals", trends))
	}

	switch rows := table.RowCount(); {
	case rows > largeDatasetRows:
		total += largeDatasetScore
		remarks = append(remarks, "Large dataset (>1000 points)")
	case rows > mediumDatasetRows:
		total += mediumDatasetScore
		remarks = append(remarks, "Medium dataset (>100 points)")
	}

	value, confidence := Bucket(total)
	head := remarks
	if len(head) > summaryRemarks {
		head = head[:summaryRemarks]
	}

	return evidence.DiagnosticAssessment{
		Value:            value,
		ConfidenceImpact: confidence,
		Summary:          fmt.Sprintf("Dataset: %d rows x %d columns. %s", table.RowCount(), table.ColumnCount(), strings.Join(head, " ")),
		Remarks:          strings.Join(remarks, " | "),
		DataQuality: evidence.DataQuality{
			CompletenessScore: completeness,
			TotalScore:        total,
			Factors:           remarks,
		},
	}, nil
}

// Bucket maps a raw score to its diagnostic value and the truncated,
// bucket-capped confidence impact.
func Bucket(score float64) (evidence.DiagnosticValue, int) {
	switch {
	case score >= highThreshold:
		return evidence.DiagnosticHigh, int(math.Min(score, highCap))
	case score >= mediumThreshold:
		return evidence.DiagnosticMedium, int(math.Min(score, mediumCap))
	}
	return evidence.DiagnosticLow, int(math.Max(score, lowFloor))
}
