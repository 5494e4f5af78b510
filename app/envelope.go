package app

import (
	"fmt"
	"strings"

	"evidencelens/domain/evidence"
	"evidencelens/internal/errors"
)

// Fixed confidence impacts of the terminal failure envelopes.
const (
	UnsupportedFormatConfidence = 10
	ParseFailureConfidence      = 5
)

const unknownEvidenceType = "Unknown"

// UnsupportedFormatResult is the envelope for an unrecognized extension.
func UnsupportedFormatResult(filename string, cfg evidence.EvidenceConfig) evidence.EvidenceResult {
	ext, ok := rawExtension(filename)
	summaryExt, promptExt := ext, ext
	if !ok {
		summaryExt, promptExt = "no extension", "unknown"
	}
	return evidence.EvidenceResult{
		Filename:                  filename,
		EvidenceType:              cfg.CategoryOr(unknownEvidenceType),
		DiagnosticValue:           evidence.DiagnosticLow,
		ParsedResultSummary:       "Unknown file format: " + summaryExt,
		ConfidenceImpact:          UnsupportedFormatConfidence,
		Remarks:                   "File format not supported for data science analysis",
		Status:                    evidence.StatusIncomplete,
		RequiresUserClarification: true,
		ClarificationPrompt:       fmt.Sprintf("File format .%s not supported. Please upload as CSV, TXT, XLSX, or JSON.", promptExt),
		FailureCode:               errors.CodeUnsupportedFormat,
	}
}

// ParseFailureResult is the envelope for content that could not become a table.
func ParseFailureResult(filename string, cfg evidence.EvidenceConfig, message string) evidence.EvidenceResult {
	return evidence.EvidenceResult{
		Filename:                  filename,
		EvidenceType:              cfg.CategoryOr(unknownEvidenceType),
		DiagnosticValue:           evidence.DiagnosticLow,
		ParsedResultSummary:       "Parsing failed: " + message,
		ConfidenceImpact:          ParseFailureConfidence,
		Remarks:                   "Data science parsing error: " + message,
		Status:                    evidence.StatusIncomplete,
		RequiresUserClarification: true,
		ClarificationPrompt:       "File could not be parsed. Please check format or provide different file.",
		FailureCode:               errors.CodeParseFailure,
	}
}

// rawExtension returns the text after the last dot as written, so the
// envelope echoes the caller's spelling.
func rawExtension(filename string) (string, bool) {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return "", false
	}
	return filename[i+1:], true
}
