package app

import (
	"encoding/json"
	"fmt"
	"time"

	"evidencelens/adapters/coercer"
	"evidencelens/adapters/tabular"
	"evidencelens/domain/core"
	"evidencelens/domain/evidence"
	"evidencelens/internal"
	"evidencelens/internal/analysis"
	"evidencelens/internal/errors"
	"evidencelens/internal/features"
	"evidencelens/ports"
)

// EvidenceService turns one evidence file into one EvidenceResult
type EvidenceService struct {
	readers    ports.ReaderSelector
	classifier *analysis.ColumnClassifier
	signals    *analysis.SignalAnalyzer
	scorer     *analysis.DiagnosticScorer
	features   *features.Builder
	logger     *internal.Logger
}

// NewEvidenceService creates an evidence service over the given readers
func NewEvidenceService(readers ports.ReaderSelector, c *coercer.TypeCoercer, logger *internal.Logger) *EvidenceService {
	return &EvidenceService{
		readers:    readers,
		classifier: analysis.NewColumnClassifier(c, logger),
		signals:    analysis.NewSignalAnalyzer(c, logger),
		scorer:     analysis.NewDiagnosticScorer(logger),
		features:   features.NewBuilder(c, logger),
		logger:     logger.With("evidence"),
	}
}

// NewDefaultEvidenceService wires the delimited, spreadsheet and JSON readers
func NewDefaultEvidenceService(logger *internal.Logger) *EvidenceService {
	return NewEvidenceService(tabular.NewDefaultDataReader(logger), coercer.Default, logger)
}

// Analyze reads, classifies, analyzes, scores and describes one file. It
// always returns a result that encodes as JSON: unsupported extensions and
// parse failures become Incomplete envelopes, and a panic anywhere in the
// pipeline or an unencodable result becomes a parse failure.
func (s *EvidenceService) Analyze(filename, content string, cfg evidence.EvidenceConfig) (result evidence.EvidenceResult) {
	startTime := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err := errors.ParseFailure("pipeline aborted", fmt.Errorf("%v", r))
			s.logger.Error("%s: %v", filename, err)
			result = ParseFailureResult(filename, cfg, err.Error())
		}
	}()

	reader, err := s.readers.ReaderFor(filename)
	if err != nil && !core.IsUnsupportedFormat(err) {
		s.logger.Error("%s: reader selection failed: %v", filename, err)
		return ParseFailureResult(filename, cfg, err.Error())
	}
	if err != nil {
		ext, _ := rawExtension(filename)
		s.logger.Warn("%s: %v", filename, errors.UnsupportedFormat(ext))
		return UnsupportedFormatResult(filename, cfg)
	}

	read, err := reader.Read(content)
	if err != nil {
		s.logger.Warn("%s: %v", filename, errors.ParseFailure(reader.Name(), err))
		return ParseFailureResult(filename, cfg, err.Error())
	}

	result = s.describe(filename, cfg, read)
	if _, err := json.Marshal(result); err != nil {
		err = errors.ParseFailure("result could not be encoded", err)
		s.logger.Error("%s: %v", filename, err)
		return ParseFailureResult(filename, cfg, err.Error())
	}
	s.logger.Info("%s analyzed in %dms: %s (%d)", filename, time.Since(startTime).Milliseconds(), result.DiagnosticValue, result.ConfidenceImpact)
	return result
}

// describe runs the shared pipeline on a parsed table.
func (s *EvidenceService) describe(filename string, cfg evidence.EvidenceConfig, read *ports.ReadResult) evidence.EvidenceResult {
	table := read.Table
	s.logger.Info("%s: %d rows x %d columns (%s)", filename, table.RowCount(), table.ColumnCount(), read.Delimiter)

	columns := s.classifier.Classify(table)
	signals := s.signals.Analyze(table, columns)
	assessment := s.scorer.Assess(table, columns, signals)
	feats := s.features.Build(features.Input{
		Table:      table,
		Columns:    columns,
		Signals:    signals,
		Assessment: assessment,
		Config:     cfg,
		Delimiter:  read.Delimiter,
	})

	return evidence.EvidenceResult{
		Filename:            filename,
		EvidenceType:        cfg.CategoryOr(read.DefaultEvidenceType),
		DiagnosticValue:     assessment.Value,
		ParsedResultSummary: assessment.Summary,
		ConfidenceImpact:    assessment.ConfidenceImpact,
		Remarks:             assessment.Remarks,
		Status:              evidence.StatusAvailable,
		DetectedColumns:     table.Columns,
		ExtractedFeatures:   feats,
	}
}
