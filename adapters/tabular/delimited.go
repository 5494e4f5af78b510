package tabular

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"evidencelens/adapters/coercer"
	"evidencelens/domain/core"
	"evidencelens/domain/evidence"
	"evidencelens/internal"
	"evidencelens/ports"
)

// CandidateDelimiters are tried in this order; the first one that yields
// more than one column and at least one row wins.
var CandidateDelimiters = []rune{',', '\t', ';', ' ', '|'}

// DelimitedReader reads CSV and TXT evidence, sniffing the delimiter.
type DelimitedReader struct {
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewDelimitedReader creates a delimited text reader.
func NewDelimitedReader(c *coercer.TypeCoercer, logger *internal.Logger) *DelimitedReader {
	return &DelimitedReader{coercer: c, logger: logger.With("delimited")}
}

func (r *DelimitedReader) Name() string {
	return "delimited"
}

func (r *DelimitedReader) CanHandle(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return true
	}
	return false
}

// Read parses delimited text. Escaped newline sequences are turned into real
// line breaks first so content passed as a single-line argument parses.
func (r *DelimitedReader) Read(content string) (*ports.ReadResult, error) {
	clean := NormalizeEscapedNewlines(content)

	for _, delimiter := range CandidateDelimiters {
		table, err := r.parse(clean, delimiter)
		if err != nil {
			r.logger.Debug("delimiter %q failed: %v", delimiter, err)
			continue
		}
		if table.ColumnCount() > 1 && table.RowCount() > 0 {
			r.logger.Info("parsed %d rows x %d columns with delimiter %q", table.RowCount(), table.ColumnCount(), delimiter)
			return &ports.ReadResult{
				Table:               table,
				Delimiter:           string(delimiter),
				DefaultEvidenceType: "Time Series Data",
			}, nil
		}
		r.logger.Debug("delimiter %q rejected: %d columns, %d rows", delimiter, table.ColumnCount(), table.RowCount())
	}

	return nil, fmt.Errorf("cannot parse file as CSV/TXT: %w", core.ErrNoDelimiter)
}

func (r *DelimitedReader) parse(content string, delimiter rune) (*evidence.Table, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return processRows(rows, r.coercer, true)
}

// NormalizeEscapedNewlines replaces literal "\r\n" and "\n" escape sequences
// with real line breaks.
func NormalizeEscapedNewlines(content string) string {
	content = strings.ReplaceAll(content, `\r\n`, "\n")
	return strings.ReplaceAll(content, `\n`, "\n")
}
