package tabular

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"evidencelens/adapters/coercer"
	"evidencelens/domain/core"
	"evidencelens/internal"
	"evidencelens/ports"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetReader reads the first sheet of a base64-encoded workbook.
type SpreadsheetReader struct {
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewSpreadsheetReader creates a workbook reader.
func NewSpreadsheetReader(c *coercer.TypeCoercer, logger *internal.Logger) *SpreadsheetReader {
	return &SpreadsheetReader{coercer: c, logger: logger.With("spreadsheet")}
}

func (r *SpreadsheetReader) Name() string {
	return "spreadsheet"
}

func (r *SpreadsheetReader) CanHandle(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// Read decodes base64 content and reads the first sheet into a table.
func (r *SpreadsheetReader) Read(content string) (*ports.ReadResult, error) {
	raw, err := decodeBase64(content)
	if err != nil {
		return nil, core.NewParseError("spreadsheet", fmt.Errorf("invalid base64 content: %w", err))
	}

	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, core.NewParseError("spreadsheet", fmt.Errorf("failed to open workbook: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.NewParseError("spreadsheet", fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, core.NewParseError("spreadsheet", fmt.Errorf("failed to read %s: %w", sheets[0], err))
	}
	r.logger.Debug("sheet %q read in %.2fms (%d rows)", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	table, err := processRows(rows, r.coercer, false)
	if err != nil {
		return nil, core.NewParseError("spreadsheet", err)
	}
	if table.IsEmpty() {
		return nil, core.ErrEmptyTable
	}
	r.logger.Info("parsed spreadsheet: %d rows x %d columns", table.RowCount(), table.ColumnCount())

	return &ports.ReadResult{
		Table:               table,
		Delimiter:           "Excel",
		DefaultEvidenceType: "Spreadsheet Data",
	}, nil
}

// decodeBase64 accepts standard base64 with arbitrary embedded whitespace.
func decodeBase64(content string) ([]byte, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, content)
	return base64.StdEncoding.DecodeString(compact)
}
