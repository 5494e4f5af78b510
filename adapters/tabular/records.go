package tabular

import (
	"fmt"
	"path/filepath"
	"strings"

	"evidencelens/domain/core"
	"evidencelens/domain/evidence"
	"evidencelens/internal"
	"evidencelens/ports"

	"github.com/tidwall/gjson"
)

// RecordsReader reads JSON evidence: an array of objects becomes one row per
// object, a single object becomes a one-row table.
type RecordsReader struct {
	logger *internal.Logger
}

// NewRecordsReader creates a JSON records reader.
func NewRecordsReader(logger *internal.Logger) *RecordsReader {
	return &RecordsReader{logger: logger.With("records")}
}

func (r *RecordsReader) Name() string {
	return "records"
}

func (r *RecordsReader) CanHandle(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".json"
}

// Read parses JSON content. Field order follows first appearance across records.
func (r *RecordsReader) Read(content string) (*ports.ReadResult, error) {
	if !gjson.Valid(content) {
		return nil, core.NewParseError("json", fmt.Errorf("invalid JSON document"))
	}

	doc := gjson.Parse(content)
	var records []gjson.Result
	switch {
	case doc.IsArray():
		records = doc.Array()
		if len(records) == 0 {
			return nil, core.ErrNotTabular
		}
		for i, rec := range records {
			if !rec.IsObject() {
				return nil, fmt.Errorf("%w: element %d is not an object", core.ErrNotTabular, i)
			}
		}
	case doc.IsObject():
		records = []gjson.Result{doc}
	default:
		return nil, core.ErrNotTabular
	}

	var columns []string
	seen := make(map[string]bool)
	rows := make([]map[string]evidence.Value, 0, len(records))
	for _, rec := range records {
		cells := make(map[string]evidence.Value)
		rec.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
			cells[name] = cellFromJSON(value)
			return true
		})
		rows = append(rows, cells)
	}

	table := evidence.NewTable(columns)
	for _, cells := range rows {
		table.AddRow(cells)
	}
	if table.IsEmpty() {
		return nil, core.ErrEmptyTable
	}
	r.logger.Info("parsed JSON: %d records x %d fields", table.RowCount(), table.ColumnCount())

	return &ports.ReadResult{
		Table:               table,
		Delimiter:           "JSON",
		DefaultEvidenceType: "JSON Data",
	}, nil
}

// cellFromJSON keeps numbers typed; nested structures stay as raw JSON text.
func cellFromJSON(value gjson.Result) evidence.Value {
	switch value.Type {
	case gjson.Null:
		return evidence.MissingValue()
	case gjson.Number:
		return evidence.NumberValue(value.Float(), value.Raw)
	case gjson.String:
		return evidence.TextValue(value.Str)
	default:
		return evidence.TextValue(value.Raw)
	}
}
