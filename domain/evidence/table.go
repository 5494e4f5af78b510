package evidence

// Value is a single raw table cell as delivered by a reader.
type Value struct {
	Raw     string  // textual form of the cell
	Num     float64 // native number, valid when Numeric is set
	Numeric bool    // the source format carried a typed number (JSON, spreadsheet)
	Missing bool
}

// MissingValue returns an empty cell.
func MissingValue() Value {
	return Value{Missing: true}
}

// TextValue wraps a textual cell.
func TextValue(raw string) Value {
	return Value{Raw: raw}
}

// NumberValue wraps a typed numeric cell.
func NumberValue(num float64, raw string) Value {
	return Value{Raw: raw, Num: num, Numeric: true}
}

// Row maps column name to cell value.
type Row map[string]Value

// Table is an ordered sequence of rows sharing one ordered column set.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column order.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// AddRow appends a row, filling absent columns with missing values and
// dropping cells for unknown columns so every row has the same column set.
func (t *Table) AddRow(cells map[string]Value) {
	row := make(Row, len(t.Columns))
	for _, col := range t.Columns {
		if v, ok := cells[col]; ok {
			row[col] = v
		} else {
			row[col] = MissingValue()
		}
	}
	t.Rows = append(t.Rows, row)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// IsEmpty reports whether the table has no cells at all.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0 || len(t.Columns) == 0
}

// Column returns the cells of one column in row order.
func (t *Table) Column(name string) []Value {
	values := make([]Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[name])
	}
	return values
}

// NonMissingCount counts cells that carry a value.
func (t *Table) NonMissingCount() int {
	count := 0
	for _, row := range t.Rows {
		for _, col := range t.Columns {
			if !row[col].Missing {
				count++
			}
		}
	}
	return count
}

// Completeness returns the percentage of non-missing cells.
func (t *Table) Completeness() float64 {
	cells := t.RowCount() * t.ColumnCount()
	if cells == 0 {
		return 0
	}
	return 100 * float64(t.NonMissingCount()) / float64(cells)
}
