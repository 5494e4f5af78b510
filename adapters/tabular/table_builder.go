package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"evidencelens/adapters/coercer"
	"evidencelens/domain/evidence"
)

// normalizeHeaders trims header cells, names blank ones "Unnamed: <i>" and
// de-duplicates repeats as name.1, name.2, ...
func normalizeHeaders(headerRow []string) []string {
	headers := make([]string, len(headerRow))
	seen := make(map[string]int, len(headerRow))
	for i, header := range headerRow {
		name := strings.TrimSpace(header)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[name]; dup {
			candidate := fmt.Sprintf("%s.%d", name, n)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				n++
				candidate = fmt.Sprintf("%s.%d", name, n)
			}
			seen[name] = n + 1
			name = candidate
		}
		seen[name] = 1
		headers[i] = name
	}
	return headers
}

// isBlankRecord reports whether every field of a record is empty.
func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// processRows converts raw string rows into a table. The first row is the
// header. In strict mode a data row wider than the header is an error;
// otherwise the header is widened with unnamed columns.
func processRows(rows [][]string, c *coercer.TypeCoercer, strict bool) (*evidence.Table, error) {
	var records [][]string
	for _, row := range rows {
		if !isBlankRecord(row) {
			records = append(records, row)
		}
	}
	if len(records) == 0 {
		return evidence.NewTable(nil), nil
	}

	headerRow := records[0]
	width := len(headerRow)
	for i, row := range records[1:] {
		if len(row) > width {
			if strict {
				return nil, fmt.Errorf("expected %d fields in line %d, saw %d", width, i+2, len(row))
			}
			width = len(row)
		}
	}
	if width > len(headerRow) {
		widened := make([]string, width)
		copy(widened, headerRow)
		headerRow = widened
	}
	headers := normalizeHeaders(headerRow)

	table := evidence.NewTable(headers)
	for _, row := range records[1:] {
		cells := make(map[string]evidence.Value, len(headers))
		for j, header := range headers {
			if j < len(row) {
				cells[header] = c.CellValue(row[j])
			}
		}
		table.AddRow(cells)
	}
	return table, nil
}
