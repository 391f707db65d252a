package ingest

import "strings"

// Table is a parsed tabular file: ordered column headers plus raw cell
// values, one slice per row. Short rows read as empty cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex locates a column by case-insensitive, trimmed name. Returns
// -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, col := range t.Columns {
		if strings.ToLower(strings.TrimSpace(col)) == want {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is shorter than
// the header.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return cells[col]
}

// nullPlaceholders are spreadsheet artifacts treated as a true null.
var nullPlaceholders = map[string]struct{}{
	"":     {},
	"nan":  {},
	"NaN":  {},
	"NA":   {},
	"N/A":  {},
	"#N/A": {},
	"null": {},
	"NULL": {},
	"None": {},
}

// IsNull reports whether a raw cell value represents a missing value.
func IsNull(value string) bool {
	_, ok := nullPlaceholders[strings.TrimSpace(value)]
	return ok
}
