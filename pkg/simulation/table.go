package simulation

import (
	"fmt"
	"strings"
)

// Result maps a run name to the table that run produced
type Result map[string]*Table

// Table is a column-oriented result table with named columns and one row per
// recorded observation.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]interface{}
}

// NewTable creates an empty table with the given columns
func NewTable(columns ...string) (*Table, error) {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if c == "" {
			return nil, fmt.Errorf("column name must not be empty")
		}
		if _, dup := t.index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// AddRow appends a row; it must have exactly one value per column
func (t *Table) AddRow(values ...interface{}) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	row := make([]interface{}, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Columns returns the column names in declaration order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Column returns a copy of every value in the named column
func (t *Table) Column(name string) ([]interface{}, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]interface{}, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, true
}

// Value returns the cell at the given row and column
func (t *Table) Value(row int, column string) (interface{}, bool) {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return nil, false
	}
	return t.rows[row][i], true
}

// Records returns the rows formatted as strings, for printing
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for r, row := range t.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%v", v)
		}
		out[r] = cells
	}
	return out
}

func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.columns, "\t"))
	for _, rec := range t.Records() {
		b.WriteString("\n")
		b.WriteString(strings.Join(rec, "\t"))
	}
	return b.String()
}
