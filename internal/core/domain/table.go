package domain

import (
	"math"
	"sort"
)

// PathColumn is the reserved, always-textual column holding each
// model file's base name.
const PathColumn = "path"

// Table is a row-per-model, column-per-metric store. It is owned
// exclusively by one Group and is built once at load time; rows are
// never mutated afterwards.
type Table struct {
	rows []*Record
}

// NewTable builds a table from records in the given order.
// Precedence between cached and freshly parsed records is the caller's
// concern; the table stores what it is given.
func NewTable(records []*Record) *Table {
	return &Table{rows: records}
}

// Len returns the number of model rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the record at the given index.
func (t *Table) Row(index int) (*Record, error) {
	if index < 0 || index >= len(t.rows) {
		return nil, ErrIndexOutOfRange
	}
	return t.rows[index], nil
}

// Rows returns the records in table order.
func (t *Table) Rows() []*Record {
	return t.rows
}

// Paths returns the path column in row order.
func (t *Table) Paths() []string {
	paths := make([]string, len(t.rows))
	for i, r := range t.rows {
		paths[i] = r.Path
	}
	return paths
}

// NumericColumns returns the names of all columns whose present values
// are exclusively numeric, sorted. The path column never qualifies.
// Rows missing a value for a column do not disqualify it; the missing
// cells read back as NaN.
func (t *Table) NumericColumns() []string {
	numeric := make(map[string]bool)
	for _, r := range t.rows {
		for name, v := range r.Fields {
			if name == PathColumn {
				continue
			}
			seen, known := numeric[name]
			if !known {
				numeric[name] = v.IsNumber()
				continue
			}
			if seen && !v.IsNumber() {
				numeric[name] = false
			}
		}
	}

	names := make([]string, 0, len(numeric))
	for name, ok := range numeric {
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HasNumericColumn reports whether name is a numeric column.
func (t *Table) HasNumericColumn(name string) bool {
	for _, col := range t.NumericColumns() {
		if col == name {
			return true
		}
	}
	return false
}

// Column returns the named numeric column in row order. Rows lacking
// the metric contribute NaN. Unknown or non-numeric names fail with an
// UnknownMetricError listing the valid alternatives.
func (t *Table) Column(name string) ([]float64, error) {
	if !t.HasNumericColumn(name) {
		return nil, &UnknownMetricError{Metric: name, Defined: t.NumericColumns()}
	}

	values := make([]float64, len(t.rows))
	for i, r := range t.rows {
		if v, ok := r.Number(name); ok {
			values[i] = v
		} else {
			values[i] = math.NaN()
		}
	}
	return values, nil
}
