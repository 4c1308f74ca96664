package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyHeader is returned when a table is built without any column names.
var ErrEmptyHeader = errors.New("table header is empty")

// Table is an ordered, immutable collection of rows sharing one header.
// Constructors copy their input and accessors hand out copies, so a Table
// can be shared freely between callers.
type Table struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// Record is a read-only view of one row.
type Record struct {
	t   *Table
	pos int
}

// New builds a table from a header and rows. Short rows are padded with
// empty values; rows longer than the header are rejected.
func New(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmptyHeader
	}
	h := make([]string, len(header))
	copy(h, header)
	out := make([][]string, 0, len(rows))
	for i, r := range rows {
		if len(r) > len(h) {
			return nil, fmt.Errorf("row %d: %d fields, header has %d", i+1, len(r), len(h))
		}
		row := make([]string, len(h))
		copy(row, r)
		out = append(out, row)
	}
	return build(h, out), nil
}

// build wraps already-owned slices without copying.
func build(header []string, rows [][]string) *Table {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return &Table{header: header, rows: rows, index: idx}
}

// Header returns a copy of the column names.
func (t *Table) Header() []string {
	h := make([]string, len(t.header))
	copy(h, t.header)
	return h
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// HasColumn reports whether name is part of the header.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of name in the header, or -1.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Row returns the record at position i. It panics if i is out of range,
// like slice indexing.
func (t *Table) Row(i int) Record {
	_ = t.rows[i]
	return Record{t: t, pos: i}
}

// Rows returns a deep copy of all row values.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = cloneRow(r)
	}
	return out
}

// Column returns a copy of the values in the named column.
func (t *Table) Column(name string) ([]string, bool) {
	j, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[j]
	}
	return out, true
}

// Distinct returns the distinct non-missing values of a column in order of
// first appearance.
func (t *Table) Distinct(name string) []string {
	j, ok := t.index[name]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.rows {
		v := r[j]
		if IsMissing(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(Record) bool) *Table {
	rows := make([][]string, 0, len(t.rows))
	for i, r := range t.rows {
		if keep(Record{t: t, pos: i}) {
			rows = append(rows, cloneRow(r))
		}
	}
	return build(t.Header(), rows)
}

// DropColumns returns a new table without the named columns. Names that are
// not present are ignored; the second result lists the columns removed.
func (t *Table) DropColumns(names ...string) (*Table, []string) {
	drop := make(map[int]bool)
	var dropped []string
	for _, n := range names {
		if j, ok := t.index[n]; ok && !drop[j] {
			drop[j] = true
			dropped = append(dropped, n)
		}
	}
	if len(drop) == 0 {
		return build(t.Header(), t.Rows()), nil
	}
	header := make([]string, 0, len(t.header)-len(drop))
	for j, h := range t.header {
		if !drop[j] {
			header = append(header, h)
		}
	}
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		row := make([]string, 0, len(header))
		for j, v := range r {
			if !drop[j] {
				row = append(row, v)
			}
		}
		rows[i] = row
	}
	return build(header, rows), dropped
}

// WithValue returns a new table where the cell at (row, column) holds value.
func (t *Table) WithValue(row int, column string, value string) (*Table, error) {
	j, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", column)
	}
	if row < 0 || row >= len(t.rows) {
		return nil, fmt.Errorf("row %d out of range [0,%d)", row, len(t.rows))
	}
	rows := t.Rows()
	rows[row][j] = value
	return build(t.Header(), rows), nil
}

// WithoutRow returns a new table with the row at position i removed.
func (t *Table) WithoutRow(i int) (*Table, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("row %d out of range [0,%d)", i, len(t.rows))
	}
	rows := make([][]string, 0, len(t.rows)-1)
	for k, r := range t.rows {
		if k != i {
			rows = append(rows, cloneRow(r))
		}
	}
	return build(t.Header(), rows), nil
}

// WithRow returns a new table with a row appended. Values are keyed by
// column name; columns not listed are left empty.
func (t *Table) WithRow(values map[string]string) (*Table, error) {
	row := make([]string, len(t.header))
	for k, v := range values {
		j, ok := t.index[k]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", k)
		}
		row[j] = v
	}
	rows := append(t.Rows(), row)
	return build(t.Header(), rows), nil
}

// Equal reports whether two tables have the same header and rows.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.header) != len(o.header) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.header {
		if t.header[i] != o.header[i] {
			return false
		}
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if t.rows[i][j] != o.rows[i][j] {
				return false
			}
		}
	}
	return true
}

// Get returns the value of the named field and whether the column exists.
func (r Record) Get(name string) (string, bool) {
	j, ok := r.t.index[name]
	if !ok {
		return "", false
	}
	return r.t.rows[r.pos][j], true
}

// Value returns the named field, or "" when the column does not exist.
func (r Record) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Missing reports whether the named field is absent or blank.
func (r Record) Missing(name string) bool {
	v, ok := r.Get(name)
	return !ok || IsMissing(v)
}

// Values returns a copy of the row values in header order.
func (r Record) Values() []string { return cloneRow(r.t.rows[r.pos]) }

// Position returns the row position within its table.
func (r Record) Position() int { return r.pos }

// IsMissing reports whether a raw cell value counts as missing.
func IsMissing(v string) bool { return strings.TrimSpace(v) == "" }

func cloneRow(r []string) []string {
	out := make([]string, len(r))
	copy(out, r)
	return out
}
