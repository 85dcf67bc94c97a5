package table

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Table holds a tabular dataset as an ordered set of named string columns of
// equal length. The last column is the response; all preceding columns are
// candidate rating factors. A Table is never mutated after construction;
// operations that need a subset build a new Table.
type Table struct {
	names []string
	cols  [][]string // column-major, aligned with names
	rows  int
}

// DataSourceError reports an unreadable or malformed input file.
type DataSourceError struct {
	Path string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %v", e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// LoadCSV reads a UTF-8 CSV file with a header row into a Table. The header
// gives the column names and the last column is treated as the response.
// Malformed input (missing file, no header, duplicate names, row-length
// mismatch) fails with a *DataSourceError.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataSourceError{Path: path, Err: err}
	}
	defer f.Close()

	// FieldsPerRecord defaults to the header width, so the reader itself
	// rejects ragged rows.
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &DataSourceError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &DataSourceError{Path: path, Err: fmt.Errorf("empty file, expected a header row")}
	}

	t, err := New(records[0], records[1:])
	if err != nil {
		return nil, &DataSourceError{Path: path, Err: err}
	}
	return t, nil
}

// New builds a Table from a header and row-major records. Fails if there are
// fewer than two columns (at least one predictor plus the response), if names
// repeat, or if any row length disagrees with the header.
func New(names []string, rows [][]string) (*Table, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("need at least one predictor and a response column, got %d columns", len(names))
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return nil, fmt.Errorf("duplicate column name %q", n)
		}
		seen[n] = true
	}

	cols := make([][]string, len(names))
	for i := range cols {
		cols[i] = make([]string, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", r+1, len(row), len(names))
		}
		for c, v := range row {
			cols[c][r] = v
		}
	}

	return &Table{
		names: append([]string(nil), names...),
		cols:  cols,
		rows:  len(rows),
	}, nil
}

// Rows returns the number of data rows.
func (t *Table) Rows() int { return t.rows }

// Columns returns the column names in load order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// Response returns the name of the response column.
func (t *Table) Response() string { return t.names[len(t.names)-1] }

// Predictors returns the rating-factor column names in load order.
func (t *Table) Predictors() []string {
	return append([]string(nil), t.names[:len(t.names)-1]...)
}

// Column returns the cells of the named column. The second return is false
// when the column does not exist.
func (t *Table) Column(name string) ([]string, bool) {
	for i, n := range t.names {
		if n == name {
			return append([]string(nil), t.cols[i]...), true
		}
	}
	return nil, false
}

// Select builds a new Table containing the given rows, in the given order.
// Out-of-range indices fail.
func (t *Table) Select(rows []int) (*Table, error) {
	cols := make([][]string, len(t.names))
	for i := range cols {
		cols[i] = make([]string, len(rows))
	}
	for j, r := range rows {
		if r < 0 || r >= t.rows {
			return nil, fmt.Errorf("row index %d out of range [0,%d)", r, t.rows)
		}
		for c := range t.cols {
			cols[c][j] = t.cols[c][r]
		}
	}
	return &Table{names: append([]string(nil), t.names...), cols: cols, rows: len(rows)}, nil
}
