package dataprep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/jtsw1990/shap-article/pkg/table"
)

// Vocabulary holds, for each categorical column, the distinct values observed
// at fit time in first-seen order. It is computed once from training data and
// reused read-only to encode any other subset.
type Vocabulary struct {
	columns []string
	values  map[string][]string
}

// EmptyVocabularyError reports a categorical column with no observed values.
type EmptyVocabularyError struct {
	Column string
}

func (e *EmptyVocabularyError) Error() string {
	return fmt.Sprintf("column %s: no values to build a vocabulary from", e.Column)
}

// Columns returns the categorical column names in fit order.
func (v *Vocabulary) Columns() []string {
	return append([]string(nil), v.columns...)
}

// Values returns the distinct values of the named column in first-seen order.
func (v *Vocabulary) Values(column string) []string {
	return append([]string(nil), v.values[column]...)
}

// Size returns the number of distinct values for the named column.
func (v *Vocabulary) Size(column string) int { return len(v.values[column]) }

// Fit computes a Vocabulary over the given categorical columns. Values are
// ordered by first appearance in the column, so encoding is deterministic for
// a fixed input. A column with zero values fails with *EmptyVocabularyError.
func Fit(t *table.Table, categorical []string) (*Vocabulary, error) {
	v := &Vocabulary{values: make(map[string][]string, len(categorical))}
	for _, name := range categorical {
		col, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("fit: no column %q in table", name)
		}
		if len(col) == 0 {
			return nil, &EmptyVocabularyError{Column: name}
		}
		seen := make(map[string]bool, len(col))
		var vals []string
		for _, cell := range col {
			if !seen[cell] {
				seen[cell] = true
				vals = append(vals, cell)
			}
		}
		v.columns = append(v.columns, name)
		v.values[name] = vals
	}
	return v, nil
}

// EncodedTable is a fully numeric design matrix with named columns: numeric
// passthrough columns first, then one contiguous indicator block per
// categorical column.
type EncodedTable struct {
	names []string
	data  [][]float64 // row-major
}

// Transform encodes a table against a fitted Vocabulary. Numeric predictor
// columns pass through unchanged in their original order; each categorical
// column expands into one indicator column per vocabulary value, named
// <column>__<value>. A cell whose value is absent from the vocabulary yields
// an all-zero indicator block for that column. Transform never mutates its
// inputs and is deterministic: the same table and vocabulary always produce
// the same output.
func Transform(t *table.Table, numeric []string, vocab *Vocabulary) (*EncodedTable, error) {
	rows := t.Rows()
	var names []string
	var cols [][]float64

	for _, name := range numeric {
		raw, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("transform: no column %q in table", name)
		}
		vals, err := table.ParseNumeric(name, raw)
		if err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
		names = append(names, name)
		cols = append(cols, vals)
	}

	for _, name := range vocab.Columns() {
		raw, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("transform: no column %q in table", name)
		}
		index := make(map[string]int)
		for i, val := range vocab.values[name] {
			index[val] = i
			names = append(names, name+"__"+val)
		}
		block := make([][]float64, vocab.Size(name))
		for i := range block {
			block[i] = make([]float64, rows)
		}
		for r, cell := range raw {
			if i, ok := index[cell]; ok {
				block[i][r] = 1
			}
			// Unseen values leave the whole block zero for this row.
		}
		cols = append(cols, block...)
	}

	data := make([][]float64, rows)
	for r := range data {
		row := make([]float64, len(cols))
		for c := range cols {
			row[c] = cols[c][r]
		}
		data[r] = row
	}
	return &EncodedTable{names: names, data: data}, nil
}

// Names returns the encoded column names in output order.
func (e *EncodedTable) Names() []string {
	return append([]string(nil), e.names...)
}

// Rows returns the number of rows.
func (e *EncodedTable) Rows() int { return len(e.data) }

// Cols returns the number of encoded columns.
func (e *EncodedTable) Cols() int { return len(e.names) }

// Row returns the i-th encoded row.
func (e *EncodedTable) Row(i int) []float64 {
	return append([]float64(nil), e.data[i]...)
}

// Matrix returns the encoded data as a dense design matrix for model fitting.
func (e *EncodedTable) Matrix() *mat.Dense {
	if len(e.data) == 0 {
		return nil
	}
	m := mat.NewDense(len(e.data), len(e.names), nil)
	for r, row := range e.data {
		m.SetRow(r, row)
	}
	return m
}

// Target parses a table's response column into a float vector.
func Target(t *table.Table) ([]float64, error) {
	name := t.Response()
	col, _ := t.Column(name)
	vals, err := table.ParseNumeric(name, col)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	return vals, nil
}
