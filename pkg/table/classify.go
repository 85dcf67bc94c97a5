package table

import "strconv"

// EmptyColumnPolicy decides how a column with zero rows is classified.
type EmptyColumnPolicy int

const (
	// EmptyAsCategorical treats a zero-row column as categorical.
	EmptyAsCategorical EmptyColumnPolicy = iota
	// EmptyAsNumeric treats a zero-row column as numeric.
	EmptyAsNumeric
)

// ClassifyOptions controls column classification.
type ClassifyOptions struct {
	EmptyColumns EmptyColumnPolicy
}

// DefaultClassifyOptions classifies empty columns as categorical.
func DefaultClassifyOptions() ClassifyOptions {
	return ClassifyOptions{EmptyColumns: EmptyAsCategorical}
}

// Classify partitions the given predictor columns into numeric and
// categorical name lists, preserving input order. A column is numeric iff
// every one of its cells parses as a float. Names that do not resolve to a
// column classify as categorical, since nothing proves them numeric.
func Classify(t *Table, predictors []string, opts ClassifyOptions) (numeric, categorical []string) {
	for _, name := range predictors {
		col, ok := t.Column(name)
		if !ok {
			categorical = append(categorical, name)
			continue
		}
		if len(col) == 0 {
			if opts.EmptyColumns == EmptyAsNumeric {
				numeric = append(numeric, name)
			} else {
				categorical = append(categorical, name)
			}
			continue
		}
		if isNumeric(col) {
			numeric = append(numeric, name)
		} else {
			categorical = append(categorical, name)
		}
	}
	return numeric, categorical
}

func isNumeric(col []string) bool {
	for _, v := range col {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return true
}

// ParseNumeric converts a column's cells to float64s. It reports the first
// cell that fails to parse.
func ParseNumeric(name string, col []string) ([]float64, error) {
	out := make([]float64, len(col))
	for i, v := range col {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &ParseError{Column: name, Row: i, Value: v}
		}
		out[i] = f
	}
	return out, nil
}

// ParseError reports a cell that could not be parsed as a number.
type ParseError struct {
	Column string
	Row    int
	Value  string
}

func (e *ParseError) Error() string {
	return "column " + e.Column + " row " + strconv.Itoa(e.Row) + ": cannot parse " + strconv.Quote(e.Value) + " as a number"
}
