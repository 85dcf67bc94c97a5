package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	a := assert.New(t)
	tbl, err := New([]string{"age", "sex", "bmi", "claims"}, [][]string{
		{"25", "male", "22.1", "1000.0"},
		{"40", "female", "31.5", "5000.0"},
	})
	a.NoError(err)

	numeric, categorical := Classify(tbl, tbl.Predictors(), DefaultClassifyOptions())
	a.Equal([]string{"age", "bmi"}, numeric)
	a.Equal([]string{"sex"}, categorical)
}

func TestClassifyPartitionsExactly(t *testing.T) {
	a := assert.New(t)
	tbl, err := New([]string{"a", "b", "c", "d", "y"}, [][]string{
		{"1", "x", "2.5", "true", "10"},
		{"2", "y", "3.5", "false", "20"},
	})
	a.NoError(err)

	predictors := tbl.Predictors()
	numeric, categorical := Classify(tbl, predictors, DefaultClassifyOptions())

	// Disjoint and exhaustive over the input list, order preserved.
	a.Len(numeric, 2)
	a.Len(categorical, 2)
	seen := map[string]int{}
	for _, n := range append(append([]string{}, numeric...), categorical...) {
		seen[n]++
	}
	for _, p := range predictors {
		a.Equal(1, seen[p], "predictor %s should appear exactly once", p)
	}
}

func TestClassifyEmptyColumnPolicy(t *testing.T) {
	a := assert.New(t)
	tbl, err := New([]string{"age", "claims"}, nil)
	a.NoError(err)

	numeric, categorical := Classify(tbl, []string{"age"}, DefaultClassifyOptions())
	a.Empty(numeric)
	a.Equal([]string{"age"}, categorical)

	numeric, categorical = Classify(tbl, []string{"age"}, ClassifyOptions{EmptyColumns: EmptyAsNumeric})
	a.Equal([]string{"age"}, numeric)
	a.Empty(categorical)
}

func TestClassifyUnknownColumn(t *testing.T) {
	a := assert.New(t)
	tbl, err := New([]string{"age", "claims"}, [][]string{{"25", "1000"}})
	a.NoError(err)

	numeric, categorical := Classify(tbl, []string{"zip"}, DefaultClassifyOptions())
	a.Empty(numeric)
	a.Equal([]string{"zip"}, categorical)
}

func TestParseNumeric(t *testing.T) {
	a := assert.New(t)
	vals, err := ParseNumeric("age", []string{"25", "40.5"})
	a.NoError(err)
	a.Equal([]float64{25, 40.5}, vals)

	_, err = ParseNumeric("age", []string{"25", "old"})
	a.Error(err)
	pe, ok := err.(*ParseError)
	a.True(ok)
	a.Equal("age", pe.Column)
	a.Equal(1, pe.Row)
}
