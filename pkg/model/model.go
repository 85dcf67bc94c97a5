package model

import "gonum.org/v1/gonum/mat"

// Model is a supervised regression interface over a dense design matrix.
type Model interface {
	Fit(X *mat.Dense, y []float64) error
	Predict(X *mat.Dense) []float64
	Score(X *mat.Dense, y []float64) float64
}
