package model

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression is a least-squares regression with an intercept and an L2
// penalty on the weights. Lambda keeps the normal equations non-singular when
// indicator blocks are collinear with the intercept; the default is small
// enough to leave well-conditioned fits effectively unregularized.
type LinearRegression struct {
	Lambda float64

	weights   []float64
	intercept float64
}

var _ Model = (*LinearRegression)(nil)

// NewLinearRegression returns an unfitted model with the default penalty.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{Lambda: 1e-6}
}

// Fit solves the penalized least-squares problem for X and y. X must have
// one row per element of y. The intercept is not penalized.
func (m *LinearRegression) Fit(X *mat.Dense, y []float64) error {
	if X == nil {
		return errors.New("empty design matrix")
	}
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return errors.New("empty design matrix")
	}
	if n != len(y) {
		return fmt.Errorf("design matrix has %d rows, target has %d", n, len(y))
	}

	// Augment with a leading ones column for the intercept.
	aug := mat.NewDense(n, d+1, nil)
	for i := 0; i < n; i++ {
		aug.Set(i, 0, 1)
	}
	aug.Slice(0, n, 1, d+1).(*mat.Dense).Copy(X)

	// Normal equations: (XᵀX + λJ)β = Xᵀy, J = identity except the
	// intercept position.
	var xtx mat.Dense
	xtx.Mul(aug.T(), aug)
	for j := 1; j <= d; j++ {
		xtx.Set(j, j, xtx.At(j, j)+m.Lambda)
	}
	var xty mat.VecDense
	xty.MulVec(aug.T(), mat.NewVecDense(n, y))

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		return fmt.Errorf("least squares solve: %w", err)
	}

	m.intercept = beta.AtVec(0)
	m.weights = make([]float64, d)
	for j := 0; j < d; j++ {
		m.weights[j] = beta.AtVec(j + 1)
	}
	return nil
}

// Predict returns fitted values for the rows of X. Rows are scored in
// parallel across CPU cores; each worker writes a disjoint output range.
func (m *LinearRegression) Predict(X *mat.Dense) []float64 {
	if X == nil {
		return nil
	}
	n, d := X.Dims()
	if n == 0 || d != len(m.weights) {
		return nil
	}
	pred := make([]float64, n)

	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		s := w * rowsPerWorker
		e := s + rowsPerWorker
		if e > n {
			e = n
		}
		if s >= e {
			continue
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				sum := m.intercept
				for j, wt := range m.weights {
					sum += wt * X.At(i, j)
				}
				pred[i] = sum
			}
		}(s, e)
	}
	wg.Wait()
	return pred
}

// Score returns the R² of the model's predictions on X against y.
func (m *LinearRegression) Score(X *mat.Dense, y []float64) float64 {
	return R2(y, m.Predict(X))
}

// Coef returns the fitted weights, one per design-matrix column.
func (m *LinearRegression) Coef() []float64 {
	return append([]float64(nil), m.weights...)
}

// Intercept returns the fitted bias term.
func (m *LinearRegression) Intercept() float64 { return m.intercept }
