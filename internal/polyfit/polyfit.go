// Package polyfit provides least-squares polynomial fitting shared by the
// fluctuation analysis packages.
package polyfit

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by the fitting routines.
var (
	ErrLengthMismatch = errors.New("polyfit: x and y must have the same length")
	ErrInvalidDegree  = errors.New("polyfit: degree must be non-negative")
	ErrTooFewPoints   = errors.New("polyfit: need at least degree+1 points")
)

// Fit performs a least-squares fit of a degree-d polynomial to the points
// (x[i], y[i]). Coefficients are returned highest power first, so that
//
//	y ≈ c[0]*x^d + c[1]*x^(d-1) + ... + c[d]
//
// together with the residual (sum of squared fit errors). The system is
// solved through a QR factorisation of the Vandermonde matrix rather than
// the normal equations, which keeps the fit stable for segments as short
// as degree+2 points.
func Fit(x, y []float64, degree int) ([]float64, float64, error) {
	if len(x) != len(y) {
		return nil, 0, ErrLengthMismatch
	}

	if degree < 0 {
		return nil, 0, ErrInvalidDegree
	}

	m := len(x)
	cols := degree + 1

	if m < cols {
		return nil, 0, fmt.Errorf("%w: got %d points for degree %d", ErrTooFewPoints, m, degree)
	}

	// Vandermonde matrix with columns ordered highest power first.
	a := mat.NewDense(m, cols, nil)
	for i := 0; i < m; i++ {
		p := 1.0
		for j := cols - 1; j >= 0; j-- {
			a.Set(i, j, p)
			p *= x[i]
		}
	}

	b := mat.NewDense(m, 1, nil)
	for i, v := range y {
		b.Set(i, 0, v)
	}

	var qr mat.QR
	qr.Factorize(a)

	var sol mat.Dense
	if err := qr.SolveTo(&sol, false, b); err != nil {
		return nil, 0, fmt.Errorf("polyfit: solve failed: %w", err)
	}

	coeffs := make([]float64, cols)
	for j := range coeffs {
		coeffs[j] = sol.At(j, 0)
	}

	var residual float64
	for i := range x {
		d := y[i] - Eval(coeffs, x[i])
		residual += d * d
	}

	return coeffs, residual, nil
}

// Eval evaluates a polynomial with coefficients ordered highest power first
// at the point x, using Horner's method.
func Eval(coeffs []float64, x float64) float64 {
	var y float64
	for _, c := range coeffs {
		y = y*x + c
	}

	return y
}
