package calibration

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors returned by the fitting routines.
var (
	// ErrLengthMismatch indicates x, y and w slices of different lengths.
	ErrLengthMismatch = errors.New("calibration: x, y and weights must have equal length")

	// ErrUnderdetermined indicates fewer data points than fit coefficients.
	ErrUnderdetermined = errors.New("calibration: not enough points for requested degree")

	// ErrBadDegree indicates a negative polynomial degree.
	ErrBadDegree = errors.New("calibration: degree must be >= 0")
)

// PolyFit fits y(x) with a polynomial of the given degree by weighted
// least squares and returns the coefficients, highest power first.
// w scales the residual of each point (use 1/sigma for Gaussian errors);
// a nil w fits unweighted.
// Stage 1 (Validate): lengths, degree, point count.
// Stage 2 (Prepare): build the weighted Vandermonde system.
// Stage 3 (Solve): QR least squares.
// Complexity: O(n * degree^2).
func PolyFit(x, y, w []float64, degree int) ([]float64, error) {
	if degree < 0 {
		return nil, ErrBadDegree
	}
	if len(x) != len(y) || (w != nil && len(w) != len(x)) {
		return nil, ErrLengthMismatch
	}

	n := len(x)
	m := degree + 1
	if n < m {
		return nil, ErrUnderdetermined
	}

	a := mat.NewDense(n, m, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		wi := 1.0
		if w != nil {
			wi = w[i]
		}

		// Column j carries x^(degree-j), so coefficients come out
		// highest power first.
		p := 1.0
		for k := 0; k <= degree; k++ {
			a.Set(i, degree-k, wi*p)
			p *= x[i]
		}
		b.SetVec(i, wi*y[i])
	}

	var qr mat.QR
	qr.Factorize(a)

	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, b); err != nil {
		return nil, fmt.Errorf("calibration: polynomial fit failed: %w", err)
	}

	coeffs := make([]float64, m)
	for j := 0; j < m; j++ {
		coeffs[j] = sol.AtVec(j)
	}

	return coeffs, nil
}

// Polyval evaluates a polynomial with coefficients ordered highest power
// first (the PolyFit convention) at x, using Horner's scheme.
func Polyval(coeffs []float64, x float64) float64 {
	v := 0.0
	for _, c := range coeffs {
		v = v*x + c
	}

	return v
}
