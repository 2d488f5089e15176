package units

import (
	"errors"
	"math"
)

// Sentinel errors returned by the conversion functions.
var (
	// ErrBadWavelength indicates a zero, negative, NaN or infinite wavelength.
	ErrBadWavelength = errors.New("units: wavelength must be positive and finite")

	// ErrDomain indicates that |Q*lambda/(4*pi)| exceeds 1, so no real
	// scattering angle exists for the requested momentum transfer.
	ErrDomain = errors.New("units: momentum transfer outside the physical domain")
)

// degPerRad converts radians to degrees.
const degPerRad = 180.0 / math.Pi

// checkWavelength validates a single wavelength value.
func checkWavelength(wavelength float64) error {
	if wavelength <= 0 || math.IsNaN(wavelength) || math.IsInf(wavelength, 0) {
		return ErrBadWavelength
	}

	return nil
}

// AngleFromQ returns the scattering angle in degrees for momentum transfer q
// (inverse Angstroms) at the given wavelength (Angstroms).
// Returns ErrBadWavelength for a non-positive wavelength and ErrDomain when
// q*wavelength/(4*pi) falls outside [-1, 1].
func AngleFromQ(q, wavelength float64) (float64, error) {
	if err := checkWavelength(wavelength); err != nil {
		return 0, err
	}

	sin := q * wavelength / (4 * math.Pi)
	if sin < -1 || sin > 1 {
		return 0, ErrDomain
	}

	return math.Asin(sin) * degPerRad, nil
}

// QFromAngle returns the momentum transfer in inverse Angstroms for a
// scattering angle in degrees at the given wavelength (Angstroms).
// Returns ErrBadWavelength for a non-positive wavelength.
func QFromAngle(angle, wavelength float64) (float64, error) {
	if err := checkWavelength(wavelength); err != nil {
		return 0, err
	}

	return 4 * math.Pi / wavelength * math.Sin(angle/degPerRad), nil
}

// AnglesFromQ converts a slice of momentum-transfer values elementwise at a
// shared wavelength. On error the returned slice is nil; the first offending
// element aborts the conversion.
// Complexity: O(n).
func AnglesFromQ(qs []float64, wavelength float64) ([]float64, error) {
	if err := checkWavelength(wavelength); err != nil {
		return nil, err
	}

	angles := make([]float64, len(qs))
	for i, q := range qs {
		sin := q * wavelength / (4 * math.Pi)
		if sin < -1 || sin > 1 {
			return nil, ErrDomain
		}
		angles[i] = math.Asin(sin) * degPerRad
	}

	return angles, nil
}

// QsFromAngle converts a slice of angles (degrees) elementwise at a shared
// wavelength.
// Complexity: O(n).
func QsFromAngle(angles []float64, wavelength float64) ([]float64, error) {
	if err := checkWavelength(wavelength); err != nil {
		return nil, err
	}

	qs := make([]float64, len(angles))
	for i, a := range angles {
		qs[i] = 4 * math.Pi / wavelength * math.Sin(a/degPerRad)
	}

	return qs, nil
}
