package instrument

import (
	"math"

	"github.com/refscan/refscan/geometry"
	"github.com/refscan/refscan/grid"
	"github.com/refscan/refscan/motion"
	"github.com/refscan/refscan/resolution"
)

// Reflectometer is the capability set every scanning reflectometer variant
// implements. The scan position x is variant-specific: momentum transfer
// (1/A) for MAGIK, scattering angle (degrees) for CANDOR.
//
// Per-channel results are positions-by-channels grids; single-channel
// instruments return grids with one column.
type Reflectometer interface {
	// Name returns the instrument name.
	Name() string
	// XLabel returns a display label for the scan variable.
	XLabel() string
	// ResolutionShape reports the form of the resolution function.
	ResolutionShape() resolution.Shape
	// Channels returns the number of detector wavelength channels.
	Channels() int

	// QFromX converts scan positions to momentum transfer per channel.
	QFromX(x []float64) (*grid.Grid, error)
	// AngleFromX converts scan positions to scattering angles in degrees.
	AngleFromX(x []float64) ([]float64, error)
	// XRangeFromQ converts a momentum-transfer range to a scan-position
	// range. Bounds may be given in either order.
	XRangeFromQ(q1, q2 float64) (xmin, xmax float64, err error)

	// Intensity predicts the incident intensity per position and channel
	// from the calibration curve over the first slit aperture.
	Intensity(x []float64) (*grid.Grid, error)
	// Angle returns the scattering angle broadcast across channels.
	Angle(x []float64) (*grid.Grid, error)
	// AngularSpread returns the angular divergence broadcast across channels.
	AngularSpread(x []float64) (*grid.Grid, error)
	// Wavelength returns the per-channel wavelengths broadcast across positions.
	Wavelength(x []float64) (*grid.Grid, error)
	// WavelengthSpread returns the per-channel wavelength spreads broadcast
	// across positions.
	WavelengthSpread(x []float64) (*grid.Grid, error)

	// Slits returns the four slit apertures at each scan position.
	Slits(x []float64) (geometry.Apertures, error)
	// SlitDistances returns the signed slit positions along the beam.
	SlitDistances() [4]float64

	// SetPosition records the current scan position for MoveTime.
	// The caller's control loop owns this state.
	SetPosition(x float64)
	// Position returns the current scan position, if one is set.
	Position() (float64, bool)
	// ClearPosition forgets the current position; MoveTime then reports
	// zero for every target.
	ClearPosition()
	// MoveTime returns the detector-arm travel time to each target.
	MoveTime(x []float64) ([]float64, error)

	// MeasTime splits a total counting time across the scan positions in
	// proportion to the empirical count-rate weight model. The returned
	// slice sums to totaltime.
	MeasTime(x []float64, totaltime float64) ([]float64, error)

	// Params returns a copy of the instrument constants.
	Params() Params
}

// WavelengthTable lists the wavelength and wavelength spread of each
// detector channel, in ascending channel order. Fixed at construction.
type WavelengthTable struct {
	Wavelength []float64 // A
	Spread     []float64 // A
}

// Channels returns the number of detector channels.
func (t WavelengthTable) Channels() int { return len(t.Wavelength) }

// Validate reports ErrBadWavelengthTable for an empty table, mismatched
// lengths, or non-positive wavelengths.
func (t WavelengthTable) Validate() error {
	if len(t.Wavelength) == 0 || len(t.Wavelength) != len(t.Spread) {
		return ErrBadWavelengthTable
	}
	for _, wl := range t.Wavelength {
		if wl <= 0 || math.IsNaN(wl) {
			return ErrBadWavelengthTable
		}
	}

	return nil
}

// Params holds the immutable constants of one instrument: geometry, motion
// profile, counting-time weight model, resolution shape and wavelength
// calibration. Created at construction, never mutated afterwards.
type Params struct {
	Name   string
	XLabel string

	Geometry geometry.Config
	Motion   motion.Profile

	// Counting-time weight model: f(q) = Mon0 + Mon1 * q^QPow.
	Mon0, Mon1, QPow float64

	Shape resolution.Shape

	Wavelengths WavelengthTable

	// DetectorMask fixes the fourth slit aperture to a physical mask
	// width; zero means S4 is computed from the beam geometry.
	DetectorMask float64

	// RefWavelength converts angular scan positions to momentum transfer
	// inside the counting-time model; zero means the scan variable is
	// already momentum transfer.
	RefWavelength float64
}

// Overrides adjusts instrument constants before construction; nil fields
// keep the built-in values. Used by parameter files to retune motion and
// monitor constants without recompiling.
type Overrides struct {
	Geometry *geometry.Config
	Motion   *motion.Profile

	Mon0 *float64
	Mon1 *float64
	QPow *float64

	// SampleWidth overrides only the sample geometry, the one constant
	// that changes per experiment rather than per instrument.
	SampleWidth *float64

	// CalibrationDir points construction at a different calibration
	// directory; empty keeps the configured one.
	CalibrationDir string
}

// apply folds the overrides into a Params copy.
func (o Overrides) apply(p Params) Params {
	if o.Geometry != nil {
		p.Geometry = *o.Geometry
	}
	if o.Motion != nil {
		p.Motion = *o.Motion
	}
	if o.Mon0 != nil {
		p.Mon0 = *o.Mon0
	}
	if o.Mon1 != nil {
		p.Mon1 = *o.Mon1
	}
	if o.QPow != nil {
		p.QPow = *o.QPow
	}
	if o.SampleWidth != nil {
		p.Geometry.SampleWidth = *o.SampleWidth
	}

	return p
}
