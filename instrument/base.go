package instrument

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/refscan/refscan/geometry"
	"github.com/refscan/refscan/motion"
	"github.com/refscan/refscan/resolution"
	"github.com/refscan/refscan/units"
)

// base carries the constants and shared default behavior of a
// reflectometer. Variants embed it and delegate to its helpers explicitly;
// only the scan-variable semantics live in the variants.
type base struct {
	params Params
	logger *slog.Logger

	// pos is the current scan position, owned by the caller through
	// SetPosition/Position/ClearPosition. nil means "not set": MoveTime
	// then reports zero everywhere.
	pos *float64
}

func newBase(p Params, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.Default()
	}

	return base{params: p, logger: logger}
}

// validateParams checks the constants every variant depends on.
func (b *base) validateParams() error {
	if err := b.params.Geometry.Validate(); err != nil {
		return err
	}
	if err := b.params.Motion.Validate(); err != nil {
		return err
	}

	return b.params.Wavelengths.Validate()
}

// Name returns the instrument name.
func (b *base) Name() string { return b.params.Name }

// XLabel returns the display label of the scan variable.
func (b *base) XLabel() string { return b.params.XLabel }

// ResolutionShape reports the form of the resolution function.
func (b *base) ResolutionShape() resolution.Shape { return b.params.Shape }

// Channels returns the number of detector wavelength channels.
func (b *base) Channels() int { return b.params.Wavelengths.Channels() }

// Params returns a copy of the instrument constants.
func (b *base) Params() Params { return b.params }

// SlitDistances returns the signed slit positions along the beam.
func (b *base) SlitDistances() [4]float64 {
	return geometry.SlitDistances(b.params.Geometry)
}

// SetPosition records the current scan position for MoveTime.
func (b *base) SetPosition(x float64) {
	v := x
	b.pos = &v
}

// Position returns the current scan position, if one is set.
func (b *base) Position() (float64, bool) {
	if b.pos == nil {
		return 0, false
	}

	return *b.pos, true
}

// ClearPosition forgets the current position.
func (b *base) ClearPosition() { b.pos = nil }

// slitsFromAngles computes the slit apertures for a set of scattering
// angles, applying the detector-mask override when configured.
func (b *base) slitsFromAngles(angles []float64) (geometry.Apertures, error) {
	ap, err := geometry.Slits(b.params.Geometry, angles)
	if err != nil {
		return geometry.Apertures{}, err
	}
	if b.params.DetectorMask > 0 {
		ap.OverrideS4(b.params.DetectorMask)
	}

	return ap, nil
}

// divergenceFromAngles computes the angular divergence per position. The
// sample acts as an additional aperture whenever the beam footprint
// exceeds the sample width.
func (b *base) divergenceFromAngles(angles []float64) ([]float64, error) {
	ap, err := b.slitsFromAngles(angles)
	if err != nil {
		return nil, err
	}

	g := b.params.Geometry
	useSample := g.Footprint > g.SampleWidth

	return resolution.Divergences(ap, b.SlitDistances(), angles, g.SampleWidth, useSample)
}

// moveTimeFromAngles runs the motion model from one angle to many.
func (b *base) moveTimeFromAngles(currentAngle float64, targetAngles []float64) ([]float64, error) {
	return motion.MoveTime(b.params.Motion, currentAngle, targetAngles)
}

// MeasTime splits totaltime across the scan positions in proportion to the
// count-rate weight f = Mon0 + Mon1*q^QPow. When RefWavelength is set the
// scan variable is angular and q is recomputed at that fixed wavelength;
// otherwise x is already momentum transfer.
// Guarantees: the result sums to totaltime up to rounding; a weight sum
// <= 0 (or NaN) is ErrZeroWeight, never silent NaN output.
func (b *base) MeasTime(x []float64, totaltime float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrNoPositions
	}

	q := x
	if b.params.RefWavelength > 0 {
		var err error
		q, err = units.QsFromAngle(x, b.params.RefWavelength)
		if err != nil {
			return nil, err
		}
	}

	f := make([]float64, len(q))
	for i, qi := range q {
		f[i] = b.params.Mon0 + b.params.Mon1*math.Pow(qi, b.params.QPow)
	}

	sum := floats.Sum(f)
	if math.IsNaN(sum) || sum <= 0 {
		return nil, ErrZeroWeight
	}

	times := make([]float64, len(f))
	for i, fi := range f {
		times[i] = totaltime * fi / sum
	}

	return times, nil
}

// zeros returns an all-zero slice of length n, the MoveTime result when no
// current position is set.
func zeros(n int) []float64 {
	return make([]float64, n)
}
