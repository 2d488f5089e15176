package instrument

import (
	"math"
	"path/filepath"

	"github.com/refscan/refscan/calibration"
	"github.com/refscan/refscan/geometry"
	"github.com/refscan/refscan/grid"
	"github.com/refscan/refscan/motion"
	"github.com/refscan/refscan/resolution"
	"github.com/refscan/refscan/units"
)

// magikIntensityFile is the measured intensity-vs-aperture table fitted to
// the cubic intensity curve.
const magikIntensityFile = "magik_intensity_hw106.refl"

// magikDefaultIntensity is the documented fallback cubic (highest power
// first), used when the calibration table cannot be read.
var magikDefaultIntensity = []float64{5.56637543e+02, 7.27944632e+04, 2.13479802e+02, -4.37052050e+01}

// magikParams returns the built-in constants of the instrument.
// Motion values measured 1/24/2022.
func magikParams() Params {
	const wl = 5.0

	return Params{
		Name:   "MAGIK",
		XLabel: "Q_z (1/A)",
		Geometry: geometry.Config{
			L12:         1403,
			L2S:         330,
			LS3:         229,
			L34:         939,
			Footprint:   45,
			SampleWidth: math.Inf(1),
			S3Offset:    1.22,
			R12:         1.0,
		},
		Motion: motion.Profile{BaseSpeed: 0.2, TopSpeed: 1.0, Acceleration: 0.5},
		Mon0:   30.0,
		Mon1:   1250.0,
		QPow:   2.0,
		Shape:  resolution.Normal,
		Wavelengths: WavelengthTable{
			Wavelength: []float64{wl},
			Spread:     []float64{0.01648374 * wl / 2.355},
		},
	}
}

// MAGIK is a single-channel monochromatic reflectometer whose scan
// variable is momentum transfer.
type MAGIK struct {
	base

	// intens holds the cubic intensity-curve coefficients over the first
	// slit aperture, highest power first.
	intens []float64
}

// compile-time contract check
var _ Reflectometer = (*MAGIK)(nil)

// NewMAGIK builds the instrument, fitting the intensity curve from the
// calibration directory. A missing or unreadable table is recoverable: a
// warning is logged and the built-in default coefficients are used.
func NewMAGIK(opts ...Option) (*MAGIK, error) {
	s := newSettings(opts)
	p := s.overrides.apply(magikParams())

	m := &MAGIK{base: newBase(p, s.logger)}
	if err := m.validateParams(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.calibrationDir, magikIntensityFile)
	x, y, dy, err := calibration.LoadReflTable(path)
	if err != nil {
		m.logger.Warn("MAGIK intensity calibration not found, using defaults",
			"path", path, "err", err)
		m.intens = magikDefaultIntensity

		return m, nil
	}

	w := make([]float64, len(dy))
	for i, d := range dy {
		w[i] = 1 / d
	}
	coeffs, err := calibration.PolyFit(x, y, w, 3)
	if err != nil {
		m.logger.Warn("MAGIK intensity fit failed, using defaults",
			"path", path, "err", err)
		m.intens = magikDefaultIntensity

		return m, nil
	}
	m.intens = coeffs

	return m, nil
}

// wavelength returns the single channel's wavelength.
func (m *MAGIK) wavelength() float64 { return m.params.Wavelengths.Wavelength[0] }

// QFromX returns x itself broadcast to one channel: the scan variable
// already is momentum transfer.
func (m *MAGIK) QFromX(x []float64) (*grid.Grid, error) {
	return grid.BroadcastCol(x, 1)
}

// AngleFromX converts momentum transfer to scattering angle at the
// instrument wavelength.
func (m *MAGIK) AngleFromX(x []float64) ([]float64, error) {
	return units.AnglesFromQ(x, m.wavelength())
}

// XRangeFromQ returns the momentum-transfer bounds in ascending order;
// the scan variable is already momentum transfer.
func (m *MAGIK) XRangeFromQ(q1, q2 float64) (float64, float64, error) {
	return math.Min(q1, q2), math.Max(q1, q2), nil
}

// Slits returns the slit apertures at each scan position.
func (m *MAGIK) Slits(x []float64) (geometry.Apertures, error) {
	angles, err := m.AngleFromX(x)
	if err != nil {
		return geometry.Apertures{}, err
	}

	return m.slitsFromAngles(angles)
}

// Intensity evaluates the cubic intensity curve on the first slit aperture.
func (m *MAGIK) Intensity(x []float64) (*grid.Grid, error) {
	ap, err := m.Slits(x)
	if err != nil {
		return nil, err
	}

	vals := make([]float64, ap.Len())
	for i := range vals {
		vals[i] = calibration.Polyval(m.intens, ap.S1[i])
	}

	return grid.BroadcastCol(vals, 1)
}

// Angle returns the scattering angles broadcast to the single channel.
func (m *MAGIK) Angle(x []float64) (*grid.Grid, error) {
	angles, err := m.AngleFromX(x)
	if err != nil {
		return nil, err
	}

	return grid.BroadcastCol(angles, 1)
}

// AngularSpread returns the angular divergence broadcast to the single channel.
func (m *MAGIK) AngularSpread(x []float64) (*grid.Grid, error) {
	angles, err := m.AngleFromX(x)
	if err != nil {
		return nil, err
	}

	dT, err := m.divergenceFromAngles(angles)
	if err != nil {
		return nil, err
	}

	return grid.BroadcastCol(dT, 1)
}

// Wavelength returns the constant wavelength broadcast across positions.
func (m *MAGIK) Wavelength(x []float64) (*grid.Grid, error) {
	return grid.BroadcastRow(m.params.Wavelengths.Wavelength, len(x))
}

// WavelengthSpread returns the constant spread broadcast across positions.
func (m *MAGIK) WavelengthSpread(x []float64) (*grid.Grid, error) {
	return grid.BroadcastRow(m.params.Wavelengths.Spread, len(x))
}

// MoveTime returns the detector-arm travel time to each target position.
// With no current position set, every target takes zero time.
func (m *MAGIK) MoveTime(x []float64) ([]float64, error) {
	cur, ok := m.Position()
	if !ok {
		return zeros(len(x)), nil
	}

	curAngle, err := units.AngleFromQ(cur, m.wavelength())
	if err != nil {
		return nil, err
	}
	targets, err := m.AngleFromX(x)
	if err != nil {
		return nil, err
	}

	return m.moveTimeFromAngles(curAngle, targets)
}
