package instrument

import (
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/gonum/interp"

	"github.com/refscan/refscan/calibration"
	"github.com/refscan/refscan/geometry"
	"github.com/refscan/refscan/grid"
	"github.com/refscan/refscan/motion"
	"github.com/refscan/refscan/resolution"
	"github.com/refscan/refscan/units"
)

// Calibration file names fixed by the instrument's reduction pipeline.
const (
	candorWavelengthFile = "DetectorWavelengths_PG_integrate_sumeff_bank%d.csv"
	candorIntensityFile  = "flowcell_d2o_r12_2_5_maxbeam_60_qoverlap0_751388_unpolarized_intensity.json"
)

// candorParams returns the built-in constants of the instrument.
// Motion values measured 1/24/2022; moves are dominated by base speed and
// acceleration, not top speed.
func candorParams() Params {
	return Params{
		Name:   "CANDOR",
		XLabel: "Theta (deg)",
		Geometry: geometry.Config{
			L12:         4000,
			L2S:         356,
			LS3:         356,
			L34:         3000,
			Footprint:   45,
			SampleWidth: math.Inf(1),
			S3Offset:    5.0,
			R12:         2.5,
		},
		Motion:        motion.Profile{BaseSpeed: 0.1, TopSpeed: 2.0, Acceleration: 0.1},
		Mon0:          20.0,
		Mon1:          20000.0,
		QPow:          3.0,
		Shape:         resolution.Uniform,
		DetectorMask:  8.0,
		RefWavelength: 5.0,
	}
}

// CANDOR is a multi-channel wavelength-bank reflectometer whose scan
// variable is the scattering angle. Each detector bank carries its own
// wavelength calibration; the fourth slit is a fixed detector mask.
type CANDOR struct {
	base

	bank int

	// Per-channel intensity interpolators over the first slit aperture,
	// plus the shared aperture axis for clamping.
	intensX []float64
	intens  []interp.PiecewiseLinear
}

// compile-time contract check
var _ Reflectometer = (*CANDOR)(nil)

// NewCANDOR builds the instrument for one detector bank. Both the
// wavelength table and the intensity table are required: there is no safe
// default for a wavelength bank, so any load failure is fatal.
func NewCANDOR(bank int, opts ...Option) (*CANDOR, error) {
	s := newSettings(opts)
	p := s.overrides.apply(candorParams())

	wlPath := filepath.Join(s.calibrationDir, fmt.Sprintf(candorWavelengthFile, bank))
	wl, dl, err := calibration.LoadWavelengthCSV(wlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: bank %d wavelengths: %v", ErrMissingCalibration, bank, err)
	}
	p.Wavelengths = WavelengthTable{Wavelength: wl, Spread: dl}

	c := &CANDOR{base: newBase(p, s.logger), bank: bank}
	if err := c.validateParams(); err != nil {
		return nil, err
	}

	// The same intensity calibration serves both banks for planning.
	table, err := calibration.LoadIntensityJSON(filepath.Join(s.calibrationDir, candorIntensityFile))
	if err != nil {
		return nil, fmt.Errorf("%w: intensity table: %v", ErrMissingCalibration, err)
	}
	if len(table.Channels) != p.Wavelengths.Channels() {
		return nil, fmt.Errorf("%w: intensity table has %d channels, wavelength table %d",
			ErrMissingCalibration, len(table.Channels), p.Wavelengths.Channels())
	}

	c.intensX = table.X
	c.intens = make([]interp.PiecewiseLinear, len(table.Channels))
	for ch, curve := range table.Channels {
		if err := c.intens[ch].Fit(table.X, curve); err != nil {
			return nil, fmt.Errorf("%w: intensity channel %d: %v", ErrMissingCalibration, ch, err)
		}
	}

	return c, nil
}

// Bank returns the detector bank this instrument was built for.
func (c *CANDOR) Bank() int { return c.bank }

// QFromX converts scattering angles to momentum transfer per channel:
// q[i][ch] = 4*pi/lambda[ch] * sin(x[i]).
func (c *CANDOR) QFromX(x []float64) (*grid.Grid, error) {
	wl := c.params.Wavelengths.Wavelength
	g, err := grid.New(len(x), len(wl))
	if err != nil {
		return nil, err
	}

	for i, angle := range x {
		sin := math.Sin(angle * math.Pi / 180)
		for ch, l := range wl {
			if err := g.Set(i, ch, 4*math.Pi/l*sin); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// AngleFromX returns x itself: the scan variable already is the angle.
func (c *CANDOR) AngleFromX(x []float64) ([]float64, error) {
	out := make([]float64, len(x))
	copy(out, x)

	return out, nil
}

// XRangeFromQ converts momentum-transfer bounds to an angular range. The
// lower bound uses the longest wavelength and the upper bound the
// shortest, so the full bank covers the requested interval.
func (c *CANDOR) XRangeFromQ(q1, q2 float64) (float64, float64, error) {
	qmin, qmax := math.Min(q1, q2), math.Max(q1, q2)
	wl := c.params.Wavelengths.Wavelength

	// Table order is ascending, so the extremes sit at the ends.
	xmin, err := units.AngleFromQ(qmin, wl[len(wl)-1])
	if err != nil {
		return 0, 0, err
	}
	xmax, err := units.AngleFromQ(qmax, wl[0])
	if err != nil {
		return 0, 0, err
	}

	return xmin, xmax, nil
}

// Slits returns the slit apertures with S4 fixed to the detector mask.
func (c *CANDOR) Slits(x []float64) (geometry.Apertures, error) {
	return c.slitsFromAngles(x)
}

// Intensity interpolates each channel's calibration curve at the first
// slit aperture. Apertures beyond the tabulated axis clamp to the curve
// endpoints, as the calibration cannot extrapolate.
func (c *CANDOR) Intensity(x []float64) (*grid.Grid, error) {
	ap, err := c.Slits(x)
	if err != nil {
		return nil, err
	}

	g, err := grid.New(ap.Len(), len(c.intens))
	if err != nil {
		return nil, err
	}

	lo, hi := c.intensX[0], c.intensX[len(c.intensX)-1]
	for i := 0; i < ap.Len(); i++ {
		s1 := math.Min(math.Max(ap.S1[i], lo), hi)
		for ch := range c.intens {
			if err := g.Set(i, ch, c.intens[ch].Predict(s1)); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// Angle returns the scan angles broadcast across channels.
func (c *CANDOR) Angle(x []float64) (*grid.Grid, error) {
	return grid.BroadcastCol(x, c.Channels())
}

// AngularSpread returns the angular divergence broadcast across channels.
func (c *CANDOR) AngularSpread(x []float64) (*grid.Grid, error) {
	dT, err := c.divergenceFromAngles(x)
	if err != nil {
		return nil, err
	}

	return grid.BroadcastCol(dT, c.Channels())
}

// Wavelength returns the bank's wavelengths broadcast across positions.
func (c *CANDOR) Wavelength(x []float64) (*grid.Grid, error) {
	return grid.BroadcastRow(c.params.Wavelengths.Wavelength, len(x))
}

// WavelengthSpread returns the bank's spreads broadcast across positions.
func (c *CANDOR) WavelengthSpread(x []float64) (*grid.Grid, error) {
	return grid.BroadcastRow(c.params.Wavelengths.Spread, len(x))
}

// MoveTime returns the detector-arm travel time to each target angle.
// With no current position set, every target takes zero time.
func (c *CANDOR) MoveTime(x []float64) ([]float64, error) {
	cur, ok := c.Position()
	if !ok {
		return zeros(len(x)), nil
	}

	return c.moveTimeFromAngles(cur, x)
}
