package instrument_test

import (
	"math"
	"testing"

	"github.com/refscan/refscan/instrument"
	"github.com/refscan/refscan/motion"
	"github.com/refscan/refscan/resolution"
	"github.com/refscan/refscan/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCANDOR builds bank 0 against the test calibration directory.
func newCANDOR(t *testing.T, opts ...instrument.Option) *instrument.CANDOR {
	t.Helper()
	opts = append([]instrument.Option{instrument.WithCalibrationDir(calDir())}, opts...)
	c, err := instrument.NewCANDOR(0, opts...)
	require.NoError(t, err)

	return c
}

// TestCANDOR_MissingCalibrationIsFatal verifies there is no fallback for a
// missing wavelength bank.
func TestCANDOR_MissingCalibrationIsFatal(t *testing.T) {
	_, err := instrument.NewCANDOR(0, instrument.WithCalibrationDir(t.TempDir()))
	assert.ErrorIs(t, err, instrument.ErrMissingCalibration)

	// A bank with no calibration file on disk is just as fatal.
	_, err = instrument.NewCANDOR(7, instrument.WithCalibrationDir(calDir()))
	assert.ErrorIs(t, err, instrument.ErrMissingCalibration)
}

// TestCANDOR_Identity covers the instrument's fixed identity and the
// wavelength bank loaded from calibration.
func TestCANDOR_Identity(t *testing.T) {
	c := newCANDOR(t)
	assert.Equal(t, "CANDOR", c.Name())
	assert.Equal(t, "Theta (deg)", c.XLabel())
	assert.Equal(t, resolution.Uniform, c.ResolutionShape())
	assert.Equal(t, 0, c.Bank())
	assert.Equal(t, 4, c.Channels())

	p := c.Params()
	// CSV rows are detector-reversed on disk; loaded ascending.
	assert.Equal(t, []float64{5.0, 5.4, 5.8, 6.2}, p.Wavelengths.Wavelength)
	assert.Equal(t, 8.0, p.DetectorMask)
	assert.Equal(t, 5.0, p.RefWavelength)
}

// TestCANDOR_AngleFromX verifies the identity conversion for an angular
// scan variable.
func TestCANDOR_AngleFromX(t *testing.T) {
	c := newCANDOR(t)

	angles, err := c.AngleFromX([]float64{0.5, 1.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5}, angles)
}

// TestCANDOR_QFromX verifies the per-channel kinematic conversion
// q = 4*pi/lambda * sin(theta).
func TestCANDOR_QFromX(t *testing.T) {
	c := newCANDOR(t)
	x := []float64{0.5, 1.5}

	q, err := c.QFromX(x)
	require.NoError(t, err)
	assert.Equal(t, 2, q.Rows())
	assert.Equal(t, 4, q.Cols())

	wl := c.Params().Wavelengths.Wavelength
	for i, angle := range x {
		sin := math.Sin(angle * math.Pi / 180)
		for ch, l := range wl {
			v, err := q.At(i, ch)
			require.NoError(t, err)
			assert.InDelta(t, 4*math.Pi/l*sin, v, 1e-12)
		}
	}
}

// TestCANDOR_XRangeFromQ verifies the bank-covering angular range: the
// lower bound uses the longest wavelength, the upper the shortest.
func TestCANDOR_XRangeFromQ(t *testing.T) {
	c := newCANDOR(t)

	lo, hi, err := c.XRangeFromQ(0.2, 0.01) // bounds in either order
	require.NoError(t, err)

	wantLo, err := units.AngleFromQ(0.01, 6.2)
	require.NoError(t, err)
	wantHi, err := units.AngleFromQ(0.2, 5.0)
	require.NoError(t, err)
	assert.InDelta(t, wantLo, lo, 1e-12)
	assert.InDelta(t, wantHi, hi, 1e-12)
	assert.Less(t, lo, hi)
}

// TestCANDOR_SlitsMask verifies S4 is the fixed detector mask while the
// other slits follow the beam geometry.
func TestCANDOR_SlitsMask(t *testing.T) {
	c := newCANDOR(t)

	ap, err := c.Slits([]float64{0.5, 1.0})
	require.NoError(t, err)
	assert.Equal(t, []float64{8.0, 8.0}, ap.S4)
	for i := range ap.S1 {
		assert.InDelta(t, 2.5*ap.S2[i], ap.S1[i], 1e-12, "R12=2.5")
	}
}

// TestCANDOR_Intensity verifies per-channel interpolation over the
// tabulated aperture axis.
func TestCANDOR_Intensity(t *testing.T) {
	c := newCANDOR(t)
	x := []float64{1.0}

	ap, err := c.Slits(x)
	require.NoError(t, err)
	s1 := ap.S1[0]
	require.Greater(t, s1, 0.2, "aperture must sit inside the table")
	require.Less(t, s1, 4.0)

	g, err := c.Intensity(x)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Rows())
	assert.Equal(t, 4, g.Cols())

	// The testdata curves are linear between (1.0, 500..650) and
	// (2.0, 1000..1300) per channel, so interpolation is exact.
	base := []float64{500, 550, 600, 650}
	next := []float64{1000, 1100, 1200, 1300}
	for ch := 0; ch < 4; ch++ {
		v, err := g.At(0, ch)
		require.NoError(t, err)
		if s1 >= 1.0 && s1 <= 2.0 {
			frac := s1 - 1.0
			assert.InDelta(t, base[ch]+frac*(next[ch]-base[ch]), v, 1e-9)
		}
		assert.Positive(t, v)
	}
}

// TestCANDOR_Grids verifies the broadcast shapes across four channels.
func TestCANDOR_Grids(t *testing.T) {
	c := newCANDOR(t)
	x := []float64{0.5, 1.0, 1.5}

	angle, err := c.Angle(x)
	require.NoError(t, err)
	assert.Equal(t, 3, angle.Rows())
	assert.Equal(t, 4, angle.Cols())
	row, err := angle.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, row)

	wl, err := c.Wavelength(x)
	require.NoError(t, err)
	row, err = wl.Row(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{5.0, 5.4, 5.8, 6.2}, row)

	dT, err := c.AngularSpread(x)
	require.NoError(t, err)
	assert.Equal(t, 3, dT.Rows())
	assert.Equal(t, 4, dT.Cols())

	dl, err := c.WavelengthSpread(x)
	require.NoError(t, err)
	row, err = dl.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.050, 0.054, 0.058, 0.062}, row)
}

// TestCANDOR_MeasTime verifies the allocator recomputes q at the fixed
// 5 A reference wavelength with the cubic weight model.
func TestCANDOR_MeasTime(t *testing.T) {
	c := newCANDOR(t)
	x := []float64{0.5, 1.0, 2.0}

	times, err := c.MeasTime(x, 300)
	require.NoError(t, err)

	qs, err := units.QsFromAngle(x, 5.0)
	require.NoError(t, err)

	f := make([]float64, len(qs))
	fsum := 0.0
	for i, q := range qs {
		f[i] = 20 + 20000*math.Pow(q, 3)
		fsum += f[i]
	}

	sum := 0.0
	for i := range times {
		assert.InDelta(t, 300*f[i]/fsum, times[i], 1e-9)
		sum += times[i]
	}
	assert.InDelta(t, 300, sum, 1e-9)
}

// TestCANDOR_MoveTime verifies angular targets feed the motion model
// directly, with the arm profile of this instrument.
func TestCANDOR_MoveTime(t *testing.T) {
	c := newCANDOR(t)
	x := []float64{0.5, 1.0}

	times, err := c.MoveTime(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, times)

	c.SetPosition(0.5)
	times, err = c.MoveTime(x)
	require.NoError(t, err)
	assert.Zero(t, times[0])

	want, err := motion.MoveTime(c.Params().Motion, 0.5, x)
	require.NoError(t, err)
	assert.Equal(t, want, times)
}
