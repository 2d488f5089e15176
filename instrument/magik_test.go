package instrument_test

import (
	"bytes"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"github.com/refscan/refscan/calibration"
	"github.com/refscan/refscan/instrument"
	"github.com/refscan/refscan/motion"
	"github.com/refscan/refscan/resolution"
	"github.com/refscan/refscan/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calDir() string { return filepath.Join("testdata", "calibration") }

// newMAGIK builds the instrument against the test calibration directory.
func newMAGIK(t *testing.T, opts ...instrument.Option) *instrument.MAGIK {
	t.Helper()
	opts = append([]instrument.Option{instrument.WithCalibrationDir(calDir())}, opts...)
	m, err := instrument.NewMAGIK(opts...)
	require.NoError(t, err)

	return m
}

// TestMAGIK_Identity covers the instrument's fixed identity.
func TestMAGIK_Identity(t *testing.T) {
	m := newMAGIK(t)
	assert.Equal(t, "MAGIK", m.Name())
	assert.Equal(t, "Q_z (1/A)", m.XLabel())
	assert.Equal(t, resolution.Normal, m.ResolutionShape())
	assert.Equal(t, 1, m.Channels())

	p := m.Params()
	assert.Equal(t, 1403.0, p.Geometry.L12)
	assert.InDelta(t, 0.01648374*5.0/2.355, p.Wavelengths.Spread[0], 1e-12)
}

// TestMAGIK_AngleFromX verifies the scan-variable conversion against the
// kinematic formula at 5 A for q = {0.01, 0.1, 0.3}.
func TestMAGIK_AngleFromX(t *testing.T) {
	m := newMAGIK(t)

	angles, err := m.AngleFromX([]float64{0.01, 0.1, 0.3})
	require.NoError(t, err)
	assert.InDelta(t, 0.22797, angles[0], 5e-5)
	assert.InDelta(t, 2.28033, angles[1], 5e-5)
	assert.InDelta(t, 6.85553, angles[2], 5e-5)
}

// TestMAGIK_SlitsEqualRatio verifies s1 == s2 at every scan position,
// since the instrument runs with R12 = 1.
func TestMAGIK_SlitsEqualRatio(t *testing.T) {
	m := newMAGIK(t)

	ap, err := m.Slits([]float64{0.01, 0.1, 0.3})
	require.NoError(t, err)
	require.Equal(t, 3, ap.Len())
	for i := 0; i < ap.Len(); i++ {
		assert.Equal(t, ap.S1[i], ap.S2[i], "position %d", i)
	}
}

// TestMAGIK_QFromX verifies the identity conversion broadcast to one channel.
func TestMAGIK_QFromX(t *testing.T) {
	m := newMAGIK(t)

	q, err := m.QFromX([]float64{0.01, 0.1})
	require.NoError(t, err)
	assert.Equal(t, 2, q.Rows())
	assert.Equal(t, 1, q.Cols())
	assert.Equal(t, []float64{0.01, 0.1}, q.Flatten())
}

// TestMAGIK_XRangeFromQ verifies bound normalization.
func TestMAGIK_XRangeFromQ(t *testing.T) {
	m := newMAGIK(t)

	lo, hi, err := m.XRangeFromQ(0.3, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 0.01, lo)
	assert.Equal(t, 0.3, hi)
}

// TestMAGIK_IntensityFitted verifies the fitted cubic reproduces the
// synthetic calibration curve the testdata table was generated from.
func TestMAGIK_IntensityFitted(t *testing.T) {
	m := newMAGIK(t)
	// testdata table: y = 500x^3 + 70000x^2 + 200x - 40
	want := []float64{500, 70000, 200, -40}

	x := []float64{0.05, 0.2}
	ap, err := m.Slits(x)
	require.NoError(t, err)

	g, err := m.Intensity(x)
	require.NoError(t, err)
	assert.Equal(t, len(x), g.Rows())
	assert.Equal(t, 1, g.Cols())

	for i := range x {
		v, err := g.At(i, 0)
		require.NoError(t, err)
		assert.InEpsilon(t, calibration.Polyval(want, ap.S1[i]), v, 1e-6)
	}
}

// TestMAGIK_IntensityFallback verifies a missing calibration table warns
// and falls back to the built-in default coefficients.
func TestMAGIK_IntensityFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m, err := instrument.NewMAGIK(
		instrument.WithCalibrationDir(t.TempDir()),
		instrument.WithLogger(logger),
	)
	require.NoError(t, err, "missing MAGIK calibration is recoverable")
	assert.Contains(t, buf.String(), "using defaults")

	// The documented fallback cubic.
	defaults := []float64{5.56637543e+02, 7.27944632e+04, 2.13479802e+02, -4.37052050e+01}

	x := []float64{0.1}
	ap, err := m.Slits(x)
	require.NoError(t, err)

	g, err := m.Intensity(x)
	require.NoError(t, err)
	v, err := g.At(0, 0)
	require.NoError(t, err)
	assert.InEpsilon(t, calibration.Polyval(defaults, ap.S1[0]), v, 1e-9)
}

// TestMAGIK_WavelengthGrids verifies the broadcast shapes of the constant
// wavelength channel.
func TestMAGIK_WavelengthGrids(t *testing.T) {
	m := newMAGIK(t)
	x := []float64{0.01, 0.05, 0.1}

	wl, err := m.Wavelength(x)
	require.NoError(t, err)
	assert.Equal(t, 3, wl.Rows())
	assert.Equal(t, 1, wl.Cols())
	assert.Equal(t, []float64{5, 5, 5}, wl.Flatten())

	dl, err := m.WavelengthSpread(x)
	require.NoError(t, err)
	v, err := dl.At(2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.01648374*5.0/2.355, v, 1e-12)
}

// TestMAGIK_MeasTime verifies the allocator sums to the requested total
// and weights positions by 30 + 1250*q^2.
func TestMAGIK_MeasTime(t *testing.T) {
	m := newMAGIK(t)
	x := []float64{0.01, 0.1, 0.3}

	times, err := m.MeasTime(x, 100)
	require.NoError(t, err)
	require.Len(t, times, 3)

	sum := 0.0
	for _, v := range times {
		assert.Positive(t, v)
		sum += v
	}
	assert.InDelta(t, 100, sum, 1e-9, "allocation must sum to the total")

	// Higher q gets more time under the q^2 weight model.
	assert.Greater(t, times[2], times[1])
	assert.Greater(t, times[1], times[0])

	// Explicit weights.
	f := make([]float64, len(x))
	fsum := 0.0
	for i, q := range x {
		f[i] = 30 + 1250*q*q
		fsum += f[i]
	}
	for i := range x {
		assert.InDelta(t, 100*f[i]/fsum, times[i], 1e-9)
	}
}

// TestMAGIK_MeasTime_Errors covers the empty-input and zero-weight sentinels.
func TestMAGIK_MeasTime_Errors(t *testing.T) {
	m := newMAGIK(t)

	_, err := m.MeasTime(nil, 100)
	assert.ErrorIs(t, err, instrument.ErrNoPositions)

	zero := 0.0
	dead, err := instrument.NewMAGIK(
		instrument.WithCalibrationDir(calDir()),
		instrument.WithOverrides(instrument.Overrides{Mon0: &zero, Mon1: &zero}),
	)
	require.NoError(t, err)
	_, err = dead.MeasTime([]float64{0.01, 0.1}, 100)
	assert.ErrorIs(t, err, instrument.ErrZeroWeight)
}

// TestMAGIK_MoveTime verifies the caller-owned position semantics: zero
// times with no position, motion-model times once one is set.
func TestMAGIK_MoveTime(t *testing.T) {
	m := newMAGIK(t)
	x := []float64{0.01, 0.1}

	times, err := m.MoveTime(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, times, "no position set means no move")

	m.SetPosition(0.01)
	cur, ok := m.Position()
	require.True(t, ok)
	assert.Equal(t, 0.01, cur)

	times, err = m.MoveTime(x)
	require.NoError(t, err)
	assert.Zero(t, times[0], "moving to the current position is free")
	assert.Positive(t, times[1])

	// Cross-check against the motion model on converted angles.
	curAngle, err := units.AngleFromQ(0.01, 5.0)
	require.NoError(t, err)
	targets, err := m.AngleFromX(x)
	require.NoError(t, err)
	want, err := motion.MoveTime(m.Params().Motion, curAngle, targets)
	require.NoError(t, err)
	assert.InDelta(t, want[1], times[1], 1e-12)

	m.ClearPosition()
	times, err = m.MoveTime(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, times)
}

// TestMAGIK_Overrides verifies parameter overrides land in the constants.
func TestMAGIK_Overrides(t *testing.T) {
	width := 10.0
	prof := motion.Profile{BaseSpeed: 0.5, TopSpeed: 2.0, Acceleration: 1.0}

	m := newMAGIK(t, instrument.WithOverrides(instrument.Overrides{
		SampleWidth: &width,
		Motion:      &prof,
	}))

	p := m.Params()
	assert.Equal(t, width, p.Geometry.SampleWidth)
	assert.Equal(t, prof, p.Motion)
	assert.False(t, math.IsInf(p.Geometry.SampleWidth, 1))
}

// TestMAGIK_SampleLimitedSpread verifies that a sample narrower than the
// footprint tightens the angular spread.
func TestMAGIK_SampleLimitedSpread(t *testing.T) {
	open := newMAGIK(t)
	width := 10.0 // narrower than the 45 mm footprint
	narrow := newMAGIK(t, instrument.WithOverrides(instrument.Overrides{SampleWidth: &width}))

	x := []float64{0.1}
	gOpen, err := open.AngularSpread(x)
	require.NoError(t, err)
	gNarrow, err := narrow.AngularSpread(x)
	require.NoError(t, err)

	vOpen, err := gOpen.At(0, 0)
	require.NoError(t, err)
	vNarrow, err := gNarrow.At(0, 0)
	require.NoError(t, err)
	assert.Less(t, vNarrow, vOpen)
}
