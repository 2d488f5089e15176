package geometry

import (
	"errors"
	"math"
)

// Sentinel errors returned by the geometry engine.
var (
	// ErrBadDistance indicates a non-positive inter-component distance.
	ErrBadDistance = errors.New("geometry: inter-component distances must be positive")

	// ErrBadFootprint indicates a non-positive beam footprint.
	ErrBadFootprint = errors.New("geometry: footprint must be positive")

	// ErrBadRatio indicates a non-positive S1/S2 aperture ratio.
	ErrBadRatio = errors.New("geometry: slit ratio R12 must be positive")

	// ErrBadSampleWidth indicates a zero or negative sample width.
	// An unbounded sample is expressed as math.Inf(1), not as zero.
	ErrBadSampleWidth = errors.New("geometry: sample width must be positive")
)

// Config holds the immutable geometric constants of one instrument.
// All lengths are in millimeters. A Config is created once at instrument
// construction and never mutated afterwards.
type Config struct {
	L12 float64 // source slit to pre-sample slit
	L2S float64 // pre-sample slit to sample
	LS3 float64 // sample to post-sample slit
	L34 float64 // post-sample slit to detector slit

	Footprint   float64 // beam footprint on the sample
	SampleWidth float64 // sample width; math.Inf(1) for an unbounded sample
	S3Offset    float64 // fixed opening added to S3 and S4
	R12         float64 // S1/S2 aperture ratio
}

// Validate reports the first violated constraint of the Config, or nil.
func (c Config) Validate() error {
	if c.L12 <= 0 || c.L2S <= 0 || c.LS3 <= 0 || c.L34 <= 0 {
		return ErrBadDistance
	}
	if c.Footprint <= 0 {
		return ErrBadFootprint
	}
	if c.R12 <= 0 {
		return ErrBadRatio
	}
	if c.SampleWidth <= 0 || math.IsNaN(c.SampleWidth) {
		return ErrBadSampleWidth
	}

	return nil
}

// Apertures holds the four slit openings for a set of scan angles,
// one element per angle. Invariant: S1[i] == R12 * S2[i] by construction
// (unless S4 has been overridden, which touches only S4).
type Apertures struct {
	S1, S2, S3, S4 []float64
}

// Len returns the number of angular positions the apertures were computed for.
func (a Apertures) Len() int { return len(a.S1) }

// At returns the four apertures {S1, S2, S3, S4} at position i.
// Panics if i is out of range, as a slice index would.
func (a Apertures) At(i int) [4]float64 {
	return [4]float64{a.S1[i], a.S2[i], a.S3[i], a.S4[i]}
}

// OverrideS4 replaces every computed S4 aperture with a fixed detector-mask
// width. Used by instruments whose final aperture is a physical mask rather
// than a driven slit.
func (a *Apertures) OverrideS4(mask float64) {
	for i := range a.S4 {
		a.S4[i] = mask
	}
}
