package resolution

import (
	"errors"
	"math"

	"github.com/refscan/refscan/geometry"
)

// Shape tags the functional form of an instrument's resolution function.
type Shape int

const (
	// Normal marks a Gaussian resolution function (monochromatic beams).
	Normal Shape = iota

	// Uniform marks a top-hat resolution function (wavelength-banked beams).
	Uniform
)

// String implements fmt.Stringer.
func (s Shape) String() string {
	switch s {
	case Normal:
		return "normal"
	case Uniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// ErrLengthMismatch indicates the aperture set and angle slice disagree in length.
var ErrLengthMismatch = errors.New("resolution: apertures and angles must have equal length")

const degPerRad = 180.0 / math.Pi

// Divergence returns the angular divergence in degrees for one position.
//
// slits holds the four apertures {S1..S4} and distances their signed
// positions relative to the sample. Only the first two apertures define
// the incident collimation. When useSample is true the projected sample
// width acts as an additional aperture at the origin and the smaller of
// the two divergences is returned.
func Divergence(slits, distances [4]float64, angle, sampleWidth float64, useSample bool) float64 {
	s1, s2 := slits[0], slits[1]
	d1, d2 := distances[0], distances[1]

	dT := (s1 + s2) / (2 * (d2 - d1)) * degPerRad

	if useSample {
		// Projection of the sample onto the beam cross-section.
		w := sampleWidth * math.Sin(angle*math.Pi/180)
		dTSample := (s1 + w) / (2 * -d1) * degPerRad
		if dTSample < dT {
			dT = dTSample
		}
	}

	return dT
}

// Divergences computes the per-position angular divergence for a full
// aperture set, sharing the slit distances and sample geometry.
// Returns ErrLengthMismatch if angles does not match the aperture count.
// Complexity: O(n).
func Divergences(ap geometry.Apertures, distances [4]float64, angles []float64, sampleWidth float64, useSample bool) ([]float64, error) {
	if ap.Len() != len(angles) {
		return nil, ErrLengthMismatch
	}

	out := make([]float64, len(angles))
	for i, angle := range angles {
		out[i] = Divergence(ap.At(i), distances, angle, sampleWidth, useSample)
	}

	return out, nil
}
