package rebin

import "errors"

// Sentinel errors returned by the rebinning engine.
var (
	// ErrTooFewCenters indicates a target grid with fewer than two centers;
	// midpoint edges need at least two.
	ErrTooFewCenters = errors.New("rebin: need at least two bin centers")

	// ErrNotAscending indicates a target grid that is not strictly ascending.
	ErrNotAscending = errors.New("rebin: bin centers must be strictly ascending")

	// ErrNoSamples indicates an empty raw sample set.
	ErrNoSamples = errors.New("rebin: no samples to rebin")
)

// Sample is one raw observation, flattened across detector channels:
// one Sample per (scan position, channel) pair.
type Sample struct {
	Q                float64 // momentum transfer, 1/A
	Angle            float64 // scattering angle, degrees
	AngularSpread    float64 // angular divergence, degrees
	Wavelength       float64 // A
	WavelengthSpread float64 // A
}

// BinStats holds the averaged kinematic variables of one bin.
// For an empty bin all fields are the defined placeholder zero.
type BinStats struct {
	Angle            float64 // mean angle
	AngularSpread    float64 // RMS angular divergence
	Wavelength       float64 // mean wavelength
	WavelengthSpread float64 // variance-corrected wavelength spread
}

// Binned is the result of rebinning a sample set onto a target Q grid.
// It is immutable after construction; Lookup and the accessors are safe
// for concurrent readers.
type Binned struct {
	centers []float64  // target Q grid (copy)
	counts  []int      // raw per-bin sample counts, zero for empty bins
	stats   []BinStats // per-bin averages, placeholder zeros for empty bins
}

// NumBins returns the number of bins, including the two guard bins.
func (b *Binned) NumBins() int { return len(b.stats) }

// Counts returns the raw per-bin sample counts. A zero entry marks a bin
// whose stats are the empty-bin placeholder rather than a real average.
func (b *Binned) Counts() []int {
	out := make([]int, len(b.counts))
	copy(out, b.counts)

	return out
}
