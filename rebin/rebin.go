package rebin

import (
	"math"
	"sort"
)

// Edges returns bin boundaries for a strictly ascending grid of bin
// centers. Interior edges are midpoints between neighbors; the outer edges
// extrapolate half the first and last spacing. With extended=true two
// unbounded guard bins are added so that every finite value falls inside
// some bin.
// Complexity: O(n).
func Edges(centers []float64, extended bool) ([]float64, error) {
	if len(centers) < 2 {
		return nil, ErrTooFewCenters
	}
	for i := 1; i < len(centers); i++ {
		if centers[i] <= centers[i-1] {
			return nil, ErrNotAscending
		}
	}

	n := len(centers)
	edges := make([]float64, 0, n+3)

	if extended {
		edges = append(edges, math.Inf(-1))
	}
	edges = append(edges, centers[0]-(centers[1]-centers[0])/2)
	for i := 1; i < n; i++ {
		edges = append(edges, (centers[i-1]+centers[i])/2)
	}
	edges = append(edges, centers[n-1]+(centers[n-1]-centers[n-2])/2)
	if extended {
		edges = append(edges, math.Inf(1))
	}

	return edges, nil
}

// Rebin bins the samples onto the target Q grid and derives per-bin
// averaged kinematic variables.
// Stage 1 (Validate): build extended edges, reject empty input.
// Stage 2 (Accumulate): one pass over the samples, sums per bin.
// Stage 3 (Finalize): divide by counts clamped to >= 1, clamp variance
// radicands to >= 0, return the immutable Binned.
// Complexity: O(m log n) for m samples over n target centers.
func Rebin(targetQ []float64, samples []Sample) (*Binned, error) {
	edges, err := Edges(targetQ, true)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	nbins := len(edges) - 1
	counts := make([]int, nbins)
	sumL := make([]float64, nbins)
	sumLsq := make([]float64, nbins)
	sumT := make([]float64, nbins)
	sumTsq := make([]float64, nbins)

	for _, s := range samples {
		// First edge is -Inf, so any finite Q maps into [0, nbins-1].
		idx := sort.SearchFloat64s(edges, s.Q) - 1

		counts[idx]++
		sumL[idx] += s.Wavelength
		sumLsq[idx] += s.WavelengthSpread*s.WavelengthSpread + s.Wavelength*s.Wavelength
		sumT[idx] += s.Angle
		sumTsq[idx] += s.AngularSpread * s.AngularSpread
	}

	stats := make([]BinStats, nbins)
	for i := 0; i < nbins; i++ {
		// Divide-by-zero guard: an empty bin divides by 1 and yields the
		// documented placeholder zero.
		w := float64(counts[i])
		if w == 0 {
			w = 1
		}

		meanL := sumL[i] / w
		radicand := sumLsq[i]/w - meanL*meanL
		if radicand < 0 {
			radicand = 0 // floating-point underflow near zero spread
		}

		stats[i] = BinStats{
			Angle:            sumT[i] / w,
			AngularSpread:    math.Sqrt(sumTsq[i] / w),
			Wavelength:       meanL,
			WavelengthSpread: math.Sqrt(radicand),
		}
	}

	centers := make([]float64, len(targetQ))
	copy(centers, targetQ)

	return &Binned{centers: centers, counts: counts, stats: stats}, nil
}

// Lookup returns the averaged variables of the bin containing each query
// Q. The index is found by binary search over the target centers, shifted
// by one for the low guard bin. Queries below or above the covered range
// return the boundary bin's values.
// Complexity: O(k log n) for k queries.
func (b *Binned) Lookup(qs []float64) []BinStats {
	out := make([]BinStats, len(qs))
	for i, q := range qs {
		idx := sort.SearchFloat64s(b.centers, q) + 1
		out[i] = b.stats[idx]
	}

	return out
}
