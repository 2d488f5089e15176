// Package rebin collapses a dense set of raw scan samples into a coarser
// momentum-transfer binning and reports per-bin averaged kinematic
// variables: mean angle, RMS angular divergence, mean wavelength and
// variance-corrected wavelength spread.
//
// The pipeline is the one used by reflectometry reduction to build R(Q)
// resolution variables:
//
//  1. Build extended bin edges from the target Q grid: midpoints between
//     centers, extrapolated outer edges, plus unbounded guard bins on both
//     sides so every finite Q lands in exactly one bin.
//  2. Assign each raw sample to a bin by binary search on the edges.
//  3. Accumulate per bin: count, sum of wavelength, sum of
//     (wavelengthSpread^2 + wavelength^2), sum of angle, sum of
//     angularSpread^2.
//  4. Divide by the count, clamped to at least 1. An empty bin therefore
//     yields the defined placeholder 0/1 = 0, not an error; Counts lets
//     callers tell a genuinely empty bin from a single-sample one.
//  5. Wavelength spread is sqrt(secondMoment - mean^2) with the radicand
//     clamped to zero against floating-point underflow.
//
// Lookup then maps requested Q values onto bins by binary search over the
// target grid, offset by one to account for the low guard bin. Queries
// outside the covered range return the boundary bin's values; no
// extrapolation error is raised.
package rebin
