// Package calibration loads instrument calibration tables and fits the
// polynomial intensity curves derived from them.
//
// Three file shapes occur on the instruments this module models:
//
//   - whitespace-separated reflectivity tables (x, y, dy columns), used
//     for intensity-vs-aperture measurements; lines starting with '#' are
//     comments,
//   - per-channel wavelength CSV files (channel index, wavelength,
//     wavelength spread per row), stored detector-reversed on disk and
//     flipped to ascending channel order on load,
//   - JSON intensity exports with an aperture axis and a points-by-channels
//     value table.
//
// PolyFit performs the weighted least-squares polynomial fit (QR on the
// weighted Vandermonde system) that turns a reflectivity table into
// intensity-curve coefficients, highest power first; Polyval evaluates
// such a curve.
package calibration
