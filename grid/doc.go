// Package grid provides a dense positions-by-channels value grid.
//
// Multi-channel instruments produce one value per (scan position, detector
// channel) pair. Grid makes that two-dimensional shape explicit: rows are
// scan positions, columns are detector channels, storage is a flat
// row-major slice for cache friendliness.
//
// The broadcast constructors mirror the two shapes that occur at every
// computation boundary:
//
//	BroadcastCol(v, cols) — one value per position, repeated across
//	                        channels (angles, divergences)
//	BroadcastRow(v, rows) — one value per channel, repeated across
//	                        positions (wavelengths, wavelength spreads)
//
// Flatten returns the row-major backing order, which is the order the
// rebinning engine consumes.
package grid
