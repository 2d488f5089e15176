// Package instrument defines the Reflectometer contract shared by all
// scanning reflectometer variants and provides the two concrete
// instruments it was written for:
//
//   - MAGIK  — scans in momentum transfer with a single monochromatic
//     wavelength channel; intensity follows a cubic polynomial of the
//     first slit aperture fitted from calibration data.
//   - CANDOR — scans in angle with a multi-channel wavelength bank;
//     per-channel intensity is interpolated from a tabulated calibration
//     curve and the final slit is a fixed detector mask.
//
// A Reflectometer answers, for any set of scan positions, the questions an
// experiment planner asks: what are the slit openings, the angular and
// wavelength resolution, the expected incident intensity, how long a move
// takes, and how a total counting-time budget should be split so that
// every position reaches comparable statistics.
//
// Scan-variable semantics differ per variant (momentum transfer vs angle);
// everything else is shared default behavior each variant delegates to
// explicitly. Per-channel results use grid.Grid with positions as rows and
// detector channels as columns.
//
// The only mutable state is the current scan position used by MoveTime.
// It is owned by the caller's control loop through SetPosition, Position
// and ClearPosition; no method mutates it internally. With no position
// set, MoveTime reports zero for every target (the instrument is treated
// as already there).
//
// Construction loads calibration files from a directory (default
// "calibration", override with WithCalibrationDir). A missing MAGIK
// intensity table is recoverable: a warning is logged and built-in default
// coefficients are used. A missing CANDOR wavelength or intensity table is
// fatal, since no safe default wavelength bank exists.
package instrument
