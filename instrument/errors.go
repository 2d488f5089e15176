package instrument

import "errors"

// Sentinel errors returned by instrument construction and operations.
var (
	// ErrNoPositions indicates an empty scan-position set where at least
	// one position is required.
	ErrNoPositions = errors.New("instrument: no scan positions")

	// ErrZeroWeight indicates the counting-time weights summed to zero or
	// below, so no meaningful time allocation exists.
	ErrZeroWeight = errors.New("instrument: counting-time weights sum to <= 0")

	// ErrMissingCalibration indicates required calibration data could not
	// be loaded and no safe default exists.
	ErrMissingCalibration = errors.New("instrument: calibration data missing")

	// ErrBadWavelengthTable indicates an empty or inconsistent wavelength
	// table.
	ErrBadWavelengthTable = errors.New("instrument: bad wavelength table")
)
