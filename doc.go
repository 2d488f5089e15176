// Package refscan models scanning neutron-reflectometry instruments for
// experiment planning: slit geometry, angular and wavelength resolution,
// incident-beam intensity, mechanical move times and exposure allocation,
// all without touching a live instrument.
//
// What refscan computes:
//
//	For a requested scan position (momentum transfer or angle, depending
//	on the instrument) it predicts:
//		• slit apertures and slit-to-sample distances
//		• angular divergence and wavelength spread per detector channel
//		• expected incident intensity from calibration curves
//		• time to mechanically move the detector arm to the position
//		• how a total counting-time budget should be split across positions
//
// Under the hood, everything is organized per concern:
//
//	units/         — angle <-> momentum-transfer conversion
//	geometry/      — slit apertures and beam-axis distances
//	resolution/    — angular divergence of the collimation
//	motion/        — trapezoidal velocity-profile move times
//	rebin/         — Q rebinning into averaged kinematic variables
//	grid/          — dense positions-by-channels value grids
//	calibration/   — calibration table loaders and polynomial fits
//	instrument/    — the Reflectometer contract plus MAGIK and CANDOR
//	instrumentcfg/ — parameter-file overrides for instrument constants
//
// All computation is deterministic and synchronous; an instrument instance
// is safe to use from one goroutine at a time, and independent instances
// share no state.
//
//	go get github.com/refscan/refscan
package refscan
