// Package instrumentcfg loads instrument parameter files.
//
// The built-in instrument constants (geometry, motion profile, counting
// weight model) are measured values that drift as beamline hardware is
// retuned. A parameter file lets a deployment override them without
// recompiling:
//
//	motion:
//	  basespeed: 0.25
//	  topspeed: 1.5
//	  acceleration: 0.6
//	monitor:
//	  mon0: 25
//	  mon1: 1000
//	  qpow: 2
//	sample_width: 25.0
//	calibration_dir: /var/lib/refscan/calibration
//
// Load parses such a file (YAML, TOML or JSON, decided by extension) into
// instrument.Overrides, validating any motion or geometry block it finds.
// A geometry block replaces the whole geometry; omitting sample_width
// inside it means an unbounded sample.
//
// NewLogger builds the colorized slog logger the command-line tools use.
package instrumentcfg
