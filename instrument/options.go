package instrument

import "log/slog"

// DefaultCalibrationDir is where constructors look for calibration files
// unless WithCalibrationDir or an override says otherwise.
const DefaultCalibrationDir = "calibration"

// settings collects construction-time knobs shared by all variants.
type settings struct {
	logger         *slog.Logger
	calibrationDir string
	overrides      Overrides
}

// Option configures instrument construction.
type Option func(*settings)

// WithLogger sets the logger used for calibration warnings.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCalibrationDir sets the directory calibration files are read from.
func WithCalibrationDir(dir string) Option {
	return func(s *settings) {
		if dir != "" {
			s.calibrationDir = dir
		}
	}
}

// WithOverrides applies parameter overrides (typically loaded from an
// instrument parameter file) on top of the built-in constants.
func WithOverrides(o Overrides) Option {
	return func(s *settings) {
		s.overrides = o
		if o.CalibrationDir != "" {
			s.calibrationDir = o.CalibrationDir
		}
	}
}

// newSettings applies the options over the defaults.
func newSettings(opts []Option) settings {
	s := settings{
		logger:         slog.Default(),
		calibrationDir: DefaultCalibrationDir,
	}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}
