package instrumentcfg

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/viper"

	"github.com/refscan/refscan/geometry"
	"github.com/refscan/refscan/instrument"
	"github.com/refscan/refscan/motion"
)

// ErrBadParameterFile indicates a parameter file that could not be read or
// decoded.
var ErrBadParameterFile = errors.New("instrumentcfg: bad parameter file")

// fileParams mirrors the parameter-file layout.
type fileParams struct {
	Geometry *struct {
		L12         float64 `mapstructure:"l12"`
		L2S         float64 `mapstructure:"l2s"`
		LS3         float64 `mapstructure:"ls3"`
		L34         float64 `mapstructure:"l34"`
		Footprint   float64 `mapstructure:"footprint"`
		SampleWidth float64 `mapstructure:"sample_width"`
		S3Offset    float64 `mapstructure:"s3_offset"`
		R12         float64 `mapstructure:"r12"`
	} `mapstructure:"geometry"`

	Motion *struct {
		BaseSpeed    float64 `mapstructure:"basespeed"`
		TopSpeed     float64 `mapstructure:"topspeed"`
		Acceleration float64 `mapstructure:"acceleration"`
	} `mapstructure:"motion"`

	Monitor *struct {
		Mon0 float64 `mapstructure:"mon0"`
		Mon1 float64 `mapstructure:"mon1"`
		QPow float64 `mapstructure:"qpow"`
	} `mapstructure:"monitor"`

	SampleWidth    *float64 `mapstructure:"sample_width"`
	CalibrationDir string   `mapstructure:"calibration_dir"`
}

// Load reads a parameter file into instrument overrides, validating any
// motion or geometry block it carries. The logger records the source file;
// nil uses slog.Default().
func Load(path string, logger *slog.Logger) (instrument.Overrides, error) {
	if logger == nil {
		logger = slog.Default()
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return instrument.Overrides{}, fmt.Errorf("%w: %s: %v", ErrBadParameterFile, path, err)
	}

	var f fileParams
	if err := v.Unmarshal(&f); err != nil {
		return instrument.Overrides{}, fmt.Errorf("%w: %s: %v", ErrBadParameterFile, path, err)
	}

	var o instrument.Overrides

	if f.Geometry != nil {
		g := geometry.Config{
			L12:         f.Geometry.L12,
			L2S:         f.Geometry.L2S,
			LS3:         f.Geometry.LS3,
			L34:         f.Geometry.L34,
			Footprint:   f.Geometry.Footprint,
			SampleWidth: f.Geometry.SampleWidth,
			S3Offset:    f.Geometry.S3Offset,
			R12:         f.Geometry.R12,
		}
		// No sample_width in the block means an unbounded sample.
		if g.SampleWidth == 0 {
			g.SampleWidth = math.Inf(1)
		}
		if err := g.Validate(); err != nil {
			return instrument.Overrides{}, fmt.Errorf("%w: %s: %v", ErrBadParameterFile, path, err)
		}
		o.Geometry = &g
	}

	if f.Motion != nil {
		m := motion.Profile{
			BaseSpeed:    f.Motion.BaseSpeed,
			TopSpeed:     f.Motion.TopSpeed,
			Acceleration: f.Motion.Acceleration,
		}
		if err := m.Validate(); err != nil {
			return instrument.Overrides{}, fmt.Errorf("%w: %s: %v", ErrBadParameterFile, path, err)
		}
		o.Motion = &m
	}

	if f.Monitor != nil {
		mon0, mon1, qpow := f.Monitor.Mon0, f.Monitor.Mon1, f.Monitor.QPow
		o.Mon0, o.Mon1, o.QPow = &mon0, &mon1, &qpow
	}

	if f.SampleWidth != nil {
		w := *f.SampleWidth
		o.SampleWidth = &w
	}
	o.CalibrationDir = f.CalibrationDir

	logger.Info("instrument parameters loaded", "path", path)

	return o, nil
}

// NewLogger builds the colorized slog logger used by command-line tools.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}
