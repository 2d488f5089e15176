package calibration

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Sentinel errors returned by the table loaders.
var (
	// ErrBadRecord indicates a malformed line or CSV record.
	ErrBadRecord = errors.New("calibration: malformed calibration record")

	// ErrEmptyTable indicates a calibration file with no usable rows.
	ErrEmptyTable = errors.New("calibration: calibration table is empty")
)

// LoadReflTable reads a whitespace-separated (x, y, dy) table. Blank lines
// and lines starting with '#' are skipped.
func LoadReflTable(path string) (x, y, dy []float64, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("calibration: read %s: %w", path, err)
	}

	for lineno, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, nil, nil, fmt.Errorf("%w: %s line %d", ErrBadRecord, path, lineno+1)
		}

		var vals [3]float64
		for i := 0; i < 3; i++ {
			vals[i], err = strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("%w: %s line %d: %v", ErrBadRecord, path, lineno+1, err)
			}
		}

		x = append(x, vals[0])
		y = append(y, vals[1])
		dy = append(dy, vals[2])
	}

	if len(x) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrEmptyTable, path)
	}

	return x, y, dy, nil
}

// LoadWavelengthCSV reads a per-channel wavelength calibration file.
// Each record carries (channel index, wavelength, wavelength spread); only
// the second and third columns are used. The on-disk order is
// detector-reversed, so rows are flipped before returning.
func LoadWavelengthCSV(path string) (wavelength, spread []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("calibration: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrBadRecord, path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmptyTable, path)
	}

	n := len(records)
	wavelength = make([]float64, n)
	spread = make([]float64, n)
	for i, rec := range records {
		if len(rec) < 3 {
			return nil, nil, fmt.Errorf("%w: %s record %d", ErrBadRecord, path, i+1)
		}

		wl, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s record %d: %v", ErrBadRecord, path, i+1, err)
		}
		dl, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s record %d: %v", ErrBadRecord, path, i+1, err)
		}

		// Flip to ascending channel order.
		wavelength[n-1-i] = wl
		spread[n-1-i] = dl
	}

	return wavelength, spread, nil
}

// IntensityTable is a tabulated per-channel intensity-vs-aperture curve:
// Channels[c][k] is the count rate of channel c at aperture X[k].
type IntensityTable struct {
	X        []float64
	Channels [][]float64
}

// intensityFile mirrors the JSON intensity export layout.
type intensityFile struct {
	Outputs []struct {
		X []float64   `json:"x"`
		V [][]float64 `json:"v"`
	} `json:"outputs"`
}

// LoadIntensityJSON reads a JSON intensity export and transposes its
// points-by-channels value table into per-channel curves.
func LoadIntensityJSON(path string) (*IntensityTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calibration: read %s: %w", path, err)
	}

	var file intensityFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadRecord, path, err)
	}
	if len(file.Outputs) == 0 || len(file.Outputs[0].X) == 0 || len(file.Outputs[0].V) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTable, path)
	}

	out := file.Outputs[0]
	npts := len(out.X)
	if len(out.V) != npts {
		return nil, fmt.Errorf("%w: %s: %d x values but %d rows", ErrBadRecord, path, npts, len(out.V))
	}

	nchan := len(out.V[0])
	channels := make([][]float64, nchan)
	for c := range channels {
		channels[c] = make([]float64, npts)
	}
	for k, row := range out.V {
		if len(row) != nchan {
			return nil, fmt.Errorf("%w: %s: ragged value table at row %d", ErrBadRecord, path, k)
		}
		for c, v := range row {
			channels[c][k] = v
		}
	}

	return &IntensityTable{X: out.X, Channels: channels}, nil
}
