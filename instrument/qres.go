package instrument

import (
	"github.com/refscan/refscan/rebin"
)

// QResolution converts requested momentum-transfer values into
// bin-averaged kinematic variables (angle, angular divergence, wavelength,
// wavelength spread) for R(Q) profile calculation.
//
// measX is the dense set of scan positions the instrument will visit and
// measQ the coarser target momentum-transfer grid. All per-channel values
// at every position are flattened into the rebinning engine, binned on
// measQ, and the bins containing each requested q are returned.
//
// Requested values outside the covered range return the boundary bin's
// averages. Bins without any raw sample carry the rebinning engine's
// placeholder zeros, not an error.
func QResolution(r Reflectometer, qs, measX, measQ []float64) ([]rebin.BinStats, error) {
	if len(measX) == 0 {
		return nil, ErrNoPositions
	}

	q, err := r.QFromX(measX)
	if err != nil {
		return nil, err
	}
	angle, err := r.Angle(measX)
	if err != nil {
		return nil, err
	}
	dAngle, err := r.AngularSpread(measX)
	if err != nil {
		return nil, err
	}
	wl, err := r.Wavelength(measX)
	if err != nil {
		return nil, err
	}
	dwl, err := r.WavelengthSpread(measX)
	if err != nil {
		return nil, err
	}

	// All five grids share the positions-by-channels shape, so their
	// row-major flattenings are index-aligned.
	fq, ft, fdt, fl, fdl := q.Flatten(), angle.Flatten(), dAngle.Flatten(), wl.Flatten(), dwl.Flatten()

	samples := make([]rebin.Sample, len(fq))
	for i := range fq {
		samples[i] = rebin.Sample{
			Q:                fq[i],
			Angle:            ft[i],
			AngularSpread:    fdt[i],
			Wavelength:       fl[i],
			WavelengthSpread: fdl[i],
		}
	}

	binned, err := rebin.Rebin(measQ, samples)
	if err != nil {
		return nil, err
	}

	return binned.Lookup(qs), nil
}
