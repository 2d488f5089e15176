package geometry

import "math"

// Slits computes the four slit apertures for each scan angle (degrees).
// Stage 1 (Validate): check the geometric constants.
// Stage 2 (Execute): apply the constant-footprint slit equations per angle.
// Stage 3 (Finalize): return the per-angle aperture set.
// Complexity: O(n) over the number of angles.
func Slits(cfg Config, angles []float64) (Apertures, error) {
	if err := cfg.Validate(); err != nil {
		return Apertures{}, err
	}

	n := len(angles)
	ap := Apertures{
		S1: make([]float64, n),
		S2: make([]float64, n),
		S3: make([]float64, n),
		S4: make([]float64, n),
	}

	// Denominator of the constant-footprint condition for S2.
	den := (cfg.R12+1)*cfg.L2S/cfg.L12 + 1

	for i, angle := range angles {
		sintheta := math.Sin(angle * math.Pi / 180)

		s2 := cfg.Footprint * sintheta / den
		s1 := cfg.R12 * s2

		ap.S1[i] = s1
		ap.S2[i] = s2
		ap.S3[i] = (s1+s2)*(cfg.L2S+cfg.LS3)/cfg.L12 + s2 + cfg.S3Offset
		ap.S4[i] = (s1+s2)*(cfg.L2S+cfg.LS3+cfg.L34)/cfg.L12 + s2 + cfg.S3Offset
	}

	return ap, nil
}

// SlitDistances returns the signed distances of the four slits from the
// sample along the beam axis: {-(L12+L2S), -L2S, LS3, LS3+L34}.
// Negative values are upstream of the sample.
func SlitDistances(cfg Config) [4]float64 {
	return [4]float64{
		-(cfg.L12 + cfg.L2S),
		-cfg.L2S,
		cfg.LS3,
		cfg.LS3 + cfg.L34,
	}
}
