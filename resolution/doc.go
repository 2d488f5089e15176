// Package resolution computes the angular divergence of a slit-collimated
// beam and tags the shape of the resulting resolution function.
//
// The divergence of a two-aperture collimator is set by the first two
// slits and their separation:
//
//	dT = degrees( (S1 + S2) / (2 * (d2 - d1)) )
//
// where d1 and d2 are the signed slit positions along the beam with the
// sample at the origin (both negative upstream of the sample, so d2 - d1
// is the slit separation L12).
//
// When the beam footprint exceeds the sample width, the sample itself
// becomes the second defining aperture: its projection onto the beam,
// sampleWidth * sin(theta), is combined with S1 over the S1-to-sample
// distance, and the tighter of the two collimations wins.
//
// The Shape tag records whether an instrument's resolution function is
// treated as normal (Gaussian) or uniform (top-hat) by downstream
// reduction; the divergence value itself is shape-independent.
package resolution
