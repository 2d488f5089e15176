// Package geometry computes slit apertures and beam-axis distances for a
// four-slit reflectometer collimation system.
//
// The instrument is described by four inter-component distances along the
// beam (all in millimeters):
//
//	L12 — source slit (S1) to pre-sample slit (S2)
//	L2S — pre-sample slit (S2) to sample
//	LS3 — sample to post-sample slit (S3)
//	L34 — post-sample slit (S3) to detector slit (S4)
//
// together with the beam footprint on the sample, the sample width, a fixed
// S3 opening offset and the S1/S2 aperture ratio R12.
//
// For a scan angle theta the pre-sample slit opens to keep the footprint
// constant:
//
//	S2 = footprint * sin(theta) / ((R12+1)*L2S/L12 + 1)
//	S1 = R12 * S2
//
// and the post-sample slits open linearly with distance so the full
// reflected beam passes:
//
//	S3 = (S1+S2)*(L2S+LS3)/L12     + S2 + S3Offset
//	S4 = (S1+S2)*(L2S+LS3+L34)/L12 + S2 + S3Offset
//
// Distances are reported signed with the sample at the origin:
// {-(L12+L2S), -L2S, LS3, LS3+L34}.
//
// Instruments with a fixed detector mask replace the computed S4 with the
// mask width via Apertures.OverrideS4.
package geometry
