// Package units converts between scattering angle and momentum transfer.
//
// For elastic specular reflection the momentum transfer Q (inverse
// Angstroms) and the incident angle theta (degrees) are related through
// the wavelength lambda (Angstroms) by
//
//	Q = 4*pi/lambda * sin(theta)
//	theta = asin(Q*lambda / (4*pi))
//
// Both directions are exposed as scalar and slice forms. The slice forms
// apply the conversion elementwise with a single shared wavelength, which
// is the common case for a scan over many positions on one channel.
//
// Errors (sentinel):
//
//	– ErrBadWavelength if the wavelength is zero, negative, or not finite.
//	– ErrDomain        if |Q*lambda/(4*pi)| > 1, i.e. no physical angle exists.
//
// AngleFromQ and QFromAngle are exact inverses of each other to within
// floating-point tolerance over the physically valid domain.
package units
