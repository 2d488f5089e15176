// Package motion models the time a detector arm needs to move between
// angular positions under a trapezoidal velocity profile.
//
// The arm starts at a base speed, accelerates at a constant rate to a top
// speed, cruises, then decelerates symmetrically. For a change of
// scattering angle dTheta the arm travels twice that angle, so the arc
// length is
//
//	delta = 2 * |target - current|
//
// With accelT = (top - base)/accel, one full accelerate/decelerate cycle
// without reaching top speed covers
//
//	maxAccelDelta = 2 * (accel*accelT^2/2 + base*accelT)
//
// Moves at least that long include a cruise phase:
//
//	t = 2*accelT + (delta - maxAccelDelta)/top
//
// Shorter moves never reach top speed; solving the constant-acceleration
// distance relation for time gives
//
//	t = (2*base/accel) * (-1 + sqrt(1 + delta*accel/base^2))
//
// Move time is zero for a zero-length move and is monotonically
// non-decreasing in |target - current|.
package motion
