package motion

import (
	"errors"
	"math"
)

// Sentinel errors returned by the motion-time model.
var (
	// ErrBadSpeed indicates a non-positive base speed or a top speed below base.
	ErrBadSpeed = errors.New("motion: need 0 < base speed <= top speed")

	// ErrBadAcceleration indicates a non-positive acceleration.
	ErrBadAcceleration = errors.New("motion: acceleration must be positive")
)

// Profile holds the motion constants of the detector arm.
// Speeds are in degrees per second, acceleration in degrees per second
// squared, as measured on the physical axis.
type Profile struct {
	BaseSpeed    float64
	TopSpeed     float64
	Acceleration float64
}

// Validate reports the first violated constraint of the Profile, or nil.
func (p Profile) Validate() error {
	if p.BaseSpeed <= 0 || p.TopSpeed < p.BaseSpeed {
		return ErrBadSpeed
	}
	if p.Acceleration <= 0 {
		return ErrBadAcceleration
	}

	return nil
}

// MoveTime returns the time in seconds to move the detector arm from the
// current scattering angle to each target angle (all in degrees).
// The current position is explicit: callers own it and pass it in, there is
// no hidden instrument state here.
// Stage 1 (Validate): check the profile.
// Stage 2 (Execute): pick the cruise or acceleration-only branch per target.
// Stage 3 (Finalize): return one duration per target, never negative.
// Complexity: O(n) over targets.
func MoveTime(p Profile, current float64, targets []float64) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// Time spent accelerating from base to top speed.
	accelT := (p.TopSpeed - p.BaseSpeed) / p.Acceleration
	// Arc covered by a full accelerate/decelerate cycle with no cruise.
	maxAccelDelta := 2 * (0.5*p.Acceleration*accelT*accelT + p.BaseSpeed*accelT)

	times := make([]float64, len(targets))
	for i, target := range targets {
		// The arm sweeps twice the scattering-angle change.
		delta := 2 * math.Abs(target-current)

		if delta >= maxAccelDelta {
			// Top speed reached: full ramp up, cruise, full ramp down.
			times[i] = 2*accelT + (delta-maxAccelDelta)/p.TopSpeed
		} else {
			// Top speed not reached: invert the ramp distance relation.
			times[i] = 2 * p.BaseSpeed / p.Acceleration *
				(-1 + math.Sqrt(1+delta*p.Acceleration/(p.BaseSpeed*p.BaseSpeed)))
		}
	}

	return times, nil
}
