package tire

import (
	"math"

	"github.com/driftlab/vdyncore/vecmath"
)

// minSlipVelocity is the minimum reference velocity used when computing
// slip ratios and slip angles, avoiding division by a near-zero speed.
const minSlipVelocity = 0.5

// SlipState captures the slip quantities derived for a single tire update.
type SlipState struct {
	SlipRatio    float64
	SlipAngle    float64 // radians
	SlipAngleDeg float64
	Combined     float64
}

// SlipRatio computes the longitudinal slip ratio from ground and wheel
// velocities, clamped to [-1, 1]. Positive is acceleration, negative is
// braking.
func SlipRatio(groundVelocity, wheelAngularVelocity, wheelRadius float64) float64 {
	return vecmath.Clamp(SlipRatioExtended(groundVelocity, wheelAngularVelocity, wheelRadius), -1, 1)
}

// SlipRatioExtended is the unclamped slip ratio, used by combined-slip
// reconciliation where values outside [-1, 1] still carry information.
func SlipRatioExtended(groundVelocity, wheelAngularVelocity, wheelRadius float64) float64 {
	wheelVelocity := wheelAngularVelocity * wheelRadius
	reference := math.Max(math.Max(math.Abs(groundVelocity), math.Abs(wheelVelocity)), minSlipVelocity)
	return (wheelVelocity - groundVelocity) / reference
}

// SlipAngle computes the lateral slip angle (radians) between a contact
// velocity (world frame) and the wheel heading, normalized to [-pi, pi].
// Returns 0 below the minimum slip velocity.
func SlipAngle(velocity vecmath.Vec3, wheelHeading float64) float64 {
	speed := velocity.Magnitude2D()
	if speed < minSlipVelocity {
		return 0
	}
	velocityAngle := math.Atan2(velocity.Y, velocity.X)
	return vecmath.NormalizeAngle(velocityAngle - wheelHeading)
}

// CombinedMagnitude returns sigma = sqrt(sr^2 + tan(alpha)^2), clipping
// tan(alpha) to a large finite value as alpha approaches +/- pi/2.
func CombinedMagnitude(slipRatio, slipAngle float64) float64 {
	tanAlpha := 100.0
	if math.Abs(slipAngle) < math.Pi/2-0.01 {
		tanAlpha = math.Tan(slipAngle)
	}
	return math.Hypot(slipRatio, tanAlpha)
}

// Calculate derives the complete slip state for a tire from its contact
// velocity, heading, spin, and radius.
func Calculate(contactVelocity vecmath.Vec3, wheelHeading, wheelAngularVelocity, wheelRadius float64) SlipState {
	heading := vecmath.Vec3{X: math.Cos(wheelHeading), Y: math.Sin(wheelHeading)}
	forwardVelocity := contactVelocity.Dot(heading)

	sr := SlipRatio(forwardVelocity, wheelAngularVelocity, wheelRadius)
	sa := SlipAngle(contactVelocity, wheelHeading)
	saDeg := sa * 180 / math.Pi

	return SlipState{
		SlipRatio:    sr,
		SlipAngle:    sa,
		SlipAngleDeg: saDeg,
		Combined:     CombinedMagnitude(sr, sa),
	}
}
