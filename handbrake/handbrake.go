// Package handbrake models a rear-axle emergency brake with progressive
// engagement/release rates and per-wheel lock detection, used to break
// rear traction for drift initiation.
package handbrake

import (
	"math"

	"github.com/driftlab/vdyncore/vecmath"
)

// Config holds handbrake tunables.
type Config struct {
	MaxTorque      float64
	EngagementRate float64
	ReleaseRate    float64
	CanLockWheels  bool
	LockThreshold  float64
}

// DefaultConfig returns representative handbrake tunables.
func DefaultConfig() Config {
	return Config{
		MaxTorque:      2000.0,
		EngagementRate: 10.0,
		ReleaseRate:    15.0,
		CanLockWheels:  true,
		LockThreshold:  0.5,
	}
}

// Handbrake tracks engagement level and per-wheel lock state for the rear
// axle.
type Handbrake struct {
	config Config

	engagement float64
	target     float64

	leftLocked  bool
	rightLocked bool
}

// New constructs a Handbrake, released.
func New(config Config) *Handbrake { return &Handbrake{config: config} }

// SetInput sets the handbrake lever target, clamped to [0, 1].
func (h *Handbrake) SetInput(input float64) {
	h.target = vecmath.Clamp(input, 0, 1)
}

// Update advances engagement toward target at the configured
// engagement/release rate.
func (h *Handbrake) Update(dt float64) {
	if h.target > h.engagement {
		h.engagement = math.Min(h.target, h.engagement+h.config.EngagementRate*dt)
	} else {
		h.engagement = math.Max(h.target, h.engagement-h.config.ReleaseRate*dt)
	}
}

// BrakeTorques returns the unsigned brake torque applied to each rear
// wheel (always positive, opposes rotation), and updates per-wheel lock
// state from the supplied wheel angular velocities.
func (h *Handbrake) BrakeTorques(omegaL, omegaR float64) (left, right float64) {
	baseTorque := h.engagement * h.config.MaxTorque

	if h.config.CanLockWheels {
		if h.engagement > 0.8 {
			h.leftLocked = math.Abs(omegaL) < h.config.LockThreshold
			h.rightLocked = math.Abs(omegaR) < h.config.LockThreshold
		} else {
			h.leftLocked = false
			h.rightLocked = false
		}
	}

	return baseTorque, baseTorque
}

// SignedBrakeTorques returns the per-wheel brake torque signed so that it
// opposes each wheel's current rotation, with no torque applied to a
// near-stationary wheel.
func (h *Handbrake) SignedBrakeTorques(omegaL, omegaR float64) (left, right float64) {
	baseL, baseR := h.BrakeTorques(omegaL, omegaR)

	left = 0
	if math.Abs(omegaL) > 0.1 {
		left = -math.Copysign(baseL, omegaL)
	}
	right = 0
	if math.Abs(omegaR) > 0.1 {
		right = -math.Copysign(baseR, omegaR)
	}
	return left, right
}

// Engagement returns the current engagement level, 0 to 1.
func (h *Handbrake) Engagement() float64 { return h.engagement }

// IsEngaged reports whether the handbrake is engaged at all.
func (h *Handbrake) IsEngaged() bool { return h.engagement > 0.01 }

// IsFullyEngaged reports whether the handbrake is at (near) full lock.
func (h *Handbrake) IsFullyEngaged() bool { return h.engagement > 0.95 }

// LeftLocked reports whether the left rear wheel is currently locked.
func (h *Handbrake) LeftLocked() bool { return h.leftLocked }

// RightLocked reports whether the right rear wheel is currently locked.
func (h *Handbrake) RightLocked() bool { return h.rightLocked }

// BothLocked reports whether both rear wheels are currently locked.
func (h *Handbrake) BothLocked() bool { return h.leftLocked && h.rightLocked }

// Reset releases the handbrake and clears lock state.
func (h *Handbrake) Reset() {
	h.engagement = 0
	h.target = 0
	h.leftLocked = false
	h.rightLocked = false
}
