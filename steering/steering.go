// Package steering converts a normalized steering input into per-wheel
// angles using Ackermann geometry, blended with parallel steering by a
// configurable factor, and rate-limits the input itself to emulate a
// steering rack that cannot snap instantly to a new angle.
package steering

import (
	"math"

	"github.com/driftlab/vdyncore/vecmath"
)

// Config holds the tunables of a steering rack.
type Config struct {
	MaxSteerAngle    float64
	SteeringRatio    float64
	AckermannFactor  float64
	Wheelbase        float64
	TrackWidth       float64
	SteeringRate     float64
	SteeringSmoothing float64
}

// DefaultConfig returns a representative road-car steering setup.
func DefaultConfig() Config {
	return Config{
		MaxSteerAngle:   0.6,
		SteeringRatio:   15.0,
		AckermannFactor: 0.8,
		Wheelbase:       2.7,
		TrackWidth:      1.5,
		SteeringRate:    3.0,
	}
}

// Steering tracks a rate-limited steering input and derives Ackermann
// wheel angles from it.
type Steering struct {
	config Config

	currentInput float64
	targetInput  float64
}

// New constructs a Steering system from Config.
func New(config Config) *Steering { return &Steering{config: config} }

// SetInput records a new target steering input, clamped to [-1, 1].
func (s *Steering) SetInput(steerInput float64) {
	s.targetInput = vecmath.Clamp(steerInput, -1, 1)
}

// Update advances the current input toward the target, limited by the
// configured steering rate (expressed in radians of road-wheel angle per
// second).
func (s *Steering) Update(dt float64) {
	if s.config.MaxSteerAngle == 0 {
		return
	}
	maxDelta := s.config.SteeringRate * dt / s.config.MaxSteerAngle

	diff := s.targetInput - s.currentInput
	if math.Abs(diff) > maxDelta {
		diff = math.Copysign(maxDelta, diff)
	}
	s.currentInput += diff
}

// WheelAngles returns the front left and front right wheel angles (radians,
// positive = turning right) for the steering system's current input.
func (s *Steering) WheelAngles() (left, right float64) {
	return s.wheelAnglesFor(s.currentInput)
}

// WheelAnglesInstant computes wheel angles for an arbitrary steer input,
// bypassing rate limiting and current state. Useful for one-off queries,
// e.g. previewing a target angle before it has ramped in.
func (s *Steering) WheelAnglesInstant(steerInput float64) (left, right float64) {
	return s.wheelAnglesFor(steerInput)
}

func (s *Steering) wheelAnglesFor(steerInput float64) (left, right float64) {
	cfg := s.config
	baseAngle := steerInput * cfg.MaxSteerAngle

	if math.Abs(baseAngle) < 0.001 {
		return 0, 0
	}

	if cfg.AckermannFactor < 0.001 {
		return baseAngle, baseAngle
	}

	if math.Abs(baseAngle) < 0.1 {
		correction := cfg.Wheelbase * math.Abs(baseAngle) / (2 * cfg.TrackWidth) * cfg.AckermannFactor
		return baseAngle - correction, baseAngle + correction
	}

	return s.fullAckermann(baseAngle)
}

func (s *Steering) fullAckermann(baseAngle float64) (left, right float64) {
	cfg := s.config

	tanAngle := math.Tan(math.Abs(baseAngle))
	if tanAngle == 0 {
		return baseAngle, baseAngle
	}
	r := cfg.Wheelbase / tanAngle

	rInner := r - cfg.TrackWidth/2
	rOuter := r + cfg.TrackWidth/2
	if rInner <= 0 || rOuter <= 0 {
		return baseAngle, baseAngle
	}

	angleInner := math.Atan(cfg.Wheelbase / rInner)
	angleOuter := math.Atan(cfg.Wheelbase / rOuter)

	factor := cfg.AckermannFactor
	absAngle := math.Abs(baseAngle)

	var leftMag, rightMag float64
	if baseAngle > 0 {
		// Turning right: left wheel is on the outside of the turn.
		leftMag = absAngle*(1-factor) + angleOuter*factor
		rightMag = absAngle*(1-factor) + angleInner*factor
	} else {
		// Turning left: right wheel is on the outside of the turn.
		rightMag = absAngle*(1-factor) + angleOuter*factor
		leftMag = absAngle*(1-factor) + angleInner*factor
	}

	return math.Copysign(leftMag, baseAngle), math.Copysign(rightMag, baseAngle)
}

// TurnRadius returns the approximate turn radius for the steering system's
// current input, or +Inf when effectively going straight.
func (s *Steering) TurnRadius() float64 {
	return s.turnRadiusFor(s.currentInput)
}

func (s *Steering) turnRadiusFor(steerInput float64) float64 {
	baseAngle := steerInput * s.config.MaxSteerAngle
	if math.Abs(baseAngle) < 0.001 {
		return math.Inf(1)
	}
	return math.Abs(s.config.Wheelbase / math.Tan(baseAngle))
}

// CurrentInput returns the rate-limited steering input actually applied.
func (s *Steering) CurrentInput() float64 { return s.currentInput }

// TargetInput returns the most recently requested steering input.
func (s *Steering) TargetInput() float64 { return s.targetInput }
