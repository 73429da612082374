// Package drivetrain distributes engine torque to the driven wheels: an
// engine torque curve, a gear ratio, a selectable differential (open,
// locked, or limited-slip), and brake torque distribution across all four
// wheels.
package drivetrain

import (
	"math"

	"github.com/driftlab/vdyncore/vecmath"
)

// Differential selects how torque is split between the two wheels on a
// driven axle.
type Differential int

const (
	// Open splits torque 50/50; a spinning wheel with no grip still caps
	// total torque in practice because its reaction force collapses, but
	// the differential itself does not redistribute.
	Open Differential = iota
	// Locked forces both wheels to share torque equally regardless of
	// speed difference, as if mechanically welded together.
	Locked
	// LSD (limited-slip) transfers torque from the faster-spinning wheel
	// toward the slower one, within a configurable locking torque.
	LSD
)

// DriveLayout selects which axle receives engine torque.
type DriveLayout int

const (
	RWD DriveLayout = iota
	FWD
	// AWD is not yet fully modeled; it degrades to RWD semantics (the
	// front axle receives zero drive torque) until a center differential
	// is implemented.
	AWD
)

// Config holds the tunables of a drivetrain.
type Config struct {
	Layout       DriveLayout
	Differential Differential

	MaxTorque float64
	MaxRPM    float64
	IdleRPM   float64

	GearRatio  float64
	Efficiency float64

	LSDPreload    float64
	LSDPowerRatio float64
	LSDCoastRatio float64

	WheelInertia float64

	MaxBrakeTorque float64
	BrakeBias      float64
}

// DefaultConfig returns a representative RWD, open-differential setup.
func DefaultConfig() Config {
	return Config{
		Layout: RWD, Differential: Open,
		MaxTorque: 400.0, MaxRPM: 7000.0, IdleRPM: 800.0,
		GearRatio: 3.5, Efficiency: 0.9,
		LSDPreload: 100.0, LSDPowerRatio: 0.3, LSDCoastRatio: 0.1,
		WheelInertia: 1.0,
		MaxBrakeTorque: 3000.0, BrakeBias: 0.65,
	}
}

// BrakeTorques holds the per-wheel brake torque split, always positive.
type BrakeTorques struct {
	FL, FR, RL, RR float64
}

// Drivetrain tracks engine RPM and throttle, and converts them into wheel
// torques.
type Drivetrain struct {
	config Config

	engineRPM float64
	throttle  float64
}

// New constructs a Drivetrain with the engine idling.
func New(config Config) *Drivetrain {
	return &Drivetrain{config: config, engineRPM: config.IdleRPM}
}

// SetThrottle sets throttle position, clamped to [0, 1].
func (d *Drivetrain) SetThrottle(throttle float64) {
	d.throttle = vecmath.Clamp(throttle, 0, 1)
}

// EngineTorque returns engine output torque (Nm) at the currently held
// throttle position and the drivetrain's current RPM; see EngineTorqueAt
// for an explicit throttle.
func (d *Drivetrain) EngineTorque() float64 {
	return d.EngineTorqueAt(d.throttle)
}

// EngineTorqueAt returns engine output torque (Nm) for an explicit
// throttle position, using a torque curve that is flat near peak RPM and
// tapers off at idle and redline.
func (d *Drivetrain) EngineTorqueAt(throttle float64) float64 {
	cfg := d.config
	rpmFraction := vecmath.Clamp(d.engineRPM/cfg.MaxRPM, 0.1, 1.0)

	var torqueMult float64
	switch {
	case rpmFraction < 0.3:
		torqueMult = 0.6 + (rpmFraction/0.3)*0.4
	case rpmFraction < 0.8:
		torqueMult = 1.0
	default:
		torqueMult = 1.0 - (rpmFraction-0.8)/0.2*0.3
	}

	return throttle * cfg.MaxTorque * torqueMult
}

// DriveTorques returns the left/right torque split (Nm) for the driven
// axle given throttle and the current angular velocities of the two
// driven wheels.
func (d *Drivetrain) DriveTorques(throttle float64, omegaL, omegaR float64) (left, right float64) {
	cfg := d.config
	engineTorque := d.EngineTorqueAt(throttle)
	axleTorque := engineTorque * cfg.GearRatio * cfg.Efficiency

	switch cfg.Differential {
	case Locked, Open:
		return axleTorque / 2, axleTorque / 2
	case LSD:
		return d.lsdTorques(axleTorque, omegaL, omegaR)
	default:
		return axleTorque / 2, axleTorque / 2
	}
}

func (d *Drivetrain) lsdTorques(axleTorque, omegaL, omegaR float64) (left, right float64) {
	cfg := d.config
	deltaOmega := omegaR - omegaL

	lockRatio := cfg.LSDCoastRatio
	if axleTorque > 0 {
		lockRatio = cfg.LSDPowerRatio
	}

	lockingTorque := cfg.LSDPreload + math.Abs(axleTorque)*lockRatio
	base := axleTorque / 2

	if math.Abs(deltaOmega) <= 0.1 {
		return base, base
	}

	transfer := math.Min(lockingTorque, math.Abs(base))
	if deltaOmega > 0 {
		// Right wheel spinning faster: transfer torque to the left.
		return base + transfer*lockRatio, base - transfer*lockRatio
	}
	// Left wheel spinning faster: transfer torque to the right.
	return base - transfer*lockRatio, base + transfer*lockRatio
}

// BrakeTorquesFor returns the per-wheel brake torque split for a brake
// pedal position in [0, 1], weighted front/rear by the configured bias.
func (d *Drivetrain) BrakeTorquesFor(brake float64) BrakeTorques {
	cfg := d.config
	totalBrake := vecmath.Clamp(brake, 0, 1) * cfg.MaxBrakeTorque

	frontBrake := totalBrake * cfg.BrakeBias
	rearBrake := totalBrake * (1 - cfg.BrakeBias)

	return BrakeTorques{
		FL: frontBrake / 2, FR: frontBrake / 2,
		RL: rearBrake / 2, RR: rearBrake / 2,
	}
}

// UpdateEngineRPM advances engine RPM toward the RPM implied by the driven
// wheel speed, smoothed with a roughly 0.2s time constant.
func (d *Drivetrain) UpdateEngineRPM(wheelSpeed, dt float64) {
	cfg := d.config
	targetRPM := math.Abs(wheelSpeed) * cfg.GearRatio * 60 / (2 * math.Pi)
	targetRPM = vecmath.Clamp(targetRPM, cfg.IdleRPM, cfg.MaxRPM)

	alpha := math.Min(1.0, dt*5)
	d.engineRPM += (targetRPM - d.engineRPM) * alpha
}

// EngineRPM returns the current engine speed.
func (d *Drivetrain) EngineRPM() float64 { return d.engineRPM }

// Throttle returns the currently held throttle position.
func (d *Drivetrain) Throttle() float64 { return d.throttle }

// DrivenAxle reports which axle(s) receive drive torque for the
// drivetrain's configured layout. AWD currently reports only the rear
// axle as driven; see AWD.
func (d *Drivetrain) DrivenAxle() DriveLayout {
	if d.config.Layout == AWD {
		return RWD
	}
	return d.config.Layout
}
