package tire

import (
	"math"

	"github.com/driftlab/vdyncore/vecmath"
)

// minLoadNewtons is the vertical load below which a tire is considered
// unloaded and contributes no force.
const minLoadNewtons = 10.0

// wheelSpinEpsilon is the angular velocity below which the wheel is treated
// as stationary when reconciling brake torque against drive torque.
const wheelSpinEpsilon = 0.1

// Config bundles the physical and tuning parameters of a single tire.
type Config struct {
	Radius          float64
	Width           float64
	Inertia         float64
	Params          PacejkaParams
	RelaxationX     float64
	RelaxationY     float64
	UseRelaxation   bool
	FrictionMu      float64
	CombinedMethod  CombinedMethod
}

// SportConfig returns the tire configuration used by the sport preset.
func SportConfig() Config {
	return Config{
		Radius: 0.32, Width: 0.245, Inertia: 1.2,
		Params: SportParams(),
		RelaxationX: 0.3, RelaxationY: 0.4,
		UseRelaxation: true, FrictionMu: 1.0,
		CombinedMethod: Empirical,
	}
}

// DriftConfig returns the tire configuration used by the drift preset.
func DriftConfig() Config {
	return Config{
		Radius: 0.32, Width: 0.225, Inertia: 1.0,
		Params: DriftParams(),
		RelaxationX: 0.35, RelaxationY: 0.45,
		UseRelaxation: true, FrictionMu: 0.9,
		CombinedMethod: Empirical,
	}
}

// State is the externally observable output of a tire update.
type State struct {
	SlipRatio       float64
	SlipAngle       float64
	SlipAngleDeg    float64
	Fx, Fy, Fz      float64
	FxPure, FyPure  float64
	Saturation      float64
	AngularVelocity float64
	RotationAngle   float64
	ContactVelocity vecmath.Vec3
	IsGrounded      bool
}

// Tire tracks the rotational and force state of a single wheel, wiring the
// Pacejka formula, combined-slip reconciler and force relaxation filter
// together into one update step.
type Tire struct {
	config     Config
	formula    Formula
	reconciler Reconciler
	relax      *Relaxation

	angularVelocity float64
	rotationAngle   float64
	normalLoad      float64
	camber          float64

	lastState State
}

// New constructs a Tire from a Config.
func New(config Config) *Tire {
	formula := NewFormula(config.Params)
	mu := config.FrictionMu
	if mu == 0 {
		mu = 1.0
	}
	t := &Tire{
		config:     config,
		formula:    formula,
		reconciler: NewReconciler(formula, mu),
		normalLoad: 4000.0,
	}
	if config.UseRelaxation {
		t.relax = NewRelaxation(config.RelaxationX, config.RelaxationY)
	}
	return t
}

// Update advances the tire one timestep: it derives slip from the contact
// velocity and wheel spin, reconciles pure-slip forces under the friction
// ellipse, optionally relaxes them, then integrates wheel rotation against
// drive and brake torque.
//
// The ordering mirrors a real tire: forces are a function of the slip state
// at the START of the step, and wheel spin for the NEXT step responds to
// those forces' reaction torque.
func (t *Tire) Update(contactVelocity vecmath.Vec3, wheelHeading, normalLoad, driveTorque, brakeTorque, dt float64) State {
	t.normalLoad = math.Max(normalLoad, 0)
	if t.normalLoad < minLoadNewtons {
		t.lastState = State{ContactVelocity: contactVelocity, IsGrounded: false}
		t.updateWheelRotation(0, driveTorque, brakeTorque, dt)
		return t.lastState
	}

	slip := Calculate(contactVelocity, wheelHeading, t.angularVelocity, t.config.Radius)

	forces := t.reconciler.Calculate(slip.SlipRatio, slip.SlipAngleDeg, t.normalLoad, t.camber, t.config.CombinedMethod)

	fx, fy := forces.Fx, forces.Fy
	if t.relax != nil {
		filtered := t.relax.Update(forces.Fx, forces.Fy, contactVelocity.Magnitude2D(), dt)
		fx, fy = filtered.Fx, filtered.Fy
	}

	t.updateWheelRotation(fx, driveTorque, brakeTorque, dt)

	t.lastState = State{
		SlipRatio:       slip.SlipRatio,
		SlipAngle:       slip.SlipAngle,
		SlipAngleDeg:    slip.SlipAngleDeg,
		Fx:              fx,
		Fy:              fy,
		Fz:              t.normalLoad,
		FxPure:          forces.FxPure,
		FyPure:          forces.FyPure,
		Saturation:      forces.Saturation,
		AngularVelocity: t.angularVelocity,
		RotationAngle:   t.rotationAngle,
		ContactVelocity: contactVelocity,
		IsGrounded:      true,
	}
	return t.lastState
}

// updateWheelRotation integrates the wheel's angular velocity against the
// net of drive torque, the Fx reaction torque, and brake torque (which
// always opposes the current direction of spin, or locks the wheel when it
// would otherwise overpower a near-stationary wheel).
func (t *Tire) updateWheelRotation(fx, driveTorque, brakeTorque, dt float64) {
	reactionTorque := fx * t.config.Radius
	netTorque := driveTorque - reactionTorque

	if math.Abs(t.angularVelocity) > wheelSpinEpsilon {
		brakeDir := -math.Copysign(1, t.angularVelocity)
		netTorque += brakeTorque * brakeDir
	} else if math.Abs(netTorque) < brakeTorque {
		netTorque = 0
		t.angularVelocity = 0
	}

	inertia := t.config.Inertia
	if inertia == 0 {
		inertia = 1.0
	}
	angularAccel := netTorque / inertia
	t.angularVelocity += angularAccel * dt

	if brakeTorque > 0 && math.Abs(t.angularVelocity) < wheelSpinEpsilon {
		t.angularVelocity = math.Max(0, t.angularVelocity)
	}

	t.rotationAngle += t.angularVelocity * dt
}

// ForcesWorld rotates the tire's local (Fx, Fy) into the world frame given
// the wheel's current heading.
func (t *Tire) ForcesWorld(wheelHeading float64) vecmath.Vec3 {
	local := vecmath.Vec3{X: t.lastState.Fx, Y: t.lastState.Fy}
	return local.RotateZ(wheelHeading)
}

// ForcesLocal returns the tire's most recent local-frame force pair.
func (t *Tire) ForcesLocal() (fx, fy float64) { return t.lastState.Fx, t.lastState.Fy }

// SetAngularVelocityFromSpeed seeds the wheel's spin rate so it matches a
// given ground speed with no initial slip.
func (t *Tire) SetAngularVelocityFromSpeed(speed float64) {
	if t.config.Radius == 0 {
		return
	}
	t.angularVelocity = speed / t.config.Radius
}

// SetCamber sets the current camber angle in degrees.
func (t *Tire) SetCamber(camberDeg float64) { t.camber = camberDeg }

// AngularVelocity returns the wheel's current spin rate in rad/s.
func (t *Tire) AngularVelocity() float64 { return t.angularVelocity }

// RotationAngle returns the wheel's accumulated rotation angle in radians.
func (t *Tire) RotationAngle() float64 { return t.rotationAngle }

// State returns the most recently computed tire state.
func (t *Tire) State() State { return t.lastState }

// Reset zeroes all rotational and force state.
func (t *Tire) Reset() {
	t.angularVelocity = 0
	t.rotationAngle = 0
	t.lastState = State{}
	if t.relax != nil {
		t.relax.Reset()
	}
}
