// Package vehicle wires rigid body, tire, suspension, steering, drivetrain
// and handbrake subsystems into a complete drivable car, ready for one
// fixed-timestep physics update per simulation tick.
package vehicle

import (
	"math"

	"github.com/driftlab/vdyncore/drivetrain"
	"github.com/driftlab/vdyncore/handbrake"
	"github.com/driftlab/vdyncore/rigidbody"
	"github.com/driftlab/vdyncore/steering"
	"github.com/driftlab/vdyncore/suspension"
	"github.com/driftlab/vdyncore/tire"
	"github.com/driftlab/vdyncore/vecmath"
)

// WheelPosition indexes the four wheels of a Vehicle.
type WheelPosition int

const (
	FrontLeft WheelPosition = iota
	FrontRight
	RearLeft
	RearRight
	wheelCount
)

// String returns the two-letter abbreviation used in telemetry.
func (w WheelPosition) String() string {
	switch w {
	case FrontLeft:
		return "FL"
	case FrontRight:
		return "FR"
	case RearLeft:
		return "RL"
	case RearRight:
		return "RR"
	default:
		return "??"
	}
}

// Config is the complete tunable description of a vehicle.
type Config struct {
	Mass    float64
	Inertia float64

	Wheelbase  float64
	TrackFront float64
	TrackRear  float64
	CGHeight   float64
	CGToFront  float64

	TireConfig tire.Config

	MaxSteerAngle   float64
	AckermannFactor float64

	DriveLayout  drivetrain.DriveLayout
	Differential drivetrain.Differential
	MaxTorque    float64
	GearRatio    float64

	MaxBrakeTorque float64
	BrakeBias      float64
	HandbrakeTorque float64

	LSDPreload    float64
	LSDPowerRatio float64
	LSDCoastRatio float64

	DragCoefficient float64
	FrontalArea     float64
	AirDensity      float64
}

// DefaultConfig returns the sport-car baseline configuration.
func DefaultConfig() Config {
	tireConfig, _ := tire.PresetConfig("sport")
	return Config{
		Mass: 1400.0, Inertia: 2500.0,
		Wheelbase: 2.7, TrackFront: 1.5, TrackRear: 1.5,
		CGHeight: 0.45, CGToFront: 1.4,
		TireConfig: tireConfig,
		MaxSteerAngle: 0.6, AckermannFactor: 0.8,
		DriveLayout: drivetrain.RWD, Differential: drivetrain.Open,
		MaxTorque: 400.0, GearRatio: 3.5,
		MaxBrakeTorque: 3000.0, BrakeBias: 0.65, HandbrakeTorque: 2000.0,
		LSDPreload: 100.0, LSDPowerRatio: 0.3, LSDCoastRatio: 0.1,
		DragCoefficient: 0.3, FrontalArea: 2.2, AirDensity: 1.225,
	}
}

// Inputs captures the driver controls applied at the start of a physics
// step.
type Inputs struct {
	Throttle  float64
	Brake     float64
	Steer     float64
	Handbrake float64
}

// State is the externally observable snapshot of a vehicle after a
// physics step, suitable for rendering or telemetry.
type State struct {
	Position        vecmath.Vec3
	Orientation     float64
	Velocity        vecmath.Vec3
	AngularVelocity float64

	Speed         float64
	ForwardSpeed  float64
	LateralSpeed  float64

	LongitudinalAccel float64
	LateralAccel      float64

	WheelLoads suspension.WheelLoads
	TireStates [wheelCount]tire.State

	Inputs Inputs
}

// Vehicle is a complete drivable car: one rigid body, four tires, and the
// suspension/steering/drivetrain/handbrake subsystems that drive them.
type Vehicle struct {
	config Config

	Body       *rigidbody.RigidBody
	suspension *suspension.Suspension
	steering   *steering.Steering
	drivetrain *drivetrain.Drivetrain
	handbrake  *handbrake.Handbrake
	tires      [wheelCount]*tire.Tire

	inputs Inputs

	wheelLoads suspension.WheelLoads

	prevVelocity      vecmath.Vec3
	longitudinalAccel float64
	lateralAccel      float64
}

// New constructs a Vehicle from Config, wiring every subsystem.
func New(config Config) *Vehicle {
	v := &Vehicle{
		config: config,
		Body:   rigidbody.New(config.Mass, config.Inertia),
	}

	v.suspension = suspension.New(suspension.Config{
		Wheelbase: config.Wheelbase, TrackFront: config.TrackFront, TrackRear: config.TrackRear,
		CGHeight: config.CGHeight, CGToFront: config.CGToFront,
		TotalMass: config.Mass, Gravity: 9.81,
		FrontRollStiffness: 0.5, RearRollStiffness: 0.5,
	})

	v.steering = steering.New(steering.Config{
		MaxSteerAngle:   config.MaxSteerAngle,
		AckermannFactor: config.AckermannFactor,
		Wheelbase:       config.Wheelbase,
		TrackWidth:      config.TrackFront,
		SteeringRate:    3.0,
	})

	v.drivetrain = drivetrain.New(drivetrain.Config{
		Layout: config.DriveLayout, Differential: config.Differential,
		MaxTorque: config.MaxTorque, MaxRPM: 7000.0, IdleRPM: 800.0,
		GearRatio: config.GearRatio, Efficiency: 0.9,
		LSDPreload: config.LSDPreload, LSDPowerRatio: config.LSDPowerRatio, LSDCoastRatio: config.LSDCoastRatio,
		WheelInertia: 1.0,
		MaxBrakeTorque: config.MaxBrakeTorque, BrakeBias: config.BrakeBias,
	})

	v.handbrake = handbrake.New(handbrake.Config{
		MaxTorque: config.HandbrakeTorque, EngagementRate: 10.0, ReleaseRate: 15.0,
		CanLockWheels: true, LockThreshold: 0.5,
	})

	for i := range v.tires {
		v.tires[i] = tire.New(config.TireConfig)
	}

	v.wheelLoads = v.suspension.StaticLoads()

	return v
}

// SetInputs records driver controls for the next physics step, each
// clamped to its valid range.
func (v *Vehicle) SetInputs(in Inputs) {
	v.inputs = Inputs{
		Throttle:  vecmath.Clamp(in.Throttle, 0, 1),
		Brake:     vecmath.Clamp(in.Brake, 0, 1),
		Steer:     vecmath.Clamp(in.Steer, -1, 1),
		Handbrake: vecmath.Clamp(in.Handbrake, 0, 1),
	}
}

// WheelPositionLocal returns a wheel's contact point in body coordinates.
func (v *Vehicle) WheelPositionLocal(wheel WheelPosition) vecmath.Vec3 {
	cfg := v.config
	switch wheel {
	case FrontLeft:
		return vecmath.Vec3{X: cfg.CGToFront, Y: cfg.TrackFront / 2}
	case FrontRight:
		return vecmath.Vec3{X: cfg.CGToFront, Y: -cfg.TrackFront / 2}
	case RearLeft:
		return vecmath.Vec3{X: -(cfg.Wheelbase - cfg.CGToFront), Y: cfg.TrackRear / 2}
	default: // RearRight
		return vecmath.Vec3{X: -(cfg.Wheelbase - cfg.CGToFront), Y: -cfg.TrackRear / 2}
	}
}

// WheelPositionWorld returns a wheel's contact point in world coordinates.
func (v *Vehicle) WheelPositionWorld(wheel WheelPosition) vecmath.Vec3 {
	return v.Body.LocalToWorld(v.WheelPositionLocal(wheel))
}

func wheelLoad(loads suspension.WheelLoads, wheel WheelPosition) float64 {
	switch wheel {
	case FrontLeft:
		return loads.FL
	case FrontRight:
		return loads.FR
	case RearLeft:
		return loads.RL
	default:
		return loads.RR
	}
}

// PhysicsStep advances the vehicle one fixed timestep:
//  1. advance steering and handbrake toward their targets
//  2. estimate longitudinal/lateral acceleration for weight transfer
//  3. recompute wheel loads
//  4. compute steering angles, drive torques, brake torques
//  5. update every tire and accumulate its world-frame force/torque
//  6. apply aerodynamic drag
//  7. integrate the rigid body
//  8. update engine RPM from the driven axle's wheel speed
func (v *Vehicle) PhysicsStep(dt float64) {
	v.steering.SetInput(v.inputs.Steer)
	v.steering.Update(dt)
	v.handbrake.SetInput(v.inputs.Handbrake)
	v.handbrake.Update(dt)

	v.updateAccelerations(dt)

	v.wheelLoads = v.suspension.CalculateLoadsSimple(v.longitudinalAccel, v.lateralAccel)

	steerLeft, steerRight := v.steering.WheelAngles()

	rearL := v.tires[RearLeft].AngularVelocity()
	rearR := v.tires[RearRight].AngularVelocity()

	var driveTorqueL, driveTorqueR float64
	drivenAxle := v.drivetrain.DrivenAxle()
	if drivenAxle == drivetrain.RWD {
		driveTorqueL, driveTorqueR = v.drivetrain.DriveTorques(v.inputs.Throttle, rearL, rearR)
	} else {
		frontL := v.tires[FrontLeft].AngularVelocity()
		frontR := v.tires[FrontRight].AngularVelocity()
		driveTorqueL, driveTorqueR = v.drivetrain.DriveTorques(v.inputs.Throttle, frontL, frontR)
	}

	brakes := v.drivetrain.BrakeTorquesFor(v.inputs.Brake)
	hbL, hbR := v.handbrake.BrakeTorques(rearL, rearR)

	var totalForce vecmath.Vec3
	var totalTorque float64
	var tireStates [wheelCount]tire.State

	for wheel := WheelPosition(0); wheel < wheelCount; wheel++ {
		t := v.tires[wheel]
		localPos := v.WheelPositionLocal(wheel)
		worldPos := v.Body.LocalToWorld(localPos)
		contactVelocity := v.Body.VelocityAtPoint(worldPos)

		var wheelHeading float64
		switch wheel {
		case FrontLeft:
			wheelHeading = v.Body.Orientation + steerLeft
		case FrontRight:
			wheelHeading = v.Body.Orientation + steerRight
		default:
			wheelHeading = v.Body.Orientation
		}

		normalLoad := wheelLoad(v.wheelLoads, wheel)

		var driveTorque, brakeTorque float64
		switch wheel {
		case RearLeft:
			if drivenAxle == drivetrain.RWD {
				driveTorque = driveTorqueL
			}
			brakeTorque = brakes.RL + hbL
		case RearRight:
			if drivenAxle == drivetrain.RWD {
				driveTorque = driveTorqueR
			}
			brakeTorque = brakes.RR + hbR
		case FrontLeft:
			if drivenAxle == drivetrain.FWD {
				driveTorque = driveTorqueL
			}
			brakeTorque = brakes.FL
		case FrontRight:
			if drivenAxle == drivetrain.FWD {
				driveTorque = driveTorqueR
			}
			brakeTorque = brakes.FR
		}

		tireStates[wheel] = t.Update(contactVelocity, wheelHeading, normalLoad, driveTorque, brakeTorque, dt)

		tireForceWorld := t.ForcesWorld(wheelHeading)
		totalForce = totalForce.Add(tireForceWorld)

		r := worldPos.Sub(v.Body.Position)
		totalTorque += r.Cross(tireForceWorld)
	}

	v.Body.ApplyForce(totalForce, nil)
	v.Body.ApplyTorque(totalTorque)

	v.applyDrag()

	v.Body.Integrate(dt)

	avgDrivenSpeed := (v.tires[RearLeft].AngularVelocity() + v.tires[RearRight].AngularVelocity()) / 2
	if drivenAxle == drivetrain.FWD {
		avgDrivenSpeed = (v.tires[FrontLeft].AngularVelocity() + v.tires[FrontRight].AngularVelocity()) / 2
	}
	v.drivetrain.UpdateEngineRPM(avgDrivenSpeed, dt)
}

func (v *Vehicle) applyDrag() {
	speed := v.Body.Velocity.Magnitude()
	if speed <= 0.1 {
		return
	}
	cfg := v.config
	dragForce := 0.5 * cfg.DragCoefficient * cfg.FrontalArea * cfg.AirDensity * speed * speed
	dragDirection := v.Body.Velocity.Normalized().Scale(-1)
	v.Body.ApplyForce(dragDirection.Scale(dragForce), nil)
}

func (v *Vehicle) updateAccelerations(dt float64) {
	if dt <= 0 {
		return
	}
	dv := v.Body.Velocity.Sub(v.prevVelocity)
	worldAccel := dv.Scale(1 / dt)
	localAccel := v.Body.WorldToLocalDirection(worldAccel)

	alpha := math.Min(1.0, dt*10)
	v.longitudinalAccel += (localAccel.X - v.longitudinalAccel) * alpha
	v.lateralAccel += (localAccel.Y - v.lateralAccel) * alpha

	v.prevVelocity = v.Body.Velocity
}

// State returns the vehicle's current observable state.
func (v *Vehicle) State() State {
	localVel := v.Body.LocalVelocity()

	var tireStates [wheelCount]tire.State
	for wheel := WheelPosition(0); wheel < wheelCount; wheel++ {
		tireStates[wheel] = v.tires[wheel].State()
	}

	return State{
		Position:        v.Body.Position,
		Orientation:     v.Body.Orientation,
		Velocity:        v.Body.Velocity,
		AngularVelocity: v.Body.AngularVelocity,
		Speed:           v.Body.Speed(),
		ForwardSpeed:    localVel.X,
		LateralSpeed:    localVel.Y,
		LongitudinalAccel: v.longitudinalAccel,
		LateralAccel:      v.lateralAccel,
		WheelLoads:        v.wheelLoads,
		TireStates:        tireStates,
		Inputs:            v.inputs,
	}
}

// DriftAngle returns the vehicle's current body slip angle in degrees:
// the angle between the forward direction and the direction of travel.
// Returns 0 below a minimum forward speed, where the angle is undefined.
func (v *Vehicle) DriftAngle() float64 {
	localVel := v.Body.LocalVelocity()
	if math.Abs(localVel.X) < 0.5 {
		return 0
	}
	return math.Atan2(localVel.Y, localVel.X) * 180 / math.Pi
}

// Reset returns the vehicle to rest at the given position and
// orientation, clearing tire, handbrake, input and acceleration state and
// restoring static wheel loads. The steering position and engine RPM are
// left as they were.
func (v *Vehicle) Reset(position vecmath.Vec3, orientation float64) {
	v.Body.Reset()
	v.Body.Position = position
	v.Body.Orientation = orientation

	for _, t := range v.tires {
		t.Reset()
	}
	v.handbrake.Reset()

	v.inputs = Inputs{}
	v.prevVelocity = vecmath.Vec3{}
	v.longitudinalAccel = 0
	v.lateralAccel = 0
	v.wheelLoads = v.suspension.StaticLoads()
}

// SetVelocity sets the vehicle's velocity directly, matching wheel spin to
// the new speed so the vehicle starts with zero slip. direction defaults
// to the vehicle's current orientation when nil.
func (v *Vehicle) SetVelocity(speed float64, direction *float64) {
	heading := v.Body.Orientation
	if direction != nil {
		heading = *direction
	}
	v.Body.Velocity = vecmath.Vec3{X: speed * math.Cos(heading), Y: speed * math.Sin(heading)}

	for _, t := range v.tires {
		t.SetAngularVelocityFromSpeed(speed)
	}
}
