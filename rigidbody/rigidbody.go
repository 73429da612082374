// Package rigidbody implements the planar rigid-body dynamics shared by
// every simulated vehicle: force/torque accumulation, local/world frame
// transforms, and semi-implicit Euler integration.
package rigidbody

import (
	"math"

	"github.com/driftlab/vdyncore/vecmath"
)

// RigidBody is a 2D rigid body: position and velocity in the XY plane,
// orientation and angular velocity about Z (yaw).
type RigidBody struct {
	Mass    float64
	Inertia float64

	Position        vecmath.Vec3
	Orientation     float64
	Velocity        vecmath.Vec3
	AngularVelocity float64

	force  vecmath.Vec3
	torque float64
}

// New constructs a RigidBody with the given mass and yaw moment of
// inertia, at rest at the origin.
func New(mass, inertia float64) *RigidBody {
	return &RigidBody{Mass: mass, Inertia: inertia}
}

// ApplyForce applies a world-frame force. If worldPoint is non-nil, the
// force also contributes a torque from the lever arm between worldPoint
// and the body's center of mass.
func (b *RigidBody) ApplyForce(force vecmath.Vec3, worldPoint *vecmath.Vec3) {
	b.force = b.force.Add(force)
	if worldPoint != nil {
		r := worldPoint.Sub(b.Position)
		b.torque += r.Cross(force)
	}
}

// ApplyForceLocal applies a body-frame force, optionally at a body-frame
// point of application.
func (b *RigidBody) ApplyForceLocal(force vecmath.Vec3, localPoint *vecmath.Vec3) {
	worldForce := force.RotateZ(b.Orientation)
	if localPoint == nil {
		b.ApplyForce(worldForce, nil)
		return
	}
	worldPoint := b.LocalToWorld(*localPoint)
	b.ApplyForce(worldForce, &worldPoint)
}

// ApplyTorque applies a direct yaw torque (Nm), positive is
// counter-clockwise.
func (b *RigidBody) ApplyTorque(torque float64) { b.torque += torque }

// LocalToWorld transforms a body-frame point into world coordinates.
func (b *RigidBody) LocalToWorld(localPoint vecmath.Vec3) vecmath.Vec3 {
	return b.Position.Add(localPoint.RotateZ(b.Orientation))
}

// WorldToLocal transforms a world-frame point into body coordinates.
func (b *RigidBody) WorldToLocal(worldPoint vecmath.Vec3) vecmath.Vec3 {
	return worldPoint.Sub(b.Position).RotateZ(-b.Orientation)
}

// LocalToWorldDirection rotates a body-frame direction into world
// coordinates without translating it.
func (b *RigidBody) LocalToWorldDirection(localDir vecmath.Vec3) vecmath.Vec3 {
	return localDir.RotateZ(b.Orientation)
}

// WorldToLocalDirection rotates a world-frame direction into body
// coordinates.
func (b *RigidBody) WorldToLocalDirection(worldDir vecmath.Vec3) vecmath.Vec3 {
	return worldDir.RotateZ(-b.Orientation)
}

// VelocityAtPoint returns the world-frame velocity of a world point fixed
// to the body, including the body's rotation: v = v_cm + omega x r.
func (b *RigidBody) VelocityAtPoint(worldPoint vecmath.Vec3) vecmath.Vec3 {
	r := worldPoint.Sub(b.Position)
	angularContrib := vecmath.Vec3{X: -b.AngularVelocity * r.Y, Y: b.AngularVelocity * r.X}
	return b.Velocity.Add(angularContrib)
}

// VelocityAtLocalPoint returns the world-frame velocity of a body-frame
// point.
func (b *RigidBody) VelocityAtLocalPoint(localPoint vecmath.Vec3) vecmath.Vec3 {
	return b.VelocityAtPoint(b.LocalToWorld(localPoint))
}

// LocalVelocity returns the center-of-mass velocity expressed in body
// coordinates.
func (b *RigidBody) LocalVelocity() vecmath.Vec3 {
	return b.WorldToLocalDirection(b.Velocity)
}

// ForwardVector returns the unit vector pointing along the body's local
// +X axis, in world coordinates.
func (b *RigidBody) ForwardVector() vecmath.Vec3 {
	return vecmath.Vec3{X: math.Cos(b.Orientation), Y: math.Sin(b.Orientation)}
}

// RightVector returns the unit vector pointing along the body's local +Y
// axis, in world coordinates.
func (b *RigidBody) RightVector() vecmath.Vec3 {
	return vecmath.Vec3{X: -math.Sin(b.Orientation), Y: math.Cos(b.Orientation)}
}

// Speed returns the magnitude of the world-frame velocity.
func (b *RigidBody) Speed() float64 { return b.Velocity.Magnitude() }

// ForwardSpeed returns the body-frame X velocity component (negative when
// reversing).
func (b *RigidBody) ForwardSpeed() float64 { return b.LocalVelocity().X }

// LateralSpeed returns the body-frame Y velocity component (positive when
// moving right).
func (b *RigidBody) LateralSpeed() float64 { return b.LocalVelocity().Y }

// AccumulatedForce returns the force accumulated this step.
func (b *RigidBody) AccumulatedForce() vecmath.Vec3 { return b.force }

// AccumulatedTorque returns the torque accumulated this step.
func (b *RigidBody) AccumulatedTorque() float64 { return b.torque }

// ClearForces resets the force and torque accumulators to zero.
func (b *RigidBody) ClearForces() {
	b.force = vecmath.Vec3{}
	b.torque = 0
}

// Acceleration returns the linear acceleration implied by the
// accumulated force.
func (b *RigidBody) Acceleration() vecmath.Vec3 {
	if b.Mass == 0 {
		return vecmath.Vec3{}
	}
	return b.force.Scale(1 / b.Mass)
}

// AngularAcceleration returns the yaw acceleration implied by the
// accumulated torque.
func (b *RigidBody) AngularAcceleration() float64 {
	if b.Inertia == 0 {
		return 0
	}
	return b.torque / b.Inertia
}

// Integrate advances the body's velocity and position one timestep using
// semi-implicit (symplectic) Euler: velocity is updated from acceleration
// first, then position is updated using the NEW velocity. This is more
// stable than explicit Euler for the oscillatory forces tire models
// produce.
func (b *RigidBody) Integrate(dt float64) {
	acceleration := b.Acceleration()
	b.Velocity = b.Velocity.Add(acceleration.Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	angularAccel := b.AngularAcceleration()
	b.AngularVelocity += angularAccel * dt
	b.Orientation += b.AngularVelocity * dt
	b.Orientation = vecmath.NormalizeAngle(b.Orientation)

	b.ClearForces()
}

// SetState overwrites the body's full kinematic state.
func (b *RigidBody) SetState(position vecmath.Vec3, orientation float64, velocity vecmath.Vec3, angularVelocity float64) {
	b.Position = position
	b.Orientation = vecmath.NormalizeAngle(orientation)
	b.Velocity = velocity
	b.AngularVelocity = angularVelocity
}

// Reset returns the body to rest at the origin and clears accumulators.
func (b *RigidBody) Reset() {
	b.Position = vecmath.Vec3{}
	b.Orientation = 0
	b.Velocity = vecmath.Vec3{}
	b.AngularVelocity = 0
	b.ClearForces()
}
