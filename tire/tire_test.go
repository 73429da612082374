package tire

import (
	"math"
	"testing"

	"github.com/driftlab/vdyncore/vecmath"
)

func TestTireUnloadedProducesNoForce(t *testing.T) {
	tr := New(SportConfig())
	state := tr.Update(vecmath.Vec3{X: 10}, 0, 0, 0, 0, 1.0/240.0)
	if state.IsGrounded {
		t.Fatalf("expected ungrounded tire at zero load")
	}
	if state.Fx != 0 || state.Fy != 0 {
		t.Fatalf("expected zero forces at zero load, got %.4f %.4f", state.Fx, state.Fy)
	}
}

func TestTireBuildsLongitudinalForceUnderDriveTorque(t *testing.T) {
	tr := New(SportConfig())
	var state State
	for i := 0; i < 60; i++ {
		state = tr.Update(vecmath.Vec3{X: 15}, 0, 4000, 400, 0, 1.0/240.0)
	}
	if state.Fx <= 0 {
		t.Fatalf("expected positive drive force to build up, got %.4f", state.Fx)
	}
}

func TestTireSetAngularVelocityFromSpeedMatchesNoSlip(t *testing.T) {
	tr := New(SportConfig())
	tr.SetAngularVelocityFromSpeed(20)
	state := tr.Update(vecmath.Vec3{X: 20}, 0, 4000, 0, 0, 1.0/240.0)
	if math.Abs(state.SlipRatio) > 0.01 {
		t.Fatalf("expected near-zero slip ratio at matched speed, got %.4f", state.SlipRatio)
	}
}

func TestTireResetClearsState(t *testing.T) {
	tr := New(DriftConfig())
	tr.Update(vecmath.Vec3{X: 15}, 0, 4000, 300, 0, 1.0/240.0)
	tr.Reset()
	if tr.AngularVelocity() != 0 || tr.RotationAngle() != 0 {
		t.Fatalf("expected reset to clear rotation state")
	}
	if tr.State().Fx != 0 {
		t.Fatalf("expected reset to clear last state")
	}
}

func TestTireBrakeLocksNearStationaryWheel(t *testing.T) {
	tr := New(SportConfig())
	state := tr.Update(vecmath.Vec3{X: 0}, 0, 4000, 0, 50, 1.0/240.0)
	if state.AngularVelocity != 0 {
		t.Fatalf("expected wheel to stay locked under small brake torque, got %.4f", state.AngularVelocity)
	}
}
