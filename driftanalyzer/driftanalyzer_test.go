package driftanalyzer

import (
	"math"
	"testing"

	"github.com/driftlab/vdyncore/vecmath"
)

func TestDriftAngleZeroBelowMinSpeed(t *testing.T) {
	angle := DriftAngle(vecmath.Vec3{X: 0.1, Y: 0.1}, 0)
	if angle != 0 {
		t.Fatalf("expected 0 drift angle below min speed, got %v", angle)
	}
}

func TestDriftAngleStraightLineIsZero(t *testing.T) {
	angle := DriftAngle(vecmath.Vec3{X: 20, Y: 0}, 0)
	if math.Abs(angle) > 1e-9 {
		t.Fatalf("expected ~0 drift angle driving straight, got %v", angle)
	}
}

func TestDriftAngleSidewaysIsNinety(t *testing.T) {
	angle := DriftAngle(vecmath.Vec3{X: 0, Y: 10}, 0)
	if math.Abs(angle-90) > 1e-6 {
		t.Fatalf("expected 90 degree drift angle, got %v", angle)
	}
}

func TestIsCounterSteeringOpposesDrift(t *testing.T) {
	if !IsCounterSteering(-10, 1) {
		t.Fatalf("expected left steer to counter a right drift")
	}
	if IsCounterSteering(10, 1) {
		t.Fatalf("expected right steer to not counter a right drift")
	}
	if IsCounterSteering(0, 0) {
		t.Fatalf("expected no counter-steer classification with no drift direction")
	}
}

func TestUpdateNotDriftingBelowAngleThreshold(t *testing.T) {
	a := New()
	m := a.Update(vecmath.Vec3{X: 20, Y: 0}, 0, 0, 1.0, 0, 20, 1.0/60, 0.0)
	if m.IsDrifting {
		t.Fatalf("expected no drift classification when driving straight")
	}
	if m.OverallScore != 0 {
		t.Fatalf("expected zero score when not drifting, got %v", m.OverallScore)
	}
}

func TestUpdateDetectsSustainedDrift(t *testing.T) {
	a := New()
	velocity := vecmath.Vec3{X: 15, Y: 10}
	var last Metrics
	simTime := 0.0
	const dt = 1.0 / 60
	for i := 0; i < 60; i++ {
		simTime += dt
		last = a.Update(velocity, 0, -20, 0.5, 0.1, velocity.Magnitude(), dt, simTime)
	}
	if !last.IsDrifting {
		t.Fatalf("expected sustained lateral velocity to register as drifting, angle=%v", last.DriftAngleDeg)
	}
	if last.DriftDuration <= 0 {
		t.Fatalf("expected accumulated drift duration, got %v", last.DriftDuration)
	}
	if last.DriftDistance <= 0 {
		t.Fatalf("expected accumulated drift distance, got %v", last.DriftDistance)
	}
	if last.OverallScore <= 0 {
		t.Fatalf("expected a positive drift score, got %v", last.OverallScore)
	}
}

func TestResetClearsHistoryAndDriftTracking(t *testing.T) {
	a := New()
	velocity := vecmath.Vec3{X: 15, Y: 10}
	simTime := 0.0
	for i := 0; i < 30; i++ {
		simTime += 1.0 / 60
		a.Update(velocity, 0, -20, 0.5, 0.1, velocity.Magnitude(), 1.0/60, simTime)
	}
	a.Reset()
	if len(a.angleHistory) != 0 {
		t.Fatalf("expected empty angle history after reset, got %d entries", len(a.angleHistory))
	}
	if a.driftStartTime != nil {
		t.Fatalf("expected drift start time cleared after reset")
	}
	m := a.Update(velocity, 0, -20, 0.5, 0.1, velocity.Magnitude(), 1.0/60, 0)
	if m.DriftDuration != 0 {
		t.Fatalf("expected drift duration to restart from zero after reset, got %v", m.DriftDuration)
	}
}

func TestScoreZeroWhenNotDrifting(t *testing.T) {
	if s := Score(Metrics{IsDrifting: false, DriftAngleDeg: 40}); s != 0 {
		t.Fatalf("expected 0 score when IsDrifting is false, got %v", s)
	}
}

func TestAngleStabilityRequiresMinimumSamples(t *testing.T) {
	a := New()
	if s := a.AngleStability(); s != 0 {
		t.Fatalf("expected 0 stability with no history, got %v", s)
	}
}
