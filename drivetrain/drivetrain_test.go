package drivetrain

import (
	"math"
	"testing"
)

func TestEngineTorqueZeroThrottleIsZero(t *testing.T) {
	d := New(DefaultConfig())
	if torque := d.EngineTorqueAt(0); torque != 0 {
		t.Fatalf("expected zero torque at zero throttle, got %.4f", torque)
	}
}

func TestEngineTorquePeaksInMidRange(t *testing.T) {
	d := New(DefaultConfig())
	d.engineRPM = d.config.MaxRPM * 0.5
	mid := d.EngineTorqueAt(1.0)
	d.engineRPM = d.config.MaxRPM * 0.95
	high := d.EngineTorqueAt(1.0)
	if mid <= high {
		t.Fatalf("expected mid-range torque %.2f to exceed near-redline torque %.2f", mid, high)
	}
}

func TestDriveTorquesOpenSplitsEvenly(t *testing.T) {
	d := New(DefaultConfig())
	left, right := d.DriveTorques(1.0, 10, 20)
	if math.Abs(left-right) > 1e-9 {
		t.Fatalf("expected equal open-differential split, got %.4f %.4f", left, right)
	}
}

func TestDriveTorquesLSDTransfersFromFasterWheel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Differential = LSD
	d := New(cfg)
	left, right := d.DriveTorques(1.0, 10, 30)
	if left <= right {
		t.Fatalf("expected slower left wheel to receive more torque, got left=%.4f right=%.4f", left, right)
	}
}

func TestDriveTorquesLSDNoTransferBelowThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Differential = LSD
	d := New(cfg)
	left, right := d.DriveTorques(1.0, 10, 10.05)
	if math.Abs(left-right) > 1e-9 {
		t.Fatalf("expected no transfer below speed threshold, got %.4f %.4f", left, right)
	}
}

func TestBrakeTorquesForRespectsBias(t *testing.T) {
	d := New(DefaultConfig())
	bt := d.BrakeTorquesFor(1.0)
	frontTotal := bt.FL + bt.FR
	rearTotal := bt.RL + bt.RR
	if frontTotal <= rearTotal {
		t.Fatalf("expected front-biased brakes, got front=%.2f rear=%.2f", frontTotal, rearTotal)
	}
}

func TestUpdateEngineRPMClampsToIdle(t *testing.T) {
	d := New(DefaultConfig())
	for i := 0; i < 100; i++ {
		d.UpdateEngineRPM(0, 1.0/60.0)
	}
	if d.EngineRPM() < d.config.IdleRPM-1 {
		t.Fatalf("expected RPM to settle at idle, got %.2f", d.EngineRPM())
	}
}

func TestDrivenAxleAWDDegradesToRWD(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = AWD
	d := New(cfg)
	if d.DrivenAxle() != RWD {
		t.Fatalf("expected AWD to degrade to RWD semantics")
	}
}
