package world

import (
	"testing"
	"time"

	"github.com/driftlab/vdyncore/vehicle"
)

func TestStepFixedConsumesTimeInFixedIncrements(t *testing.T) {
	w := New(1.0 / 240.0)
	v := vehicle.New(vehicle.DefaultConfig())
	w.AddVehicle(v)

	steps := w.StepFixed(100 * time.Millisecond)
	if steps == 0 {
		t.Fatalf("expected at least one fixed step for 100ms of real time")
	}
	expectedTime := float64(steps) * w.Dt
	if w.Time < expectedTime-1e-9 || w.Time > expectedTime+1e-9 {
		t.Fatalf("expected world time %.6f, got %.6f", expectedTime, w.Time)
	}
}

func TestStepFixedCapsStepsPerFrame(t *testing.T) {
	w := New(1.0 / 240.0)
	steps := w.StepFixed(10 * time.Second)
	if steps != maxStepsPerFrame {
		t.Fatalf("expected steps capped at %d, got %d", maxStepsPerFrame, steps)
	}
}

func TestInterpolationAlphaInRange(t *testing.T) {
	w := New(1.0 / 240.0)
	w.StepFixed(10*time.Millisecond + 1*time.Millisecond)
	alpha := w.InterpolationAlpha()
	if alpha < 0 || alpha >= 1 {
		t.Fatalf("expected interpolation alpha in [0, 1), got %.6f", alpha)
	}
}

func TestAddRemoveVehicle(t *testing.T) {
	w := New(1.0 / 240.0)
	v := vehicle.New(vehicle.DefaultConfig())
	w.AddVehicle(v)
	if len(w.Vehicles()) != 1 {
		t.Fatalf("expected one vehicle registered")
	}
	w.RemoveVehicle(v)
	if len(w.Vehicles()) != 0 {
		t.Fatalf("expected vehicle removed")
	}
}

func TestResetZeroesTimeAndVehicles(t *testing.T) {
	w := New(1.0 / 240.0)
	v := vehicle.New(vehicle.DefaultConfig())
	w.AddVehicle(v)
	v.SetInputs(vehicle.Inputs{Throttle: 1.0})
	w.StepFixed(500 * time.Millisecond)

	w.Reset()
	if w.Time != 0 {
		t.Fatalf("expected world time reset to zero, got %.6f", w.Time)
	}
	if v.State().Speed != 0 {
		t.Fatalf("expected vehicle speed reset to zero, got %.4f", v.State().Speed)
	}
}
