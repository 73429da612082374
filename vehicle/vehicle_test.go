package vehicle

import (
	"math"
	"strings"
	"testing"
)

func TestNewVehicleStartsAtRest(t *testing.T) {
	v := New(DefaultConfig())
	state := v.State()
	if state.Speed != 0 {
		t.Fatalf("expected new vehicle at rest, got speed %.4f", state.Speed)
	}
}

func TestPhysicsStepAcceleratesUnderThrottle(t *testing.T) {
	v := New(DefaultConfig())
	v.SetInputs(Inputs{Throttle: 1.0})
	for i := 0; i < 240; i++ {
		v.PhysicsStep(1.0 / 240.0)
	}
	if v.State().Speed <= 0 {
		t.Fatalf("expected vehicle to accelerate under full throttle, got speed %.4f", v.State().Speed)
	}
}

func TestPhysicsStepStaticLoadsSumToWeight(t *testing.T) {
	v := New(DefaultConfig())
	v.PhysicsStep(1.0 / 240.0)
	state := v.State()
	expected := v.config.Mass * 9.81
	if math.Abs(state.WheelLoads.Total()-expected) > expected*0.05 {
		t.Fatalf("expected wheel loads to sum near %.2f, got %.2f", expected, state.WheelLoads.Total())
	}
}

func TestSetVelocityMatchesWheelSpeedsToAvoidSlip(t *testing.T) {
	v := New(DefaultConfig())
	v.SetVelocity(20, nil)
	v.PhysicsStep(1.0 / 240.0)
	if math.Abs(v.tires[RearLeft].State().SlipRatio) > 0.05 {
		t.Fatalf("expected near-zero initial slip ratio, got %.4f", v.tires[RearLeft].State().SlipRatio)
	}
}

func TestDriftAngleZeroBelowMinSpeed(t *testing.T) {
	v := New(DefaultConfig())
	if angle := v.DriftAngle(); angle != 0 {
		t.Fatalf("expected zero drift angle at rest, got %.4f", angle)
	}
}

func TestResetReturnsVehicleToRest(t *testing.T) {
	v := New(DefaultConfig())
	v.SetInputs(Inputs{Throttle: 1.0})
	for i := 0; i < 60; i++ {
		v.PhysicsStep(1.0 / 240.0)
	}
	v.Reset(v.Body.Position, 0)
	if v.State().Speed != 0 {
		t.Fatalf("expected reset to zero speed, got %.4f", v.State().Speed)
	}
}

func TestNewFromPresetKnownNames(t *testing.T) {
	names := []string{"sport_coupe", "drift_car", "muscle", "hot_hatch", "formula", "touring"}
	for _, name := range names {
		v, err := NewFromPreset(name)
		if err != nil {
			t.Fatalf("unexpected error for preset %q: %v", name, err)
		}
		if v == nil {
			t.Fatalf("expected non-nil vehicle for preset %q", name)
		}
	}
}

func TestNewFromPresetUnknownNameReturnsConfigError(t *testing.T) {
	_, err := NewFromPreset("unobtanium")
	if err == nil {
		t.Fatalf("expected error for unknown preset")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Fatalf("expected ConfigError, got %T", err)
	}
}

func TestNewValidatedAcceptsDefaultConfig(t *testing.T) {
	v, err := NewValidated(DefaultConfig())
	if err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
	if v == nil {
		t.Fatalf("expected a constructed vehicle")
	}
}

func TestNewValidatedRejectsNonPositiveMass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mass = 0
	if _, err := NewValidated(cfg); err == nil {
		t.Fatalf("expected error for non-positive mass")
	}
}

func TestNewValidatedRejectsCGOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CGToFront = cfg.Wheelbase
	if _, err := NewValidated(cfg); err == nil {
		t.Fatalf("expected error for cg_to_front at wheelbase boundary")
	}
}

func TestNewValidatedRejectsNonPositiveTireRadius(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TireConfig.Radius = 0
	if _, err := NewValidated(cfg); err == nil {
		t.Fatalf("expected error for non-positive tire radius")
	}
}

func TestValidateAccumulatesMultipleProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mass = -1
	cfg.Inertia = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected accumulated validation error")
	}
	cfgErr, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if !strings.Contains(cfgErr.Reason, "mass") || !strings.Contains(cfgErr.Reason, "inertia") {
		t.Fatalf("expected both mass and inertia problems reported, got %q", cfgErr.Reason)
	}
}
