package tire

import (
	"math"
	"testing"
)

func TestRelaxationConvergesToTarget(t *testing.T) {
	r := NewRelaxation(0.3, 0.4)
	var state RelaxationState
	for i := 0; i < 500; i++ {
		state = r.Update(2000, 1500, 20, 1.0/240.0)
	}
	if math.Abs(state.Fx-2000) > 1 {
		t.Fatalf("expected Fx to converge near 2000, got %.4f", state.Fx)
	}
	if math.Abs(state.Fy-1500) > 1 {
		t.Fatalf("expected Fy to converge near 1500, got %.4f", state.Fy)
	}
}

func TestRelaxationTauCappedAtLowSpeed(t *testing.T) {
	r := NewRelaxation(0.3, 0.4)
	state := r.Update(1000, 1000, 0, 1.0/240.0)
	if state.TauX > relaxationMaxTau+1e-9 || state.TauY > relaxationMaxTau+1e-9 {
		t.Fatalf("expected tau capped at %.2f, got tauX=%.4f tauY=%.4f", relaxationMaxTau, state.TauX, state.TauY)
	}
}

func TestRelaxationLinearReachesTargetWithinOneTau(t *testing.T) {
	r := NewRelaxation(0.3, 0.4)
	state := r.UpdateLinear(1000, 1000, 20, 10.0)
	if state.Fx != 1000 || state.Fy != 1000 {
		t.Fatalf("expected linear update clamped to target after large dt, got Fx=%.4f Fy=%.4f", state.Fx, state.Fy)
	}
}

func TestRelaxationResetAndSetForces(t *testing.T) {
	r := NewRelaxation(0.3, 0.4)
	r.SetForces(500, -500)
	fx, fy := r.CurrentForces()
	if fx != 500 || fy != -500 {
		t.Fatalf("expected set forces to stick, got %.2f %.2f", fx, fy)
	}
	r.Reset()
	fx, fy = r.CurrentForces()
	if fx != 0 || fy != 0 {
		t.Fatalf("expected reset to zero forces, got %.2f %.2f", fx, fy)
	}
}
