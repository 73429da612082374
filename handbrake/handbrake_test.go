package handbrake

import "testing"

func TestEngagementRampsTowardTarget(t *testing.T) {
	h := New(DefaultConfig())
	h.SetInput(1.0)
	h.Update(0.05)
	if h.Engagement() <= 0 || h.Engagement() >= 1.0 {
		t.Fatalf("expected partial engagement, got %.4f", h.Engagement())
	}
}

func TestEngagementReachesFullEventually(t *testing.T) {
	h := New(DefaultConfig())
	h.SetInput(1.0)
	for i := 0; i < 100; i++ {
		h.Update(1.0 / 60.0)
	}
	if !h.IsFullyEngaged() {
		t.Fatalf("expected full engagement after sustained input, got %.4f", h.Engagement())
	}
}

func TestReleaseRampsDown(t *testing.T) {
	h := New(DefaultConfig())
	h.SetInput(1.0)
	for i := 0; i < 100; i++ {
		h.Update(1.0 / 60.0)
	}
	h.SetInput(0.0)
	for i := 0; i < 100; i++ {
		h.Update(1.0 / 60.0)
	}
	if h.IsEngaged() {
		t.Fatalf("expected handbrake released, got engagement %.4f", h.Engagement())
	}
}

func TestBrakeTorquesLocksSlowWheelsWhenFullyEngaged(t *testing.T) {
	h := New(DefaultConfig())
	h.SetInput(1.0)
	for i := 0; i < 100; i++ {
		h.Update(1.0 / 60.0)
	}
	h.BrakeTorques(0.1, 5.0)
	if !h.LeftLocked() {
		t.Fatalf("expected slow left wheel to be locked")
	}
	if h.RightLocked() {
		t.Fatalf("expected fast right wheel to not be locked")
	}
	if h.BothLocked() {
		t.Fatalf("expected BothLocked false when only one wheel is locked")
	}
}

func TestSignedBrakeTorquesOpposesRotation(t *testing.T) {
	h := New(DefaultConfig())
	h.SetInput(1.0)
	for i := 0; i < 100; i++ {
		h.Update(1.0 / 60.0)
	}
	left, right := h.SignedBrakeTorques(5.0, -5.0)
	if left >= 0 {
		t.Fatalf("expected negative torque opposing positive spin, got %.4f", left)
	}
	if right <= 0 {
		t.Fatalf("expected positive torque opposing negative spin, got %.4f", right)
	}
}

func TestResetClearsState(t *testing.T) {
	h := New(DefaultConfig())
	h.SetInput(1.0)
	for i := 0; i < 100; i++ {
		h.Update(1.0 / 60.0)
	}
	h.Reset()
	if h.Engagement() != 0 || h.IsEngaged() {
		t.Fatalf("expected reset to fully release handbrake")
	}
}
