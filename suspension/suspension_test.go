package suspension

import (
	"math"
	"testing"
)

func TestStaticLoadsMatchFrontWeightFraction(t *testing.T) {
	cfg := DefaultConfig()
	s := New(cfg)
	loads := s.StaticLoads()

	totalWeight := cfg.TotalMass * cfg.Gravity
	expectedFront := totalWeight * cfg.FrontWeightFraction()
	if math.Abs(loads.FrontTotal()-expectedFront) > 1e-6 {
		t.Fatalf("expected front total %.4f, got %.4f", expectedFront, loads.FrontTotal())
	}
	if math.Abs(loads.Total()-totalWeight) > 1e-6 {
		t.Fatalf("expected total load %.4f, got %.4f", totalWeight, loads.Total())
	}
}

func TestCalculateLoadsTransfersRearwardUnderAcceleration(t *testing.T) {
	s := New(DefaultConfig())
	static := s.StaticLoads()
	dynamic := s.CalculateLoads(5.0, 0)

	if dynamic.RearTotal() <= static.RearTotal() {
		t.Fatalf("expected rear load to increase under forward acceleration")
	}
	if dynamic.FrontTotal() >= static.FrontTotal() {
		t.Fatalf("expected front load to decrease under forward acceleration")
	}
}

func TestCalculateLoadsTransfersLeftUnderRightTurn(t *testing.T) {
	s := New(DefaultConfig())
	dynamic := s.CalculateLoads(0, 5.0)

	if dynamic.LeftTotal() <= dynamic.RightTotal() {
		t.Fatalf("expected left side to carry more load during a right turn, got left=%.2f right=%.2f",
			dynamic.LeftTotal(), dynamic.RightTotal())
	}
}

func TestCalculateLoadsClampsToNonNegative(t *testing.T) {
	s := New(DefaultConfig())
	dynamic := s.CalculateLoads(0, 500.0)

	if dynamic.FR < 0 || dynamic.RR < 0 {
		t.Fatalf("expected wheel lift to clamp at zero, got FR=%.4f RR=%.4f", dynamic.FR, dynamic.RR)
	}
}

func TestCalculateLoadsSimpleConservesTotalUnderPureLongitudinal(t *testing.T) {
	s := New(DefaultConfig())
	dynamic := s.CalculateLoadsSimple(3.0, 0)
	static := s.StaticLoads()
	if math.Abs(dynamic.Total()-static.Total()) > 1e-6 {
		t.Fatalf("expected total load conserved, got %.4f vs static %.4f", dynamic.Total(), static.Total())
	}
}
