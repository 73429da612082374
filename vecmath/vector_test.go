package vecmath

import (
	"math"
	"testing"
)

func TestVec3RotateZPreservesMagnitude(t *testing.T) {
	//1.- Rotate a unit vector and confirm the magnitude is unchanged.
	v := Vec3{X: 1, Y: 0, Z: 0}
	rotated := v.RotateZ(math.Pi / 2)
	if math.Abs(rotated.Magnitude()-1) > 1e-9 {
		t.Fatalf("unexpected magnitude %.9f", rotated.Magnitude())
	}
	if math.Abs(rotated.X) > 1e-9 || math.Abs(rotated.Y-1) > 1e-9 {
		t.Fatalf("unexpected rotated vector %+v", rotated)
	}
}

func TestVec3CrossMatchesScalarFormula(t *testing.T) {
	a := Vec3{X: 2, Y: 0, Z: 0}
	b := Vec3{X: 0, Y: 3, Z: 0}
	if got := a.Cross(b); math.Abs(got-6) > 1e-9 {
		t.Fatalf("expected cross 6, got %.9f", got)
	}
}

func TestVec3NormalizedHandlesZero(t *testing.T) {
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Fatalf("expected zero vector, got %+v", got)
	}
}

func TestNormalizeAngleWrapsToRange(t *testing.T) {
	cases := []float64{0, math.Pi, -math.Pi, 3 * math.Pi, -3 * math.Pi, 2*math.Pi + 0.1}
	for _, angle := range cases {
		wrapped := NormalizeAngle(angle)
		if wrapped < -math.Pi || wrapped >= math.Pi {
			t.Fatalf("angle %.4f wrapped to %.4f out of range", angle, wrapped)
		}
	}
}

func TestClampLerpSign(t *testing.T) {
	if Clamp(5, 0, 1) != 1 {
		t.Fatalf("expected clamp to cap at hi")
	}
	if Clamp(-5, 0, 1) != 0 {
		t.Fatalf("expected clamp to floor at lo")
	}
	if Lerp(0, 10, 0.5) != 5 {
		t.Fatalf("expected midpoint lerp")
	}
	if Sign(-2) != -1 || Sign(2) != 1 || Sign(0) != 0 {
		t.Fatalf("unexpected sign results")
	}
}
