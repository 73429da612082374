package tire

import "math"

const (
	relaxationMinVelocity = 0.5
	relaxationMaxTau      = 0.5
)

// RelaxationState snapshots the filtered and target forces along with the
// time constants that produced them.
type RelaxationState struct {
	Fx       float64
	Fy       float64
	TargetFx float64
	TargetFy float64
	TauX     float64
	TauY     float64
}

// Relaxation applies a first-order lag to longitudinal and lateral tire
// forces, modeling the finite time a tire's contact patch takes to build up
// force after a change in slip. Relaxation lengths are in meters.
type Relaxation struct {
	LengthX float64
	LengthY float64

	fx, fy float64
}

// NewRelaxation constructs a Relaxation with the given relaxation lengths.
// Zero lengths default to 0.4 (longitudinal) and 0.5 (lateral).
func NewRelaxation(lengthX, lengthY float64) *Relaxation {
	if lengthX == 0 {
		lengthX = 0.4
	}
	if lengthY == 0 {
		lengthY = 0.5
	}
	return &Relaxation{LengthX: lengthX, LengthY: lengthY}
}

// Update moves the filtered forces toward targetFx/targetFy using an
// exponential lag whose time constant shrinks as speed increases, capped at
// relaxationMaxTau so the filter never lags more than half a second.
func (r *Relaxation) Update(targetFx, targetFy, velocity, dt float64) RelaxationState {
	v := math.Max(math.Abs(velocity), relaxationMinVelocity)
	tauX := math.Min(r.LengthX/v, relaxationMaxTau)
	tauY := math.Min(r.LengthY/v, relaxationMaxTau)

	if tauX > 0 {
		alpha := 1 - math.Exp(-dt/tauX)
		r.fx += (targetFx - r.fx) * alpha
	} else {
		r.fx = targetFx
	}

	if tauY > 0 {
		alpha := 1 - math.Exp(-dt/tauY)
		r.fy += (targetFy - r.fy) * alpha
	} else {
		r.fy = targetFy
	}

	return RelaxationState{Fx: r.fx, Fy: r.fy, TargetFx: targetFx, TargetFy: targetFy, TauX: tauX, TauY: tauY}
}

// UpdateLinear is a cheaper variant of Update using a linear ramp toward the
// target instead of an exponential one. It trades the continuous-time
// grounding of Update for a single divide-and-clamp per axis.
func (r *Relaxation) UpdateLinear(targetFx, targetFy, velocity, dt float64) RelaxationState {
	v := math.Max(math.Abs(velocity), relaxationMinVelocity)
	tauX := math.Min(r.LengthX/v, relaxationMaxTau)
	tauY := math.Min(r.LengthY/v, relaxationMaxTau)

	alphaX := 1.0
	if tauX > 0 {
		alphaX = math.Min(dt/tauX, 1.0)
	}
	alphaY := 1.0
	if tauY > 0 {
		alphaY = math.Min(dt/tauY, 1.0)
	}

	r.fx += (targetFx - r.fx) * alphaX
	r.fy += (targetFy - r.fy) * alphaY

	return RelaxationState{Fx: r.fx, Fy: r.fy, TargetFx: targetFx, TargetFy: targetFy, TauX: tauX, TauY: tauY}
}

// CurrentForces returns the most recently filtered force pair.
func (r *Relaxation) CurrentForces() (fx, fy float64) { return r.fx, r.fy }

// SetForces overwrites the filter state directly, bypassing the lag. Used to
// seed a tire's relaxation state, e.g. on a hard reset.
func (r *Relaxation) SetForces(fx, fy float64) { r.fx, r.fy = fx, fy }

// Reset zeroes the filter state.
func (r *Relaxation) Reset() { r.fx, r.fy = 0, 0 }
