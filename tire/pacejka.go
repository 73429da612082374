// Package tire implements the Pacejka Magic Formula tire model: pure slip
// force evaluation, combined-slip reconciliation under a friction ellipse,
// first-order force relaxation, and the per-wheel orchestration that ties
// them together with wheel spin integration.
package tire

import "math"

// PacejkaParams holds the Pacejka-94 Magic Formula coefficients, organized
// by force direction: b0-b13 longitudinal, a0-a17 lateral.
type PacejkaParams struct {
	// Longitudinal coefficients (Fx)
	B0, B1, B2, B3, B4, B5, B6, B7, B8, B9, B10, B11, B12, B13 float64

	// Lateral coefficients (Fy)
	A0, A1, A2, A3, A4, A5, A6, A7, A8, A9, A10, A11, A12, A13, A14, A15, A16, A17 float64

	// NominalLoad is the reference vertical load in Newtons.
	NominalLoad float64
}

// SportParams returns the coefficient set for a high-grip sport tire.
func SportParams() PacejkaParams {
	return PacejkaParams{
		B0: 1.65, B2: 1688.0, B4: 229.0, B8: -10.0,
		A0: 1.3, A1: -22.1, A2: 1011.0, A3: 1078.0, A4: 1.82,
		A5: 0.208, A7: -0.354, A8: 0.707, A9: 0.028,
		A11: 14.8, A12: 0.022,
		NominalLoad: 4000.0,
	}
}

// DriftParams returns the coefficient set for a drift tire: lower grip,
// more progressive breakaway than the sport tire.
func DriftParams() PacejkaParams {
	return PacejkaParams{
		B0: 1.5, B2: 1400.0, B4: 200.0, B8: -8.0,
		A0: 1.2, A1: -18.0, A2: 850.0, A3: 900.0, A4: 2.0,
		A5: 0.15, A7: -0.2, A8: 0.5, A9: 0.02,
		A11: 10.0, A12: 0.015,
		NominalLoad: 4000.0,
	}
}

// RainParams returns the coefficient set for wet/rain conditions:
// significantly reduced grip and earlier breakaway.
func RainParams() PacejkaParams {
	return PacejkaParams{
		B0: 1.4, B2: 1000.0, B4: 150.0, B8: -5.0,
		A0: 1.1, A1: -15.0, A2: 600.0, A3: 700.0, A4: 2.5,
		A5: 0.1, A7: -0.1, A8: 0.3, A9: 0.01,
		A11: 5.0, A12: 0.01,
		NominalLoad: 4000.0,
	}
}

// StreetParams returns the coefficient set for a general street tire,
// interpolated between sport and rain grip levels.
func StreetParams() PacejkaParams {
	return PacejkaParams{
		B0: 1.55, B2: 1450.0, B4: 210.0, B8: -8.0,
		A0: 1.25, A1: -19.0, A2: 880.0, A3: 950.0, A4: 1.95,
		A5: 0.18, A7: -0.28, A8: 0.6, A9: 0.024,
		A11: 12.0, A12: 0.018,
		NominalLoad: 4000.0,
	}
}

// SemiSlickParams returns the coefficient set for a semi-slick tire: grip
// between street and sport, with a slightly wider operating slip range.
func SemiSlickParams() PacejkaParams {
	return PacejkaParams{
		B0: 1.6, B2: 1580.0, B4: 220.0, B8: -9.0,
		A0: 1.28, A1: -20.5, A2: 960.0, A3: 1020.0, A4: 1.88,
		A5: 0.19, A7: -0.32, A8: 0.66, A9: 0.026,
		A11: 13.5, A12: 0.02,
		NominalLoad: 4000.0,
	}
}

// Formula evaluates the Magic Formula for a configured coefficient set.
type Formula struct {
	Params PacejkaParams
}

// NewFormula constructs a Formula, defaulting to sport tire coefficients
// when params is the zero value's NominalLoad (unset).
func NewFormula(params PacejkaParams) Formula {
	if params.NominalLoad == 0 {
		params = SportParams()
	}
	return Formula{Params: params}
}

// magicFormula evaluates D*sin(C*atan(Bx1 - E*(Bx1 - atan(Bx1)))) + Sv
// where Bx1 = B*(x+Sh).
func magicFormula(x, b, c, d, e, sh, sv float64) float64 {
	x1 := x + sh
	bx1 := b * x1
	return d*math.Sin(c*math.Atan(bx1-e*(bx1-math.Atan(bx1)))) + sv
}

// LongitudinalForce returns Fx (N) given a slip ratio and vertical load.
// Positive slip ratio is acceleration, negative is braking.
func (f Formula) LongitudinalForce(slipRatio, fz float64) float64 {
	if fz <= 0 {
		return 0
	}
	p := f.Params
	fzKN := fz / 1000.0

	c := p.B0
	d := fz * (p.B1*fzKN + p.B2) / 1000.0

	bcd := (p.B3*fzKN*fzKN + p.B4*fzKN) * math.Exp(-p.B5*fzKN)
	b := 0.0
	if math.Abs(c*d) > 1e-6 {
		b = bcd / (c * d)
	}

	e := p.B6*fzKN*fzKN + p.B7*fzKN + p.B8
	sh := p.B9*fzKN + p.B10
	sv := p.B11*fzKN + p.B12

	return magicFormula(slipRatio, b, c, d, e, sh, sv)
}

// LateralForce returns Fy (N) given a slip angle in degrees, a vertical
// load, and an optional camber angle in degrees.
func (f Formula) LateralForce(slipAngleDeg, fz, camber float64) float64 {
	if fz <= 0 {
		return 0
	}
	p := f.Params
	fzKN := fz / 1000.0

	d := fz * (p.A1*fzKN + p.A2) * (1 - p.A15*camber*camber) / 1000.0
	c := p.A0

	bcd := p.A3 * math.Sin(2*math.Atan(fzKN/p.A4)) * (1 - p.A5*math.Abs(camber))
	b := 0.0
	if math.Abs(c*d) > 1e-6 {
		b = bcd / (c * d)
	}

	e := (p.A6*fzKN + p.A7) * (1 - (p.A16*camber+p.A17)*math.Copysign(1, slipAngleDeg))
	sh := p.A8*fzKN + p.A9 + p.A10*camber
	sv := (p.A11*fzKN + p.A12) + (p.A13*fzKN+p.A14)*camber*fzKN

	return magicFormula(slipAngleDeg, b, c, d, e, sh, sv)
}

// peakSampleCount is the resolution used by the peak-force scans, matching
// the 200-sample numerical scan the reference implementation performs with
// a vectorized array; here it is a tight scalar loop.
const peakSampleCount = 200

// PeakLongitudinal scans the positive slip-ratio branch and returns the
// peak absolute longitudinal force and the slip ratio at which it occurs.
func (f Formula) PeakLongitudinal(fz float64) (peak, atSlip float64) {
	const lo, hi = 0.0, 0.5
	for i := 0; i < peakSampleCount; i++ {
		sr := lo + (hi-lo)*float64(i)/float64(peakSampleCount-1)
		force := math.Abs(f.LongitudinalForce(sr, fz))
		if force > peak {
			peak = force
			atSlip = sr
		}
	}
	return peak, atSlip
}

// PeakLateral scans the positive slip-angle branch (degrees) and returns
// the peak absolute lateral force and the slip angle at which it occurs.
func (f Formula) PeakLateral(fz, camber float64) (peak, atAngleDeg float64) {
	const lo, hi = 0.0, 20.0
	for i := 0; i < peakSampleCount; i++ {
		angle := lo + (hi-lo)*float64(i)/float64(peakSampleCount-1)
		force := math.Abs(f.LateralForce(angle, fz, camber))
		if force > peak {
			peak = force
			atAngleDeg = angle
		}
	}
	return peak, atAngleDeg
}
