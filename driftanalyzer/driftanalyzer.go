// Package driftanalyzer scores drift quality from a vehicle's world-frame
// velocity and heading: body slip angle, duration and distance traveled
// while drifting, angle stability, and a 0-100 composite score. It is an
// external collaborator of the vehicle dynamics core — nothing in
// vehicle or world calls it; a caller feeds it per-frame state alongside
// its own physics step.
package driftanalyzer

import (
	"math"

	"github.com/driftlab/vdyncore/vecmath"
)

// Thresholds governing drift classification and scoring, matching the
// reference tuning.
const (
	AngleMinDeg     = 10.0
	AngleOptimalDeg = 35.0
	AngleMaxDeg     = 60.0
	SpeedMinMS      = 5.0

	historySize = 30 // ~0.5s at 60Hz sampling
)

// Metrics is the externally observable output of one Analyzer.Update call.
type Metrics struct {
	DriftAngleDeg     float64
	DriftAngleRateDeg float64
	DriftDirection    int // -1 left, 0 none, +1 right

	Speed        float64
	ForwardSpeed float64
	LateralSpeed float64
	YawRate      float64

	CounterSteerAngleDeg float64
	Throttle             float64
	IsCounterSteering    bool

	IsDrifting    bool
	DriftDuration float64
	DriftDistance float64

	AngleStability float64
	SpeedScore     float64
	AngleScore     float64
	OverallScore   float64
}

// Analyzer tracks drift angle history and accumulated drift state across
// calls to Update.
type Analyzer struct {
	angleHistory []float64

	driftStartTime   *float64
	driftDistance    float64
	prevDriftAngle   float64

	smoothedAngle float64
	smoothedRate  float64
}

// New constructs an empty Analyzer.
func New() *Analyzer {
	return &Analyzer{angleHistory: make([]float64, 0, historySize)}
}

// DriftAngle returns the body slip angle in degrees: the angle between the
// vehicle's heading and its velocity direction, positive when drifting
// right. Returns 0 below a minimum speed where the angle is undefined.
func DriftAngle(velocity vecmath.Vec3, orientation float64) float64 {
	speed := velocity.Magnitude2D()
	if speed < 0.5 {
		return 0
	}
	velocityAngle := math.Atan2(velocity.Y, velocity.X)
	return vecmath.NormalizeAngle(velocityAngle-orientation) * 180 / math.Pi
}

// DriftAngleFromLocalVelocity derives the same quantity from body-frame
// forward/lateral speed components, for callers that already have them.
func DriftAngleFromLocalVelocity(forwardSpeed, lateralSpeed float64) float64 {
	if math.Abs(forwardSpeed) < 0.5 {
		if math.Abs(lateralSpeed) < 0.5 {
			return 0
		}
		return math.Copysign(90.0, lateralSpeed)
	}
	return math.Atan2(lateralSpeed, forwardSpeed) * 180 / math.Pi
}

// IsCounterSteering reports whether a steering angle opposes the given
// drift direction by more than 5 degrees, the condition for an
// appropriate corrective countersteer.
func IsCounterSteering(steerAngleDeg float64, driftDirection int) bool {
	if driftDirection == 0 {
		return false
	}
	return (driftDirection > 0 && steerAngleDeg < -5.0) ||
		(driftDirection < 0 && steerAngleDeg > 5.0)
}

func (a *Analyzer) pushAngleHistory(absAngle float64) {
	a.angleHistory = append(a.angleHistory, absAngle)
	if len(a.angleHistory) > historySize {
		a.angleHistory = a.angleHistory[1:]
	}
}

// AngleStability returns a 0-1 score from the standard deviation of the
// recent |drift angle| history: 0 std dev scores 1.0, 20 degrees of std
// dev scores 0. Returns 0 with fewer than 5 samples.
func (a *Analyzer) AngleStability() float64 {
	n := len(a.angleHistory)
	if n < 5 {
		return 0
	}
	var mean float64
	for _, v := range a.angleHistory {
		mean += v
	}
	mean /= float64(n)

	var variance float64
	for _, v := range a.angleHistory {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)

	stability := 1.0 - math.Sqrt(variance)/20.0
	if stability < 0 {
		return 0
	}
	return stability
}

// Score computes the 0-100 composite drift score from already-populated
// Metrics fields (angle, speed, stability, counter-steer). Returns 0 when
// not drifting.
func Score(m Metrics) float64 {
	if !m.IsDrifting {
		return 0
	}
	angle := math.Abs(m.DriftAngleDeg)

	var angleScore float64
	switch {
	case angle < AngleMinDeg:
		angleScore = 0
	case angle < AngleOptimalDeg:
		angleScore = (angle - AngleMinDeg) / (AngleOptimalDeg - AngleMinDeg)
	case angle < AngleMaxDeg:
		angleScore = 1.0 - 0.3*(angle-AngleOptimalDeg)/(AngleMaxDeg-AngleOptimalDeg)
	default:
		angleScore = 0.5
	}

	speedKmh := m.Speed * 3.6
	speedScore := math.Min(1.0, speedKmh/80.0)

	counterSteerBonus := 0.0
	if m.IsCounterSteering {
		counterSteerBonus = 0.1
	}

	raw := angleScore*0.4 + speedScore*0.3 + m.AngleStability*0.3 + counterSteerBonus
	return math.Min(100.0, raw*100.0)
}

// Update advances the analyzer with one frame of vehicle state and
// returns the resulting Metrics. dt and simTime are seconds; simTime
// accumulates monotonically across calls (it is not wall-clock time).
func (a *Analyzer) Update(velocity vecmath.Vec3, orientation, steerAngleDeg, throttle, yawRate, speed, dt, simTime float64) Metrics {
	driftAngle := DriftAngle(velocity, orientation)

	alpha := math.Min(1.0, dt*10) // ~0.1s time constant
	a.smoothedAngle += (driftAngle - a.smoothedAngle) * alpha

	if dt > 0 {
		rawRate := (driftAngle - a.prevDriftAngle) / dt
		a.smoothedRate += (rawRate - a.smoothedRate) * alpha
	}
	a.prevDriftAngle = driftAngle

	a.pushAngleHistory(math.Abs(driftAngle))

	var driftDirection int
	switch {
	case math.Abs(driftAngle) > AngleMinDeg && driftAngle > 0:
		driftDirection = 1
	case math.Abs(driftAngle) > AngleMinDeg:
		driftDirection = -1
	}

	isDrifting := math.Abs(driftAngle) > AngleMinDeg && speed > SpeedMinMS

	var driftDuration float64
	if isDrifting {
		if a.driftStartTime == nil {
			start := simTime
			a.driftStartTime = &start
			a.driftDistance = 0
		}
		driftDuration = simTime - *a.driftStartTime
		a.driftDistance += speed * dt
	} else {
		a.driftStartTime = nil
		driftDuration = 0
		a.driftDistance = 0
	}

	forwardSpeed := velocity.Magnitude() * math.Cos(driftAngle*math.Pi/180)
	lateralSpeed := velocity.Magnitude() * math.Sin(driftAngle*math.Pi/180)

	counterSteering := IsCounterSteering(steerAngleDeg, driftDirection)
	counterSteerAngle := 0.0
	if counterSteering {
		counterSteerAngle = steerAngleDeg
	}

	stability := a.AngleStability()

	metrics := Metrics{
		DriftAngleDeg:        driftAngle,
		DriftAngleRateDeg:    a.smoothedRate,
		DriftDirection:       driftDirection,
		Speed:                speed,
		ForwardSpeed:         forwardSpeed,
		LateralSpeed:         lateralSpeed,
		YawRate:              yawRate,
		CounterSteerAngleDeg: counterSteerAngle,
		Throttle:             throttle,
		IsCounterSteering:    counterSteering,
		IsDrifting:           isDrifting,
		DriftDuration:        driftDuration,
		DriftDistance:        a.driftDistance,
		AngleStability:       stability,
	}

	if isDrifting {
		metrics.AngleScore = math.Abs(driftAngle) / AngleOptimalDeg
	}
	metrics.SpeedScore = math.Min(1.0, speed*3.6/80.0)
	metrics.OverallScore = Score(metrics)

	return metrics
}

// Reset clears all accumulated history and drift tracking state.
func (a *Analyzer) Reset() {
	a.angleHistory = a.angleHistory[:0]
	a.driftStartTime = nil
	a.driftDistance = 0
	a.prevDriftAngle = 0
	a.smoothedAngle = 0
	a.smoothedRate = 0
}
