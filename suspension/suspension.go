// Package suspension distributes vertical load across a vehicle's four
// wheels: a static split from center-of-gravity position, plus dynamic
// longitudinal and lateral transfer under acceleration and cornering.
package suspension

import "math"

// WheelLoads holds the vertical load (Newtons) carried by each wheel.
type WheelLoads struct {
	FL, FR, RL, RR float64
}

// FrontTotal returns the combined front axle load.
func (w WheelLoads) FrontTotal() float64 { return w.FL + w.FR }

// RearTotal returns the combined rear axle load.
func (w WheelLoads) RearTotal() float64 { return w.RL + w.RR }

// LeftTotal returns the combined left-side load.
func (w WheelLoads) LeftTotal() float64 { return w.FL + w.RL }

// RightTotal returns the combined right-side load.
func (w WheelLoads) RightTotal() float64 { return w.FR + w.RR }

// Total returns the load across all four wheels.
func (w WheelLoads) Total() float64 { return w.FL + w.FR + w.RL + w.RR }

// clamped returns w with every wheel floored at zero (a wheel cannot pull
// down on the road surface).
func (w WheelLoads) clamped() WheelLoads {
	return WheelLoads{
		FL: math.Max(0, w.FL),
		FR: math.Max(0, w.FR),
		RL: math.Max(0, w.RL),
		RR: math.Max(0, w.RR),
	}
}

// Config describes the geometry and mass properties that drive weight
// distribution.
type Config struct {
	Wheelbase  float64
	TrackFront float64
	TrackRear  float64

	CGHeight   float64
	CGToFront  float64

	TotalMass float64
	Gravity   float64

	FrontRollStiffness float64
	RearRollStiffness  float64
}

// DefaultConfig returns a representative mid-size sedan configuration.
func DefaultConfig() Config {
	return Config{
		Wheelbase: 2.7, TrackFront: 1.5, TrackRear: 1.5,
		CGHeight: 0.5, CGToFront: 1.35,
		TotalMass: 1400.0, Gravity: 9.81,
		FrontRollStiffness: 0.5, RearRollStiffness: 0.5,
	}
}

// CGToRear returns the distance from the center of gravity to the rear
// axle.
func (c Config) CGToRear() float64 { return c.Wheelbase - c.CGToFront }

// FrontWeightFraction returns the static fraction of total weight carried
// by the front axle.
func (c Config) FrontWeightFraction() float64 {
	if c.Wheelbase == 0 {
		return 0.5
	}
	return c.CGToRear() / c.Wheelbase
}

// RearWeightFraction returns the static fraction of total weight carried
// by the rear axle.
func (c Config) RearWeightFraction() float64 {
	if c.Wheelbase == 0 {
		return 0.5
	}
	return c.CGToFront / c.Wheelbase
}

// Suspension computes static and dynamic wheel loads for a fixed Config.
type Suspension struct {
	config      Config
	staticLoads WheelLoads
}

// New constructs a Suspension and caches its static load split.
func New(config Config) *Suspension {
	s := &Suspension{config: config}
	s.staticLoads = s.calculateStaticLoads()
	return s
}

func (s *Suspension) calculateStaticLoads() WheelLoads {
	totalWeight := s.config.TotalMass * s.config.Gravity
	frontWeight := totalWeight * s.config.FrontWeightFraction()
	rearWeight := totalWeight * s.config.RearWeightFraction()
	return WheelLoads{
		FL: frontWeight / 2, FR: frontWeight / 2,
		RL: rearWeight / 2, RR: rearWeight / 2,
	}
}

// StaticLoads returns the wheel loads with no acceleration applied.
func (s *Suspension) StaticLoads() WheelLoads { return s.staticLoads }

// CalculateLoads returns wheel loads under longitudinal and lateral
// acceleration (m/s^2), weighting the lateral transfer split between axles
// by their configured roll stiffness.
//
// Sign convention: positive longitudinalAccel is forward (transfers weight
// rearward); positive lateralAccel is a right turn (transfers weight left).
func (s *Suspension) CalculateLoads(longitudinalAccel, lateralAccel float64) WheelLoads {
	cfg := s.config
	m := cfg.TotalMass
	h := cfg.CGHeight

	loads := s.staticLoads

	deltaLong := m * longitudinalAccel * h / cfg.Wheelbase
	loads.FL -= deltaLong / 2
	loads.FR -= deltaLong / 2
	loads.RL += deltaLong / 2
	loads.RR += deltaLong / 2

	rollSplit := cfg.FrontRollStiffness + cfg.RearRollStiffness + 0.001

	if cfg.TrackFront > 0 {
		deltaLatFront := m * lateralAccel * h * cfg.FrontWeightFraction() / cfg.TrackFront
		deltaLatFront *= cfg.FrontRollStiffness / rollSplit * 2
		loads.FL += deltaLatFront
		loads.FR -= deltaLatFront
	}

	if cfg.TrackRear > 0 {
		deltaLatRear := m * lateralAccel * h * cfg.RearWeightFraction() / cfg.TrackRear
		deltaLatRear *= cfg.RearRollStiffness / rollSplit * 2
		loads.RL += deltaLatRear
		loads.RR -= deltaLatRear
	}

	return loads.clamped()
}

// CalculateLoadsSimple is a cheaper weight-transfer model that ignores
// per-axle roll stiffness weighting, splitting lateral transfer in
// proportion to static axle fraction alone.
func (s *Suspension) CalculateLoadsSimple(longitudinalAccel, lateralAccel float64) WheelLoads {
	cfg := s.config
	m := cfg.TotalMass
	h := cfg.CGHeight
	totalWeight := m * cfg.Gravity

	frontFrac := cfg.FrontWeightFraction()
	rearFrac := cfg.RearWeightFraction()

	longTransfer := m * longitudinalAccel * h / cfg.Wheelbase

	var latTransferFront, latTransferRear float64
	if cfg.TrackFront > 0 {
		latTransferFront = m * lateralAccel * h * frontFrac / cfg.TrackFront
	}
	if cfg.TrackRear > 0 {
		latTransferRear = m * lateralAccel * h * rearFrac / cfg.TrackRear
	}

	loads := WheelLoads{
		FL: totalWeight*frontFrac/2 - longTransfer/2 + latTransferFront,
		FR: totalWeight*frontFrac/2 - longTransfer/2 - latTransferFront,
		RL: totalWeight*rearFrac/2 + longTransfer/2 + latTransferRear,
		RR: totalWeight*rearFrac/2 + longTransfer/2 - latTransferRear,
	}

	return loads.clamped()
}
