// Package world drives one or more vehicles through a fixed-timestep
// physics loop with an accumulator, so simulation behavior is independent
// of the caller's frame rate.
package world

import (
	"time"

	"github.com/driftlab/vdyncore/vecmath"
	"github.com/driftlab/vdyncore/vehicle"
)

// maxStepsPerFrame bounds how many fixed steps StepFixed will take to
// catch up in a single call, guarding against a spiral of death after a
// long stall (a debugger breakpoint, a dropped frame, a suspended process).
const maxStepsPerFrame = 20

// World owns a fixed simulation timestep and the set of vehicles advancing
// through it.
type World struct {
	Dt   float64
	Time float64

	vehicles []*vehicle.Vehicle

	accumulator float64
	monitor     *TickMonitor
}

// New constructs a World with a fixed physics timestep in seconds. A
// typical value is 1/240 for stable tire dynamics.
func New(dt float64) *World {
	return &World{Dt: dt, monitor: NewTickMonitor()}
}

// AddVehicle registers a vehicle to be advanced every Step.
func (w *World) AddVehicle(v *vehicle.Vehicle) {
	w.vehicles = append(w.vehicles, v)
}

// RemoveVehicle unregisters a vehicle. A no-op if v is not present.
func (w *World) RemoveVehicle(v *vehicle.Vehicle) {
	for i, existing := range w.vehicles {
		if existing == v {
			w.vehicles = append(w.vehicles[:i], w.vehicles[i+1:]...)
			return
		}
	}
}

// Vehicles returns the vehicles currently registered with the world.
func (w *World) Vehicles() []*vehicle.Vehicle { return w.vehicles }

// Step advances every registered vehicle by exactly one fixed timestep.
func (w *World) Step() {
	start := time.Now()
	for _, v := range w.vehicles {
		v.PhysicsStep(w.Dt)
	}
	w.Time += w.Dt
	w.monitor.Observe(time.Since(start))
}

// StepFixed advances the simulation by as many fixed steps as needed to
// consume realDt, using an accumulator so steps stay a constant size
// regardless of the caller's frame rate. Returns the number of steps
// actually taken, capped at maxStepsPerFrame to avoid a spiral of death
// after a long stall.
func (w *World) StepFixed(realDt time.Duration) int {
	w.accumulator += realDt.Seconds()
	steps := 0

	for w.accumulator >= w.Dt && steps < maxStepsPerFrame {
		w.Step()
		w.accumulator -= w.Dt
		steps++
	}

	return steps
}

// Reset zeroes simulation time and the accumulator, and resets every
// registered vehicle to rest at the origin with orientation 0.
func (w *World) Reset() {
	w.Time = 0
	w.accumulator = 0
	w.monitor.Reset()
	for _, v := range w.vehicles {
		v.Reset(vecmath.Vec3{}, 0)
	}
}

// InterpolationAlpha returns how far the accumulator is into the next
// fixed step: in [0, 1) after a StepFixed call that consumed its whole
// backlog, and 1 or more when StepFixed stopped at maxStepsPerFrame with
// time left in the accumulator. Renderers can use this to interpolate between
// the previous and current physics state for frame rates higher than the
// physics rate.
func (w *World) InterpolationAlpha() float64 {
	if w.Dt <= 0 {
		return 0
	}
	return w.accumulator / w.Dt
}

// TickMetrics returns the accumulated step-timing statistics.
func (w *World) TickMetrics() TickMetricsSnapshot {
	return w.monitor.Snapshot()
}
