// Command vdyncore-sim runs a preset vehicle through a fixed number of
// physics ticks, logging structured progress and optionally recording
// telemetry, so the config/logging/telemetry ambient stack has one
// concrete place where it is actually assembled end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/driftlab/vdyncore/internal/config"
	"github.com/driftlab/vdyncore/internal/logging"
	"github.com/driftlab/vdyncore/internal/telemetry"
	"github.com/driftlab/vdyncore/vehicle"
	"github.com/driftlab/vdyncore/world"
)

func main() {
	preset := flag.String("preset", "sport_coupe", "vehicle preset to simulate")
	ticks := flag.Int("ticks", 600, "number of fixed physics steps to run")
	throttle := flag.Float64("throttle", 1.0, "constant throttle input in [0,1]")
	steer := flag.Float64("steer", 0.0, "constant steer input in [-1,1]")
	record := flag.Bool("record", false, "record telemetry for this run")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize structured logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	v, err := vehicle.NewFromPreset(*preset)
	if err != nil {
		logger.Error("failed to construct vehicle from preset", logging.String("preset", *preset), logging.Error(err))
		os.Exit(1)
	}

	w := world.New(1.0 / 240.0)
	w.AddVehicle(v)
	v.SetInputs(vehicle.Inputs{Throttle: *throttle, Steer: *steer})

	var recorder *telemetry.Recorder
	if *record {
		frameInterval := time.Duration(cfg.Telemetry.FrameIntervalMS) * time.Millisecond
		rec, _, err := telemetry.NewRecorder(cfg.Telemetry.OutputDir, *preset, frameInterval, nil)
		if err != nil {
			logger.Error("failed to open telemetry recorder", logging.Error(err))
			os.Exit(1)
		}
		rec.SetHeaderMetadata(*preset, nil)
		recorder = rec
		defer func() {
			if err := recorder.Close(); err != nil {
				logger.Error("failed to close telemetry recorder", logging.Error(err))
			}
		}()
	}

	logger.Info("simulation starting",
		logging.String("preset", *preset),
		logging.Int("ticks", *ticks),
	)

	for tick := uint64(1); tick <= uint64(*ticks); tick++ {
		w.Step()
		if recorder != nil {
			payload, err := json.Marshal(v.State())
			if err != nil {
				logger.Warn("failed to marshal vehicle state", logging.Error(err))
				continue
			}
			if err := recorder.AppendFrame(tick, int64(w.Time*1000), payload); err != nil {
				logger.Warn("failed to append telemetry frame", logging.Error(err))
			}
		}
	}

	state := v.State()
	logger.Info("simulation finished",
		logging.String("preset", *preset),
		logging.Int("ticks", *ticks),
	)
	fmt.Printf("final speed: %.2f m/s, drift angle: %.2f deg\n", state.Speed, v.DriftAngle())
}
