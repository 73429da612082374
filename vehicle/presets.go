package vehicle

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/driftlab/vdyncore/drivetrain"
	"github.com/driftlab/vdyncore/internal/logging"
	"github.com/driftlab/vdyncore/tire"
)

//go:embed presets.json
var presetsJSON []byte

type presetRecord struct {
	Name            string  `json:"name"`
	Mass            float64 `json:"mass"`
	Inertia         float64 `json:"inertia"`
	Wheelbase       float64 `json:"wheelbase"`
	TrackFront      float64 `json:"track_front"`
	TrackRear       float64 `json:"track_rear"`
	CGHeight        float64 `json:"cg_height"`
	CGToFront       float64 `json:"cg_to_front"`
	TirePreset      string  `json:"tire_preset"`
	MaxSteerAngle   float64 `json:"max_steer_angle"`
	AckermannFactor float64 `json:"ackermann_factor"`
	DriveLayout     string  `json:"drive_layout"`
	Differential    string  `json:"differential"`
	MaxTorque       float64 `json:"max_torque"`
	GearRatio       float64 `json:"gear_ratio"`
	MaxBrakeTorque  float64 `json:"max_brake_torque"`
	BrakeBias       float64 `json:"brake_bias"`
	HandbrakeTorque float64 `json:"handbrake_torque"`
	LSDPreload      float64 `json:"lsd_preload"`
	LSDPowerRatio   float64 `json:"lsd_power_ratio"`
	LSDCoastRatio   float64 `json:"lsd_coast_ratio"`
}

var (
	presetsOnce sync.Once
	presetTable map[string]Config
	presetErr   error
)

func driveLayoutByName(name string) (drivetrain.DriveLayout, bool) {
	switch name {
	case "rwd":
		return drivetrain.RWD, true
	case "fwd":
		return drivetrain.FWD, true
	case "awd":
		return drivetrain.AWD, true
	default:
		return 0, false
	}
}

func differentialByName(name string) (drivetrain.Differential, bool) {
	switch name {
	case "open":
		return drivetrain.Open, true
	case "locked":
		return drivetrain.Locked, true
	case "lsd":
		return drivetrain.LSD, true
	default:
		return 0, false
	}
}

func loadPresets() {
	presetsOnce.Do(func() {
		var records []presetRecord
		if err := json.Unmarshal(presetsJSON, &records); err != nil {
			panic(fmt.Sprintf("vehicle: malformed embedded presets.json: %v", err))
		}

		table := make(map[string]Config, len(records))
		for _, record := range records {
			tireConfig, ok := tire.PresetConfig(record.TirePreset)
			if !ok {
				presetErr = newConfigError(fmt.Sprintf("preset %q", record.Name),
					fmt.Sprintf("references unknown tire preset %q", record.TirePreset))
				return
			}
			layout, ok := driveLayoutByName(record.DriveLayout)
			if !ok {
				presetErr = newConfigError(fmt.Sprintf("preset %q", record.Name),
					fmt.Sprintf("unknown drive layout %q", record.DriveLayout))
				return
			}
			differential, ok := differentialByName(record.Differential)
			if !ok {
				presetErr = newConfigError(fmt.Sprintf("preset %q", record.Name),
					fmt.Sprintf("unknown differential %q", record.Differential))
				return
			}

			table[record.Name] = Config{
				Mass: record.Mass, Inertia: record.Inertia,
				Wheelbase: record.Wheelbase, TrackFront: record.TrackFront, TrackRear: record.TrackRear,
				CGHeight: record.CGHeight, CGToFront: record.CGToFront,
				TireConfig:      tireConfig,
				MaxSteerAngle:   record.MaxSteerAngle,
				AckermannFactor: record.AckermannFactor,
				DriveLayout:     layout,
				Differential:    differential,
				MaxTorque:       record.MaxTorque,
				GearRatio:       record.GearRatio,
				MaxBrakeTorque:  record.MaxBrakeTorque,
				BrakeBias:       record.BrakeBias,
				HandbrakeTorque: record.HandbrakeTorque,
				LSDPreload:      record.LSDPreload,
				LSDPowerRatio:   record.LSDPowerRatio,
				LSDCoastRatio:   record.LSDCoastRatio,
				DragCoefficient: 0.3, FrontalArea: 2.2, AirDensity: 1.225,
			}
		}
		presetTable = table
	})
}

// PresetNames returns the names of every embedded vehicle preset.
func PresetNames() ([]string, error) {
	loadPresets()
	if presetErr != nil {
		return nil, presetErr
	}
	names := make([]string, 0, len(presetTable))
	for name := range presetTable {
		names = append(names, name)
	}
	return names, nil
}

// PresetConfig looks up a named vehicle configuration. It returns a
// ConfigError when the name is not registered.
func PresetConfig(name string) (Config, error) {
	loadPresets()
	if presetErr != nil {
		return Config{}, presetErr
	}
	config, ok := presetTable[name]
	if !ok {
		err := newConfigError("name", fmt.Sprintf("unknown vehicle preset %q", name))
		logging.L().Warn("rejected unknown vehicle preset", logging.String("preset", name))
		return Config{}, err
	}
	return config, nil
}

// NewFromPreset constructs a Vehicle from a named preset, logging a
// warning through the package's configured logger before returning the
// error for any rejected name.
func NewFromPreset(name string) (*Vehicle, error) {
	config, err := PresetConfig(name)
	if err != nil {
		return nil, err
	}
	return New(config), nil
}
