package tire

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed presets.json
var presetsJSON []byte

type presetRecord struct {
	Name           string  `json:"name"`
	Params         string  `json:"params"`
	Radius         float64 `json:"radius"`
	Width          float64 `json:"width"`
	Inertia        float64 `json:"inertia"`
	RelaxationX    float64 `json:"relaxation_x"`
	RelaxationY    float64 `json:"relaxation_y"`
	UseRelaxation  bool    `json:"use_relaxation"`
	FrictionMu     float64 `json:"friction_mu"`
	CombinedMethod string  `json:"combined_method"`
}

var (
	presetsOnce sync.Once
	presetTable map[string]Config
)

func paramsByName(name string) (PacejkaParams, bool) {
	switch name {
	case "sport":
		return SportParams(), true
	case "drift":
		return DriftParams(), true
	case "rain":
		return RainParams(), true
	case "street":
		return StreetParams(), true
	case "semi_slick":
		return SemiSlickParams(), true
	default:
		return PacejkaParams{}, false
	}
}

func methodByName(name string) CombinedMethod {
	switch name {
	case "simple":
		return Simple
	case "vector":
		return Vector
	default:
		return Empirical
	}
}

func loadPresets() {
	presetsOnce.Do(func() {
		var records []presetRecord
		if err := json.Unmarshal(presetsJSON, &records); err != nil {
			panic(fmt.Sprintf("tire: malformed embedded presets.json: %v", err))
		}
		table := make(map[string]Config, len(records))
		for _, record := range records {
			params, ok := paramsByName(record.Params)
			if !ok {
				panic(fmt.Sprintf("tire: preset %q references unknown coefficient set %q", record.Name, record.Params))
			}
			table[record.Name] = Config{
				Radius:         record.Radius,
				Width:          record.Width,
				Inertia:        record.Inertia,
				Params:         params,
				RelaxationX:    record.RelaxationX,
				RelaxationY:    record.RelaxationY,
				UseRelaxation:  record.UseRelaxation,
				FrictionMu:     record.FrictionMu,
				CombinedMethod: methodByName(record.CombinedMethod),
			}
		}
		presetTable = table
	})
}

// PresetNames returns the names of every embedded tire preset.
func PresetNames() []string {
	loadPresets()
	names := make([]string, 0, len(presetTable))
	for name := range presetTable {
		names = append(names, name)
	}
	return names
}

// PresetConfig looks up a named tire configuration. The second return value
// is false when the name is not a registered preset.
func PresetConfig(name string) (Config, bool) {
	loadPresets()
	config, ok := presetTable[name]
	return config, ok
}
