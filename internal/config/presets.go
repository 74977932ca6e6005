package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"fair":       {Probability: 0.5, TotalUnits: 100, Steps: 10},
	"lean-left":  {Probability: 0.3, TotalUnits: 100, Steps: 10},
	"lean-right": {Probability: 0.7, TotalUnits: 100, Steps: 10},
	"all-left":   {Probability: 0, TotalUnits: 100, Steps: 10},
	"all-right":  {Probability: 1, TotalUnits: 100, Steps: 10},
	"crowd":      {Probability: 0.5, TotalUnits: 1000, Steps: 10},
	"long":       {Probability: 0.5, TotalUnits: 500, Steps: 20},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's model values onto cfg, leaving UI and logging
// settings alone.
func Apply(cfg *Config, name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	cfg.Probability = p.Probability
	cfg.TotalUnits = p.TotalUnits
	cfg.Steps = p.Steps
	return nil
}
