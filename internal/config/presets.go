package config

import (
	"fmt"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

// Presets are the named mechanisms offered by the live view and the CLI.
var Presets = map[string]kinematics.Params{
	"balanced":   {CrankRadius: 50, RodLength: 150, CrankSpeed: 150},
	"high-speed": {CrankRadius: 60, RodLength: 180, CrankSpeed: 300},
	"high-rod":   {CrankRadius: 40, RodLength: 250, CrankSpeed: 100},
	"compact":    {CrankRadius: 30, RodLength: 120, CrankSpeed: 400},
}

var presetOrder = []string{"balanced", "high-speed", "high-rod", "compact"}

var presetDescriptions = map[string]string{
	"balanced":   "standard config",
	"high-speed": "fast operation",
	"high-rod":   "long connecting rod",
	"compact":    "small crank, high speed",
}

func GetPreset(name string) (kinematics.Params, error) {
	p, ok := Presets[name]
	if !ok {
		return kinematics.Params{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return p, nil
}

// ListPresets returns preset names in display order.
func ListPresets() []string {
	names := make([]string, len(presetOrder))
	copy(names, presetOrder)
	return names
}

func PresetDescription(name string) string {
	return presetDescriptions[name]
}

// NextPreset cycles through ListPresets.
func NextPreset(current string) string {
	names := ListPresets()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
