package progression

import (
	"strings"

	"github.com/alexanderramin/mesoplan/internal/domain"
)

type PresetName string

const (
	PresetEasy     PresetName = "easy"
	PresetModerate PresetName = "moderate"
	PresetHard     PresetName = "hard"
	PresetPeak     PresetName = "peak"
	PresetDeload   PresetName = "deload"
)

// Preset is a fixed intensity bundle that can be applied to a single week.
type Preset struct {
	Name      PresetName
	Intensity domain.IntensityParameters
}

// Label returns the week label a preset assigns, e.g. "Hard Week".
func (p Preset) Label() string {
	if p.Name == PresetDeload {
		return domain.DeloadLabel
	}
	name := string(p.Name)
	return strings.ToUpper(name[:1]) + name[1:] + " Week"
}

// Presets lists the built-in presets from lightest to heaviest, deload last.
func Presets() []Preset {
	return []Preset{
		{Name: PresetEasy, Intensity: domain.IntensityParameters{Volume: 90, Weight: 95, RIR: 3, RPE: 6.5, Sets: 0.9, RepsModifier: 1}},
		{Name: PresetModerate, Intensity: domain.DefaultIntensity()},
		{Name: PresetHard, Intensity: domain.IntensityParameters{Volume: 105, Weight: 105, RIR: 1, RPE: 8.5, Sets: 1.1, RepsModifier: 1}},
		{Name: PresetPeak, Intensity: domain.IntensityParameters{Volume: 80, Weight: 110, RIR: 0, RPE: 9.5, Sets: 0.8, RepsModifier: 0.8}},
		{Name: PresetDeload, Intensity: domain.DeloadIntensity()},
	}
}

// LookupPreset finds a preset by name, ignoring case.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets() {
		if strings.EqualFold(string(p.Name), strings.TrimSpace(name)) {
			return p, true
		}
	}
	return Preset{}, false
}
