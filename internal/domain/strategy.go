package domain

import (
	"fmt"
	"sort"
)

// SecondaryAdjustments lists which exercise fields a week may change
// besides the primary focus.
type SecondaryAdjustments struct {
	Sets bool `json:"sets" yaml:"sets"`
	Reps bool `json:"reps" yaml:"reps"`
	RIR  bool `json:"rir" yaml:"rir"`
	Rest bool `json:"rest" yaml:"rest"`
}

// StrategyConstraints pin exercise fields to their defaults after resolution.
type StrategyConstraints struct {
	MaintainReps *bool `json:"maintainReps,omitempty" yaml:"maintainReps,omitempty"`
	MaintainSets *bool `json:"maintainSets,omitempty" yaml:"maintainSets,omitempty"`
	MaintainRIR  *bool `json:"maintainRIR,omitempty" yaml:"maintainRIR,omitempty"`
}

type ProgressionStrategy struct {
	Primary              PrimaryFocus         `json:"primary" yaml:"primary"`
	SecondaryAdjustments SecondaryAdjustments `json:"secondaryAdjustments" yaml:"secondaryAdjustments"`
	Constraints          StrategyConstraints  `json:"constraints" yaml:"constraints"`
}

func (s ProgressionStrategy) Validate() error {
	if !ValidPrimaryFocuses[string(s.Primary)] {
		return fmt.Errorf("invalid primary focus %q (must be weight, volume, intensity or density)", s.Primary)
	}
	return nil
}

func StrengthStrategy() ProgressionStrategy {
	return ProgressionStrategy{
		Primary:              FocusWeight,
		SecondaryAdjustments: SecondaryAdjustments{RIR: true},
	}
}

func HypertrophyStrategy() ProgressionStrategy {
	return ProgressionStrategy{
		Primary:              FocusVolume,
		SecondaryAdjustments: SecondaryAdjustments{Sets: true, Reps: true, RIR: true},
	}
}

func PeakingStrategy() ProgressionStrategy {
	return ProgressionStrategy{
		Primary:              FocusIntensity,
		SecondaryAdjustments: SecondaryAdjustments{RIR: true},
		Constraints:          StrategyConstraints{MaintainSets: Ptr(true)},
	}
}

func ConditioningStrategy() ProgressionStrategy {
	return ProgressionStrategy{
		Primary:              FocusDensity,
		SecondaryAdjustments: SecondaryAdjustments{Rest: true},
		Constraints:          StrategyConstraints{MaintainRIR: Ptr(true)},
	}
}

var strategyPresets = map[string]func() ProgressionStrategy{
	"strength":     StrengthStrategy,
	"hypertrophy":  HypertrophyStrategy,
	"peaking":      PeakingStrategy,
	"conditioning": ConditioningStrategy,
}

// StrategyPreset returns the named built-in strategy.
func StrategyPreset(name string) (ProgressionStrategy, bool) {
	fn, ok := strategyPresets[name]
	if !ok {
		return ProgressionStrategy{}, false
	}
	return fn(), true
}

// StrategyPresetNames returns the built-in strategy names in sorted order.
func StrategyPresetNames() []string {
	names := make([]string, 0, len(strategyPresets))
	for name := range strategyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
