package domain

// Baseline values the intensity fields are measured against.
const (
	BaselineVolume = 100.0
	BaselineWeight = 100.0
	BaselineRIR    = 2
	BaselineRPE    = 7.0

	// DeloadVolumeThreshold is the volume at or below which a week counts as a deload.
	DeloadVolumeThreshold = 75.0

	DeloadLabel = "Deload Week"
)

// IntensityParameters is a week's training stress relative to baseline.
// Every field is independent; none is derived from another.
type IntensityParameters struct {
	Volume       float64 `json:"volume" yaml:"volume"`
	Weight       float64 `json:"weight" yaml:"weight"`
	RIR          int     `json:"rir" yaml:"rir"`
	RPE          float64 `json:"rpe" yaml:"rpe"`
	Sets         float64 `json:"sets" yaml:"sets"`
	RepsModifier float64 `json:"repsModifier" yaml:"repsModifier"`
}

// DefaultIntensity returns the baseline intensity profile.
func DefaultIntensity() IntensityParameters {
	return IntensityParameters{
		Volume:       BaselineVolume,
		Weight:       BaselineWeight,
		RIR:          BaselineRIR,
		RPE:          BaselineRPE,
		Sets:         1.0,
		RepsModifier: 1.0,
	}
}

// DeloadIntensity returns the reduced profile used for recovery weeks.
func DeloadIntensity() IntensityParameters {
	return IntensityParameters{
		Volume:       60,
		Weight:       85,
		RIR:          4,
		RPE:          5,
		Sets:         0.6,
		RepsModifier: 1.0,
	}
}

// IsDeloadVolume reports whether the profile is light enough to be flagged as a deload.
func (p IntensityParameters) IsDeloadVolume() bool {
	return p.Volume <= DeloadVolumeThreshold
}

// IntensityOverrides is a partial IntensityParameters. Nil fields leave the
// target untouched.
type IntensityOverrides struct {
	Volume       *float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
	Weight       *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	RIR          *int     `json:"rir,omitempty" yaml:"rir,omitempty"`
	RPE          *float64 `json:"rpe,omitempty" yaml:"rpe,omitempty"`
	Sets         *float64 `json:"sets,omitempty" yaml:"sets,omitempty"`
	RepsModifier *float64 `json:"repsModifier,omitempty" yaml:"repsModifier,omitempty"`
}

// IsZero reports whether no field is set.
func (o *IntensityOverrides) IsZero() bool {
	return o == nil || (o.Volume == nil && o.Weight == nil && o.RIR == nil &&
		o.RPE == nil && o.Sets == nil && o.RepsModifier == nil)
}

// Apply merges the set fields of o into p and returns the result.
func (o *IntensityOverrides) Apply(p IntensityParameters) IntensityParameters {
	if o == nil {
		return p
	}
	p.Volume = Float64FromPtrWithDefault(p.Volume, o.Volume)
	p.Weight = Float64FromPtrWithDefault(p.Weight, o.Weight)
	p.RIR = IntFromPtrWithDefault(p.RIR, o.RIR)
	p.RPE = Float64FromPtrWithDefault(p.RPE, o.RPE)
	p.Sets = Float64FromPtrWithDefault(p.Sets, o.Sets)
	p.RepsModifier = Float64FromPtrWithDefault(p.RepsModifier, o.RepsModifier)
	return p
}

// WeekIntensity is one numbered week of a mesocycle.
type WeekIntensity struct {
	Week      int                 `json:"week"`
	Intensity IntensityParameters `json:"intensity"`
	IsDeload  bool                `json:"isDeload"`
	Label     string              `json:"label,omitempty"`
	Notes     string              `json:"notes,omitempty"`
}

// DefaultWeek returns week n at baseline intensity.
func DefaultWeek(n int) WeekIntensity {
	return WeekIntensity{Week: n, Intensity: DefaultIntensity()}
}

// DefaultWeeks returns weeks 1..n at baseline intensity.
func DefaultWeeks(n int) []WeekIntensity {
	if n < 1 {
		return nil
	}
	weeks := make([]WeekIntensity, n)
	for i := range weeks {
		weeks[i] = DefaultWeek(i + 1)
	}
	return weeks
}
