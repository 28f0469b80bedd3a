package domain

type ProgressionType string

const (
	ProgressionLinear     ProgressionType = "linear"
	ProgressionWave       ProgressionType = "wave"
	ProgressionBlock      ProgressionType = "block"
	ProgressionUndulating ProgressionType = "undulating"
	ProgressionStep       ProgressionType = "step"
	ProgressionCustom     ProgressionType = "custom"
)

// ValidProgressionTypes is the canonical set of accepted progression type strings.
var ValidProgressionTypes = map[string]bool{
	"linear": true, "wave": true, "block": true,
	"undulating": true, "step": true, "custom": true,
}

type PrimaryFocus string

const (
	FocusWeight    PrimaryFocus = "weight"
	FocusVolume    PrimaryFocus = "volume"
	FocusIntensity PrimaryFocus = "intensity"
	FocusDensity   PrimaryFocus = "density"
)

// ValidPrimaryFocuses is the canonical set of accepted strategy focus strings.
var ValidPrimaryFocuses = map[string]bool{
	"weight": true, "volume": true, "intensity": true, "density": true,
}

type ExerciseClass string

const (
	ClassCompound  ExerciseClass = "compound"
	ClassIsolation ExerciseClass = "isolation"
	ClassAccessory ExerciseClass = "accessory"
)
