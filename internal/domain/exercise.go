package domain

import (
	"regexp"
	"time"
)

var (
	compoundPattern  = regexp.MustCompile(`(?i)squat|bench|deadlift|press|row|pull-?up|chin-?up|dip`)
	isolationPattern = regexp.MustCompile(`(?i)curl|extension|fly|raise|shrug|calf`)
)

// ClassifyExercise derives an exercise class from its name. Compound
// patterns take precedence over isolation ones.
func ClassifyExercise(name string) ExerciseClass {
	switch {
	case name == "":
		return ClassAccessory
	case compoundPattern.MatchString(name):
		return ClassCompound
	case isolationPattern.MatchString(name):
		return ClassIsolation
	default:
		return ClassAccessory
	}
}

// ExerciseDefaults are an exercise's base parameters within a workout template.
// Reps is a single integer or a "min-max" range; Rest has the form "{seconds}s".
type ExerciseDefaults struct {
	Name string   `json:"name" yaml:"name"`
	Sets int      `json:"sets" yaml:"sets"`
	Reps string   `json:"reps" yaml:"reps"`
	RIR  *int     `json:"rir,omitempty" yaml:"rir,omitempty"`
	RPE  *float64 `json:"rpe,omitempty" yaml:"rpe,omitempty"`
	Rest string   `json:"rest,omitempty" yaml:"rest,omitempty"`
}

// Clone returns a copy that shares no pointers with e.
func (e ExerciseDefaults) Clone() ExerciseDefaults {
	e.RIR = ClonePtr(e.RIR)
	e.RPE = ClonePtr(e.RPE)
	return e
}

// WorkoutTemplate is a reusable session scheduled on fixed weekdays.
type WorkoutTemplate struct {
	ID        string
	Label     string
	Days      []time.Weekday
	Exercises []ExerciseDefaults
	CreatedAt time.Time
}

// ScheduledOn reports whether the template runs on the given weekday.
func (t *WorkoutTemplate) ScheduledOn(day time.Weekday) bool {
	for _, d := range t.Days {
		if d == day {
			return true
		}
	}
	return false
}

// ResolvedExercise is an exercise's effective prescription for one week.
type ResolvedExercise struct {
	Order         int           `json:"order"`
	Name          string        `json:"name"`
	Class         ExerciseClass `json:"class"`
	Sets          int           `json:"sets"`
	Reps          string        `json:"reps"`
	RIR           *int          `json:"rir,omitempty"`
	RPE           *float64      `json:"rpe,omitempty"`
	Rest          string        `json:"rest,omitempty"`
	WeightPercent float64       `json:"weightPercent"`
	Changes       string        `json:"changes,omitempty"`
}

// WorkoutInstance is one dated session of a materialized mesocycle.
type WorkoutInstance struct {
	ID          string
	MesocycleID string
	TemplateID  string
	Label       string
	Date        time.Time
	Week        int
	IsDeload    bool
	Exercises   []ResolvedExercise
	CreatedAt   time.Time
}
