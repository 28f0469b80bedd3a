package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyExercise(t *testing.T) {
	cases := map[string]ExerciseClass{
		"Back Squat":          ClassCompound,
		"bench press":         ClassCompound,
		"Romanian Deadlift":   ClassCompound,
		"Barbell Row":         ClassCompound,
		"Pull-up":             ClassCompound,
		"Weighted Chinup":     ClassCompound,
		"Ring Dip":            ClassCompound,
		"Hammer Curl":         ClassIsolation,
		"Leg Extension":       ClassIsolation,
		"Cable Fly":           ClassIsolation,
		"Lateral Raise":       ClassIsolation,
		"Dumbbell Shrug":      ClassIsolation,
		"Standing Calf Raise": ClassIsolation,
		"Face Pull":           ClassAccessory,
		"Plank":               ClassAccessory,
		"":                    ClassAccessory,
	}
	for name, want := range cases {
		assert.Equal(t, want, ClassifyExercise(name), "classifying %q", name)
	}
}

func TestExerciseDefaults_CloneDoesNotAlias(t *testing.T) {
	e := ExerciseDefaults{Name: "Squat", Sets: 3, Reps: "5", RIR: Ptr(2), RPE: Ptr(8.0)}
	c := e.Clone()
	*c.RIR = 0
	*c.RPE = 10
	assert.Equal(t, 2, *e.RIR)
	assert.Equal(t, 8.0, *e.RPE)
}

func TestWorkoutTemplate_ScheduledOn(t *testing.T) {
	tmpl := WorkoutTemplate{Days: []time.Weekday{time.Monday, time.Thursday}}
	assert.True(t, tmpl.ScheduledOn(time.Monday))
	assert.True(t, tmpl.ScheduledOn(time.Thursday))
	assert.False(t, tmpl.ScheduledOn(time.Sunday))
}

func TestStrategyPresets(t *testing.T) {
	assert.Equal(t, []string{"conditioning", "hypertrophy", "peaking", "strength"}, StrategyPresetNames())

	for _, name := range StrategyPresetNames() {
		s, ok := StrategyPreset(name)
		assert.True(t, ok)
		assert.NoError(t, s.Validate(), name)
	}

	_, ok := StrategyPreset("powerbuilding")
	assert.False(t, ok)

	peaking := PeakingStrategy()
	assert.Equal(t, FocusIntensity, peaking.Primary)
	assert.True(t, BoolFromPtrWithDefault(false, peaking.Constraints.MaintainSets))
}

func TestProgressionStrategy_ValidateRejectsUnknownFocus(t *testing.T) {
	err := ProgressionStrategy{Primary: "tempo"}.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tempo")
}

func TestMesocycleProgression_Week(t *testing.T) {
	p := &MesocycleProgression{WeeklyProgressions: DefaultWeeks(4)}
	w, ok := p.Week(3)
	assert.True(t, ok)
	assert.Equal(t, 3, w.Week)

	_, ok = p.Week(5)
	assert.False(t, ok)

	var nilProg *MesocycleProgression
	_, ok = nilProg.Week(1)
	assert.False(t, ok)
}

func TestMesocycle_EndDate(t *testing.T) {
	// Wednesday start; the first calendar week begins the previous Sunday.
	m := Mesocycle{StartDate: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), Weeks: 2}
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), m.EndDate())
}
