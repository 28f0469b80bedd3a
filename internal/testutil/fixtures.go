package testutil

import (
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/google/uuid"
)

// Mesocycle options
type MesocycleOption func(*domain.Mesocycle)

func WithStartDate(d time.Time) MesocycleOption {
	return func(m *domain.Mesocycle) {
		m.StartDate = d
	}
}

func WithWeeks(n int) MesocycleOption {
	return func(m *domain.Mesocycle) {
		m.Weeks = n
	}
}

// NewTestMesocycle returns a four-week mesocycle starting on Wednesday 2026-03-04.
func NewTestMesocycle(name string, opts ...MesocycleOption) *domain.Mesocycle {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Mesocycle{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
		Weeks:     4,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewTestProgression returns a default-intensity progression for a mesocycle.
func NewTestProgression(mesocycleID string, weeks int) *domain.MesocycleProgression {
	return &domain.MesocycleProgression{
		ID:                 uuid.New().String(),
		MesocycleID:        mesocycleID,
		BaselineWeek:       domain.DefaultWeek(1),
		WeeklyProgressions: domain.DefaultWeeks(weeks),
		ProgressionType:    domain.ProgressionLinear,
		GlobalSettings:     domain.DefaultGlobalSettings(),
	}
}

// WorkoutTemplate options
type WorkoutTemplateOption func(*domain.WorkoutTemplate)

func WithDays(days ...time.Weekday) WorkoutTemplateOption {
	return func(w *domain.WorkoutTemplate) {
		w.Days = days
	}
}

func WithExercises(exercises ...domain.ExerciseDefaults) WorkoutTemplateOption {
	return func(w *domain.WorkoutTemplate) {
		w.Exercises = exercises
	}
}

// NewTestExercise builds exercise defaults with RIR 2 and three minutes rest.
func NewTestExercise(name string, sets int, reps string) domain.ExerciseDefaults {
	return domain.ExerciseDefaults{
		Name: name,
		Sets: sets,
		Reps: reps,
		RIR:  domain.Ptr(2),
		Rest: "180s",
	}
}

// NewTestWorkoutTemplate returns a Monday/Thursday template with a squat and a curl.
func NewTestWorkoutTemplate(label string, opts ...WorkoutTemplateOption) *domain.WorkoutTemplate {
	w := &domain.WorkoutTemplate{
		ID:    uuid.New().String(),
		Label: label,
		Days:  []time.Weekday{time.Monday, time.Thursday},
		Exercises: []domain.ExerciseDefaults{
			NewTestExercise("Back Squat", 4, "6-8"),
			NewTestExercise("Dumbbell Curl", 3, "10-12"),
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}
