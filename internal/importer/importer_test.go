package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upperLower = `
workouts:
  - label: Upper A
    days: [mon, Thursday]
    exercises:
      - name: Bench Press
        sets: 4
        reps: 6-8
        rir: 2
        rest: 180s
      - name: Cable Fly
        sets: 3
        reps: "12"
        rpe: 8
  - label: Lower A
    days: [tue, fri, tue]
    exercises:
      - {name: Back Squat, sets: 5, reps: "5", rir: 3, rest: 240s}
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWorkoutFile(t *testing.T) {
	file, err := LoadWorkoutFile(writeTemp(t, upperLower))
	require.NoError(t, err)
	require.Len(t, file.Workouts, 2)
	assert.Empty(t, ValidateWorkoutFile(file))

	upper := file.Workouts[0]
	assert.Equal(t, "Upper A", upper.Label)
	assert.Equal(t, []string{"mon", "Thursday"}, upper.Days)
	require.NotNil(t, upper.Exercises[0].RIR)
	assert.Equal(t, 2, *upper.Exercises[0].RIR)
	require.NotNil(t, upper.Exercises[1].RPE)
	assert.Equal(t, 8.0, *upper.Exercises[1].RPE)
}

func TestLoadWorkoutFile_Missing(t *testing.T) {
	_, err := LoadWorkoutFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseWorkoutFile_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseWorkoutFile([]byte("workouts:\n  - label: A\n    dayz: [mon]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing workout file")
}

func TestValidateWorkoutFile_ReportsEveryProblem(t *testing.T) {
	file := &WorkoutFile{Workouts: []WorkoutImport{
		{Label: "A", Days: []string{"mon", "someday"}, Exercises: []ExerciseImport{
			{Name: "", Sets: 0, Reps: ""},
		}},
		{Label: "a", Days: nil, Exercises: []ExerciseImport{
			{Name: "Row", Sets: 3, Reps: "10", RIR: domain.Ptr(-1), RPE: domain.Ptr(11.0)},
		}},
	}}

	var msgs []string
	for _, err := range ValidateWorkoutFile(file) {
		msgs = append(msgs, err.Error())
	}
	assert.ElementsMatch(t, []string{
		`workouts[0].days[1]: unknown weekday "someday"`,
		`workouts[0].exercises[0].name is required`,
		`workouts[0].exercises[0].sets must be at least 1 (got 0)`,
		`workouts[0].exercises[0].reps is required`,
		`workouts[1].label: duplicate label "a"`,
		`workouts[1].days: at least one day is required`,
		`workouts[1].exercises[0].rir must not be negative (got -1)`,
		`workouts[1].exercises[0].rpe must be between 1 and 10 (got 11)`,
	}, msgs)
}

func TestValidateWorkoutFile_Empty(t *testing.T) {
	errs := ValidateWorkoutFile(&WorkoutFile{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one workout")
}

func TestConvert(t *testing.T) {
	file, err := ParseWorkoutFile([]byte(upperLower))
	require.NoError(t, err)

	templates := Convert(file)
	require.Len(t, templates, 2)

	upper := templates[0]
	assert.NotEmpty(t, upper.ID)
	assert.Equal(t, []time.Weekday{time.Monday, time.Thursday}, upper.Days)
	assert.Equal(t, "Bench Press", upper.Exercises[0].Name)
	assert.Equal(t, "180s", upper.Exercises[0].Rest)

	lower := templates[1]
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Friday}, lower.Days, "duplicate days collapse")
	assert.NotEqual(t, upper.ID, lower.ID)
}

func TestExerciseImport_Standard(t *testing.T) {
	assert.True(t, ExerciseImport{Reps: "8-10", Rest: "90s"}.Standard())
	assert.True(t, ExerciseImport{Reps: "5"}.Standard())
	assert.False(t, ExerciseImport{Reps: "AMRAP"}.Standard())
	assert.False(t, ExerciseImport{Reps: "5", Rest: "2 min"}.Standard())
}
