package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/google/uuid"
)

// Convert turns a validated file into workout templates with fresh ids.
// Call ValidateWorkoutFile first; invalid days are skipped here.
func Convert(file *WorkoutFile) []*domain.WorkoutTemplate {
	now := time.Now().UTC()
	out := make([]*domain.WorkoutTemplate, 0, len(file.Workouts))
	for _, w := range file.Workouts {
		t := &domain.WorkoutTemplate{
			ID:        uuid.New().String(),
			Label:     strings.TrimSpace(w.Label),
			CreatedAt: now,
		}
		seen := map[time.Weekday]bool{}
		for _, d := range w.Days {
			day, err := domain.ParseWeekday(d)
			if err != nil || seen[day] {
				continue
			}
			seen[day] = true
			t.Days = append(t.Days, day)
		}
		for _, ex := range w.Exercises {
			t.Exercises = append(t.Exercises, domain.ExerciseDefaults{
				Name: strings.TrimSpace(ex.Name),
				Sets: ex.Sets,
				Reps: strings.TrimSpace(ex.Reps),
				RIR:  domain.ClonePtr(ex.RIR),
				RPE:  domain.ClonePtr(ex.RPE),
				Rest: strings.TrimSpace(ex.Rest),
			})
		}
		out = append(out, t)
	}
	return out
}
