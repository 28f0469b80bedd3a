// Package calendar turns workout templates and a mesocycle progression into
// dated workout instances.
package calendar

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/strategy"
)

// StartOfWeek returns midnight of the Sunday that begins t's calendar week.
func StartOfWeek(t time.Time) time.Time {
	day := truncateDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// InstanceLabel is the label of a materialized workout.
func InstanceLabel(templateLabel string, week int) string {
	return fmt.Sprintf("%s - Week %d", templateLabel, week)
}

// Materialize enumerates the dated workouts of a mesocycle.
//
// Week w covers the calendar week (Sunday to Saturday) w-1 weeks after the
// one containing start. Days before start are skipped, so the first week
// may be partial. Exercises are resolved against week w's intensity and the
// progression's strategy; with no progression, or no entry for a week, the
// template defaults are used unchanged. Instances are ordered by date, then
// by template order. IDs are left empty for the caller to assign.
func Materialize(start time.Time, weeks int, templates []domain.WorkoutTemplate, progression *domain.MesocycleProgression) []domain.WorkoutInstance {
	var instances []domain.WorkoutInstance
	if weeks < 1 || len(templates) == 0 {
		return instances
	}

	first := truncateDay(start)
	weekStart := StartOfWeek(start)

	var strat *domain.ProgressionStrategy
	if progression != nil {
		strat = progression.ProgressionStrategy
	}

	for w := 1; w <= weeks; w++ {
		var week *domain.WeekIntensity
		if wi, ok := progression.Week(w); ok {
			week = &wi
		}

		for d := 0; d < 7; d++ {
			date := weekStart.AddDate(0, 0, (w-1)*7+d)
			if date.Before(first) {
				continue
			}
			for i := range templates {
				tmpl := &templates[i]
				if !tmpl.ScheduledOn(date.Weekday()) {
					continue
				}
				instances = append(instances, domain.WorkoutInstance{
					TemplateID: tmpl.ID,
					Label:      InstanceLabel(tmpl.Label, w),
					Date:       date,
					Week:       w,
					IsDeload:   week != nil && week.IsDeload,
					Exercises:  resolveExercises(tmpl.Exercises, week, strat),
				})
			}
		}
	}
	return instances
}

func resolveExercises(exercises []domain.ExerciseDefaults, week *domain.WeekIntensity, strat *domain.ProgressionStrategy) []domain.ResolvedExercise {
	resolved := make([]domain.ResolvedExercise, 0, len(exercises))
	for i, ex := range exercises {
		class := domain.ClassifyExercise(ex.Name)
		res := strategy.Resolve(ex, week, strat, class)
		resolved = append(resolved, domain.ResolvedExercise{
			Order:         i + 1,
			Name:          ex.Name,
			Class:         class,
			Sets:          res.Exercise.Sets,
			Reps:          res.Exercise.Reps,
			RIR:           res.Exercise.RIR,
			RPE:           res.Exercise.RPE,
			Rest:          res.Exercise.Rest,
			WeightPercent: res.WeightPercent,
			Changes:       res.Description,
		})
	}
	return resolved
}
