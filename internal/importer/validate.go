package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/mesoplan/internal/domain"
)

var (
	repsPattern = regexp.MustCompile(`^\d+(-\d+)?$`)
	restPattern = regexp.MustCompile(`^\d+s$`)
)

// ValidateWorkoutFile returns every problem found in the file.
//
// Reps outside the "n" / "min-max" form (e.g. "AMRAP") and rest values not
// in "{seconds}s" form are accepted; progression leaves them unchanged.
func ValidateWorkoutFile(file *WorkoutFile) []error {
	var errs []error
	if len(file.Workouts) == 0 {
		return []error{fmt.Errorf("workouts: at least one workout is required")}
	}

	labels := make(map[string]bool)
	for i, w := range file.Workouts {
		prefix := fmt.Sprintf("workouts[%d]", i)
		label := strings.TrimSpace(w.Label)
		if label == "" {
			errs = append(errs, fmt.Errorf("%s.label is required", prefix))
		} else {
			key := strings.ToLower(label)
			if labels[key] {
				errs = append(errs, fmt.Errorf("%s.label: duplicate label %q", prefix, label))
			}
			labels[key] = true
		}

		if len(w.Days) == 0 {
			errs = append(errs, fmt.Errorf("%s.days: at least one day is required", prefix))
		}
		for j, d := range w.Days {
			if _, err := domain.ParseWeekday(d); err != nil {
				errs = append(errs, fmt.Errorf("%s.days[%d]: %w", prefix, j, err))
			}
		}

		if len(w.Exercises) == 0 {
			errs = append(errs, fmt.Errorf("%s.exercises: at least one exercise is required", prefix))
		}
		for j, ex := range w.Exercises {
			errs = append(errs, validateExercise(fmt.Sprintf("%s.exercises[%d]", prefix, j), ex)...)
		}
	}
	return errs
}

func validateExercise(prefix string, ex ExerciseImport) []error {
	var errs []error
	if strings.TrimSpace(ex.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if ex.Sets < 1 {
		errs = append(errs, fmt.Errorf("%s.sets must be at least 1 (got %d)", prefix, ex.Sets))
	}
	if strings.TrimSpace(ex.Reps) == "" {
		errs = append(errs, fmt.Errorf("%s.reps is required", prefix))
	}
	if ex.RIR != nil && *ex.RIR < 0 {
		errs = append(errs, fmt.Errorf("%s.rir must not be negative (got %d)", prefix, *ex.RIR))
	}
	if ex.RPE != nil && (*ex.RPE < 1 || *ex.RPE > 10) {
		errs = append(errs, fmt.Errorf("%s.rpe must be between 1 and 10 (got %g)", prefix, *ex.RPE))
	}
	return errs
}

// Standard reports whether reps and rest use the forms progression can scale.
func (ex ExerciseImport) Standard() bool {
	return repsPattern.MatchString(ex.Reps) && (ex.Rest == "" || restPattern.MatchString(ex.Rest))
}
