package template

import (
	"fmt"

	"github.com/alexanderramin/mesoplan/internal/domain"
)

// ValidateTemplate checks a ProgressionTemplate for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateTemplate(t *ProgressionTemplate) []error {
	var errs []error

	if t.ID == "" {
		errs = append(errs, fmt.Errorf("template id is required"))
	}
	if t.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if !domain.ValidProgressionTypes[string(t.Type)] {
		errs = append(errs, fmt.Errorf("invalid type %q", t.Type))
	}
	if !validGoals[t.TargetGoal] {
		errs = append(errs, fmt.Errorf("invalid target goal %q", t.TargetGoal))
	}
	if !validDifficulties[t.Difficulty] {
		errs = append(errs, fmt.Errorf("invalid difficulty %q", t.Difficulty))
	}
	if len(t.WeekPattern) == 0 {
		errs = append(errs, fmt.Errorf("at least one week is required"))
	}
	if t.Duration != 0 && t.Duration != len(t.WeekPattern) {
		errs = append(errs, fmt.Errorf("duration %d does not match %d pattern weeks", t.Duration, len(t.WeekPattern)))
	}

	for i, w := range t.WeekPattern {
		if w.Volume <= 0 {
			errs = append(errs, fmt.Errorf("week[%d]: volume must be positive", i))
		}
		if w.Weight <= 0 {
			errs = append(errs, fmt.Errorf("week[%d]: weight must be positive", i))
		}
		if w.Sets <= 0 {
			errs = append(errs, fmt.Errorf("week[%d]: sets multiplier must be positive", i))
		}
		if w.RepsModifier <= 0 {
			errs = append(errs, fmt.Errorf("week[%d]: reps modifier must be positive", i))
		}
		if w.RIR < 0 {
			errs = append(errs, fmt.Errorf("week[%d]: rir must not be negative", i))
		}
		if w.RPE < 0 || w.RPE > 10 {
			errs = append(errs, fmt.Errorf("week[%d]: rpe must be between 0 and 10", i))
		}
	}

	return errs
}
