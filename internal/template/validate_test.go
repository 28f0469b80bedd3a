package template

import (
	"strings"
	"testing"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateTemplate_Valid(t *testing.T) {
	tmpl := &ProgressionTemplate{
		ID:          "custom",
		Name:        "Custom",
		Type:        domain.ProgressionCustom,
		TargetGoal:  GoalGeneral,
		Difficulty:  DifficultyBeginner,
		WeekPattern: []domain.IntensityParameters{domain.DefaultIntensity(), domain.DeloadIntensity()},
		Duration:    2,
	}
	assert.Empty(t, ValidateTemplate(tmpl))
}

func TestValidateTemplate_MissingRequiredFields(t *testing.T) {
	errs := ValidateTemplate(&ProgressionTemplate{})
	assert.NotEmpty(t, errs)

	msgs := joinErrs(errs)
	assert.Contains(t, msgs, "template id is required")
	assert.Contains(t, msgs, "template name is required")
	assert.Contains(t, msgs, `invalid type ""`)
	assert.Contains(t, msgs, "invalid target goal")
	assert.Contains(t, msgs, "invalid difficulty")
	assert.Contains(t, msgs, "at least one week is required")
}

func TestValidateTemplate_BadWeeks(t *testing.T) {
	bad := domain.DefaultIntensity()
	bad.Sets = 0
	bad.RPE = 11
	bad.RIR = -1

	tmpl := &ProgressionTemplate{
		ID:          "bad",
		Name:        "Bad",
		Type:        domain.ProgressionLinear,
		TargetGoal:  GoalStrength,
		Difficulty:  DifficultyAdvanced,
		WeekPattern: []domain.IntensityParameters{domain.DefaultIntensity(), bad},
		Duration:    5,
	}

	msgs := joinErrs(ValidateTemplate(tmpl))
	assert.Contains(t, msgs, "duration 5 does not match 2 pattern weeks")
	assert.Contains(t, msgs, "week[1]: sets multiplier must be positive")
	assert.Contains(t, msgs, "week[1]: rpe must be between 0 and 10")
	assert.Contains(t, msgs, "week[1]: rir must not be negative")
	assert.NotContains(t, msgs, "week[0]")
}

func joinErrs(errs []error) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}
