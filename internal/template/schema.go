package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/mesoplan/internal/domain"
)

type Goal string

const (
	GoalStrength     Goal = "strength"
	GoalHypertrophy  Goal = "hypertrophy"
	GoalPeaking      Goal = "peaking"
	GoalConditioning Goal = "conditioning"
	GoalGeneral      Goal = "general"
)

var validGoals = map[Goal]bool{
	GoalStrength: true, GoalHypertrophy: true, GoalPeaking: true,
	GoalConditioning: true, GoalGeneral: true,
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var validDifficulties = map[Difficulty]bool{
	DifficultyBeginner: true, DifficultyIntermediate: true, DifficultyAdvanced: true,
}

// ProgressionTemplate is a named week-by-week intensity shape. WeekPattern
// holds the unscaled original; its length is authoritative over Duration.
type ProgressionTemplate struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Description string                       `json:"description,omitempty"`
	Type        domain.ProgressionType       `json:"type"`
	WeekPattern []domain.IntensityParameters `json:"weekPattern"`
	TargetGoal  Goal                         `json:"targetGoal"`
	Difficulty  Difficulty                   `json:"difficulty"`
	Duration    int                          `json:"duration"`
}

func (t ProgressionTemplate) clone() ProgressionTemplate {
	t.WeekPattern = append([]domain.IntensityParameters(nil), t.WeekPattern...)
	return t
}

// LoadTemplate reads a custom progression template from a JSON file.
// A missing duration defaults to the pattern length.
func LoadTemplate(path string) (*ProgressionTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t ProgressionTemplate
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if t.Duration == 0 {
		t.Duration = len(t.WeekPattern)
	}
	return &t, nil
}

// LoadDir loads and validates every *.json template in dir. Files that fail
// to parse or validate are skipped and reported in the returned error; the
// templates that did load are returned regardless.
func LoadDir(dir string) ([]ProgressionTemplate, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var (
		templates []ProgressionTemplate
		errs      []error
	)
	for _, file := range files {
		t, err := LoadTemplate(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(file), err))
			continue
		}
		if verrs := ValidateTemplate(t); len(verrs) > 0 {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(file), errors.Join(verrs...)))
			continue
		}
		templates = append(templates, *t)
	}
	return templates, errors.Join(errs...)
}
