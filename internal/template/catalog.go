package template

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexanderramin/mesoplan/internal/domain"
)

var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrInvalidDuration   = errors.New("duration must be at least 1 week")
	ErrDuplicateTemplate = errors.New("duplicate template id")
)

// Catalog is a read-only set of progression templates. Lookups return
// copies, so callers cannot alter catalog data.
type Catalog struct {
	templates []ProgressionTemplate
	byID      map[string]int
}

// NewCatalog builds a catalog from the given templates. Duplicate ids are rejected.
func NewCatalog(templates ...ProgressionTemplate) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(templates))}
	for _, t := range templates {
		if _, ok := c.byID[t.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTemplate, t.ID)
		}
		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t.clone())
	}
	return c, nil
}

// Builtin returns the catalog of built-in templates.
func Builtin() *Catalog {
	c, err := NewCatalog(builtinTemplates()...)
	if err != nil {
		panic(err)
	}
	return c
}

// With returns a new catalog holding c's templates followed by custom.
func (c *Catalog) With(custom ...ProgressionTemplate) (*Catalog, error) {
	all := make([]ProgressionTemplate, 0, len(c.templates)+len(custom))
	all = append(all, c.templates...)
	all = append(all, custom...)
	return NewCatalog(all...)
}

func (c *Catalog) All() []ProgressionTemplate {
	return c.filter(func(ProgressionTemplate) bool { return true })
}

func (c *Catalog) ByID(id string) (ProgressionTemplate, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ProgressionTemplate{}, false
	}
	return c.templates[i].clone(), true
}

func (c *Catalog) ByGoal(g Goal) []ProgressionTemplate {
	return c.filter(func(t ProgressionTemplate) bool { return t.TargetGoal == g })
}

func (c *Catalog) ByDifficulty(d Difficulty) []ProgressionTemplate {
	return c.filter(func(t ProgressionTemplate) bool { return t.Difficulty == d })
}

func (c *Catalog) ByType(pt domain.ProgressionType) []ProgressionTemplate {
	return c.filter(func(t ProgressionTemplate) bool { return t.Type == pt })
}

func (c *Catalog) filter(keep func(ProgressionTemplate) bool) []ProgressionTemplate {
	var out []ProgressionTemplate
	for _, t := range c.templates {
		if keep(t) {
			out = append(out, t.clone())
		}
	}
	return out
}

// Rescale stretches or compresses the template's pattern to n weeks by
// floor-sampling: target week i copies source week floor(i/scale). Shrinking
// skips source weeks and growing repeats them; nothing is interpolated.
func Rescale(t ProgressionTemplate, n int) []domain.IntensityParameters {
	orig := len(t.WeekPattern)
	if n < 1 || orig == 0 {
		return []domain.IntensityParameters{}
	}

	scale := float64(n) / float64(orig)
	if scale == 1 {
		return append([]domain.IntensityParameters(nil), t.WeekPattern...)
	}

	out := make([]domain.IntensityParameters, n)
	for i := range out {
		src := int(math.Floor(float64(i) / scale))
		src = max(0, min(src, orig-1))
		out[i] = t.WeekPattern[src]
	}
	return out
}

// Apply rescales template id to duration weeks and merges overrides into
// every resulting week.
func (c *Catalog) Apply(id string, duration int, overrides *domain.IntensityOverrides) ([]domain.IntensityParameters, error) {
	t, ok := c.ByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	if duration < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidDuration, duration)
	}

	weeks := Rescale(t, duration)
	if !overrides.IsZero() {
		for i := range weeks {
			weeks[i] = overrides.Apply(weeks[i])
		}
	}
	return weeks, nil
}

// ApplyProgressionTemplate applies a built-in template.
func ApplyProgressionTemplate(id string, duration int, overrides *domain.IntensityOverrides) ([]domain.IntensityParameters, error) {
	return Builtin().Apply(id, duration, overrides)
}

// WrapWeeks numbers params from week 1 and flags light weeks as deloads.
func WrapWeeks(params []domain.IntensityParameters) []domain.WeekIntensity {
	weeks := make([]domain.WeekIntensity, len(params))
	for i, p := range params {
		weeks[i] = domain.WeekIntensity{
			Week:      i + 1,
			Intensity: p,
			IsDeload:  p.IsDeloadVolume(),
		}
		if weeks[i].IsDeload {
			weeks[i].Label = domain.DeloadLabel
		}
	}
	return weeks
}
