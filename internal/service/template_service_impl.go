package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/template"
)

type templateService struct {
	catalog  *template.Catalog
	observer UseCaseObserver
}

func NewTemplateService(catalog *template.Catalog, observers ...UseCaseObserver) TemplateService {
	if catalog == nil {
		catalog = template.Builtin()
	}
	return &templateService{
		catalog:  catalog,
		observer: useCaseObserverOrNoop(observers),
	}
}

// LoadCatalog layers the custom templates in dir over the built-ins. Files
// that fail to load are skipped; their errors are returned alongside the
// usable catalog.
func LoadCatalog(dir string) (*template.Catalog, error) {
	builtin := template.Builtin()
	if dir == "" {
		return builtin, nil
	}
	custom, loadErr := template.LoadDir(dir)
	catalog, err := builtin.With(custom...)
	if err != nil {
		return builtin, fmt.Errorf("loading templates from %s: %w", dir, err)
	}
	if loadErr != nil {
		return catalog, fmt.Errorf("loading templates from %s: %w", dir, loadErr)
	}
	return catalog, nil
}

func (s *templateService) List(ctx context.Context, filter TemplateFilter) ([]template.ProgressionTemplate, error) {
	var matches [][]template.ProgressionTemplate
	if filter.Goal != "" {
		matches = append(matches, s.catalog.ByGoal(filter.Goal))
	}
	if filter.Difficulty != "" {
		matches = append(matches, s.catalog.ByDifficulty(filter.Difficulty))
	}
	if filter.Type != "" {
		matches = append(matches, s.catalog.ByType(filter.Type))
	}
	if len(matches) == 0 {
		return s.catalog.All(), nil
	}

	out := matches[0]
	for _, next := range matches[1:] {
		out = intersectTemplates(out, next)
	}
	return out, nil
}

// intersectTemplates keeps the templates of a that are also in b, in a's order.
func intersectTemplates(a, b []template.ProgressionTemplate) []template.ProgressionTemplate {
	inB := make(map[string]bool, len(b))
	for _, t := range b {
		inB[t.ID] = true
	}
	var out []template.ProgressionTemplate
	for _, t := range a {
		if inB[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

func (s *templateService) Get(ctx context.Context, ref string) (*template.ProgressionTemplate, error) {
	return resolveTemplate(s.catalog, ref)
}

func (s *templateService) Preview(ctx context.Context, ref string, weeks int, overrides *domain.IntensityOverrides) (preview []domain.WeekIntensity, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"template": ref, "weeks": weeks}
	defer func() { observe(ctx, s.observer, "preview-template", startedAt, fields, err) }()

	t, err := resolveTemplate(s.catalog, ref)
	if err != nil {
		return nil, err
	}
	params, err := s.catalog.Apply(t.ID, weeks, overrides)
	if err != nil {
		return nil, err
	}
	preview = template.WrapWeeks(params)
	fields["deload_weeks"] = countDeloads(preview)
	return preview, nil
}

// resolveTemplate finds a template by id, case-insensitive name, or
// 1-based position in catalog order.
func resolveTemplate(catalog *template.Catalog, ref string) (*template.ProgressionTemplate, error) {
	input := strings.TrimSpace(ref)
	if input == "" {
		return nil, fmt.Errorf("%w: empty template reference", template.ErrTemplateNotFound)
	}
	if t, ok := catalog.ByID(input); ok {
		return &t, nil
	}

	all := catalog.All()
	for i := range all {
		if strings.EqualFold(all[i].ID, input) || strings.EqualFold(all[i].Name, input) {
			return &all[i], nil
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(all) {
		return &all[n-1], nil
	}
	return nil, fmt.Errorf("%w: %s", template.ErrTemplateNotFound, input)
}

func countDeloads(weeks []domain.WeekIntensity) int {
	n := 0
	for _, w := range weeks {
		if w.IsDeload {
			n++
		}
	}
	return n
}
