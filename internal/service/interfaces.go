package service

import (
	"context"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/template"
)

// TemplateFilter narrows a template listing. Zero fields match everything.
type TemplateFilter struct {
	Goal       template.Goal
	Difficulty template.Difficulty
	Type       domain.ProgressionType
}

type TemplateService interface {
	List(ctx context.Context, filter TemplateFilter) ([]template.ProgressionTemplate, error)
	// Get resolves ref as a template id, a name (case-insensitive) or a
	// 1-based position in the unfiltered listing.
	Get(ctx context.Context, ref string) (*template.ProgressionTemplate, error)
	Preview(ctx context.Context, ref string, weeks int, overrides *domain.IntensityOverrides) ([]domain.WeekIntensity, error)
}

type CreateMesocycleRequest struct {
	Name      string
	StartDate time.Time
	// Weeks and Strategy fall back to the service defaults when zero.
	Weeks    int
	Strategy string
}

// MesocycleView is a mesocycle together with its stored progression.
type MesocycleView struct {
	Mesocycle   *domain.Mesocycle
	Progression domain.MesocycleProgression
	PreDeload   map[int]domain.IntensityParameters
}

// MesocycleService manages mesocycles and edits their progressions. Every
// edit loads the stored progression, applies one editor operation and saves
// the result in a single transaction. ref is a mesocycle id, a name
// (case-insensitive) or a 1-based position in List.
type MesocycleService interface {
	Create(ctx context.Context, req CreateMesocycleRequest) (*MesocycleView, error)
	Get(ctx context.Context, ref string) (*MesocycleView, error)
	List(ctx context.Context) ([]*domain.Mesocycle, error)
	Delete(ctx context.Context, ref string) error

	UpdateWeek(ctx context.Context, ref string, week int, intensity domain.IntensityParameters, isDeload *bool) (*MesocycleView, error)
	ToggleDeload(ctx context.Context, ref string, week int) (*MesocycleView, error)
	UpdateLabel(ctx context.Context, ref string, week int, label string) (*MesocycleView, error)
	UpdateNotes(ctx context.Context, ref string, week int, notes string) (*MesocycleView, error)
	ApplyPreset(ctx context.Context, ref string, week int, preset string) (*MesocycleView, error)
	ApplyAutoDeload(ctx context.Context, ref string, frequency int) (*MesocycleView, error)
	ApplyTemplate(ctx context.Context, ref string, templateRef string, overrides *domain.IntensityOverrides) (*MesocycleView, error)
	SetStrategy(ctx context.Context, ref string, strategy domain.ProgressionStrategy) (*MesocycleView, error)
	SetProgressionType(ctx context.Context, ref string, t domain.ProgressionType) (*MesocycleView, error)

	// Save stores a progression produced by an editor the caller owns.
	Save(ctx context.Context, mesocycleID string, p domain.MesocycleProgression, preDeload map[int]domain.IntensityParameters) error
}

type WorkoutTemplateService interface {
	Create(ctx context.Context, w *domain.WorkoutTemplate) error
	// Get resolves ref as an id or a label (case-insensitive).
	Get(ctx context.Context, ref string) (*domain.WorkoutTemplate, error)
	List(ctx context.Context) ([]*domain.WorkoutTemplate, error)
	Import(ctx context.Context, path string) ([]*domain.WorkoutTemplate, error)
	Delete(ctx context.Context, ref string) error
}

type ScheduleService interface {
	// Build materializes the mesocycle against every workout template and
	// replaces its stored workouts.
	Build(ctx context.Context, mesocycleRef string) ([]domain.WorkoutInstance, error)
	List(ctx context.Context, mesocycleRef string) ([]domain.WorkoutInstance, error)
	ExportICS(ctx context.Context, mesocycleRef string) (string, error)
}
