package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
)

var ErrNotFound = errors.New("not found")

// ProgressionRecord is a stored progression together with the deload
// snapshots that let later sessions restore a week leaving deload.
type ProgressionRecord struct {
	Progression domain.MesocycleProgression
	PreDeload   map[int]domain.IntensityParameters
	UpdatedAt   time.Time
}

type MesocycleRepo interface {
	Create(ctx context.Context, m *domain.Mesocycle) error
	GetByID(ctx context.Context, id string) (*domain.Mesocycle, error)
	GetByName(ctx context.Context, name string) (*domain.Mesocycle, error)
	List(ctx context.Context) ([]*domain.Mesocycle, error)
	Update(ctx context.Context, m *domain.Mesocycle) error
	Delete(ctx context.Context, id string) error
}

type ProgressionRepo interface {
	GetByMesocycle(ctx context.Context, mesocycleID string) (*ProgressionRecord, error)
	Upsert(ctx context.Context, rec *ProgressionRecord) error
}

type WorkoutTemplateRepo interface {
	Create(ctx context.Context, w *domain.WorkoutTemplate) error
	GetByID(ctx context.Context, id string) (*domain.WorkoutTemplate, error)
	GetByLabel(ctx context.Context, label string) (*domain.WorkoutTemplate, error)
	List(ctx context.Context) ([]*domain.WorkoutTemplate, error)
	Delete(ctx context.Context, id string) error
}

type WorkoutInstanceRepo interface {
	CreateBatch(ctx context.Context, instances []domain.WorkoutInstance) error
	ListByMesocycle(ctx context.Context, mesocycleID string) ([]domain.WorkoutInstance, error)
	DeleteByMesocycle(ctx context.Context, mesocycleID string) (int64, error)
}
