package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mesoplan/internal/calendar"
	"github.com/alexanderramin/mesoplan/internal/db"
	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/repository"
	"github.com/google/uuid"
)

// scheduleService reads through the given repositories; Build writes
// through repositories bound to its own transaction.
type scheduleService struct {
	mesocycles repository.MesocycleRepo
	instances  repository.WorkoutInstanceRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
	now        func() time.Time
}

func NewScheduleService(
	mesocycles repository.MesocycleRepo,
	instances repository.WorkoutInstanceRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		mesocycles: mesocycles,
		instances:  instances,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
		now:        time.Now,
	}
}

func (s *scheduleService) Build(ctx context.Context, mesocycleRef string) (instances []domain.WorkoutInstance, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"mesocycle": mesocycleRef}
	defer func() { observe(ctx, s.observer, "build-schedule", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		m, err := resolveMesocycle(ctx, repository.NewSQLiteMesocycleRepo(tx), mesocycleRef)
		if err != nil {
			return err
		}
		rec, err := loadProgression(ctx, repository.NewSQLiteProgressionRepo(tx), m)
		if err != nil {
			return err
		}
		stored, err := repository.NewSQLiteWorkoutTemplateRepo(tx).List(ctx)
		if err != nil {
			return err
		}
		templates := make([]domain.WorkoutTemplate, len(stored))
		for i, t := range stored {
			templates[i] = *t
		}

		instances = calendar.Materialize(m.StartDate, m.Weeks, templates, &rec.Progression)
		for i := range instances {
			instances[i].ID = uuid.New().String()
			instances[i].MesocycleID = m.ID
			instances[i].CreatedAt = startedAt
		}

		repo := repository.NewSQLiteWorkoutInstanceRepo(tx)
		replaced, err := repo.DeleteByMesocycle(ctx, m.ID)
		if err != nil {
			return err
		}
		if err := repo.CreateBatch(ctx, instances); err != nil {
			return err
		}
		fields["mesocycle_id"] = m.ID
		fields["templates"] = len(templates)
		fields["replaced"] = replaced
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["workouts"] = len(instances)
	return instances, nil
}

func (s *scheduleService) List(ctx context.Context, mesocycleRef string) ([]domain.WorkoutInstance, error) {
	m, err := resolveMesocycle(ctx, s.mesocycles, mesocycleRef)
	if err != nil {
		return nil, err
	}
	return s.instances.ListByMesocycle(ctx, m.ID)
}

// ExportICS renders the stored workouts of a mesocycle. Build first; a
// mesocycle with no stored workouts exports an empty calendar.
func (s *scheduleService) ExportICS(ctx context.Context, mesocycleRef string) (feed string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"mesocycle": mesocycleRef}
	defer func() { observe(ctx, s.observer, "export-ics", startedAt, fields, err) }()

	m, err := resolveMesocycle(ctx, s.mesocycles, mesocycleRef)
	if err != nil {
		return "", err
	}
	instances, err := s.instances.ListByMesocycle(ctx, m.ID)
	if err != nil {
		return "", fmt.Errorf("loading workouts: %w", err)
	}
	fields["workouts"] = len(instances)
	return calendar.EncodeICS(instances, calendar.ICSOptions{CalendarName: m.Name, Now: s.now()}), nil
}
