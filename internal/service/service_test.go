package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/mesoplan/internal/db"
	"github.com/alexanderramin/mesoplan/internal/repository"
	"github.com/alexanderramin/mesoplan/internal/template"
	"github.com/alexanderramin/mesoplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		return UseCaseEvent{}
	}
	return o.events[len(o.events)-1]
}

type services struct {
	db         *sql.DB
	observer   *recordingObserver
	templates  TemplateService
	mesocycles MesocycleService
	workouts   WorkoutTemplateService
	schedule   ScheduleService
}

func setupServices(t *testing.T) *services {
	t.Helper()
	database := testutil.NewTestDB(t)
	return buildServices(database, testutil.NewTestUoW(database))
}

func buildServices(database *sql.DB, uow db.UnitOfWork) *services {
	obs := &recordingObserver{}
	catalog := template.Builtin()
	mesocycles := repository.NewSQLiteMesocycleRepo(database)
	return &services{
		db:        database,
		observer:  obs,
		templates: NewTemplateService(catalog, obs),
		mesocycles: NewMesocycleService(
			mesocycles,
			repository.NewSQLiteProgressionRepo(database),
			uow,
			catalog,
			MesocycleDefaults{Weeks: 4, Strategy: "strength", DeloadFrequency: 4},
			nil,
			obs,
		),
		workouts: NewWorkoutTemplateService(repository.NewSQLiteWorkoutTemplateRepo(database), uow, obs),
		schedule: NewScheduleService(mesocycles, repository.NewSQLiteWorkoutInstanceRepo(database), uow, obs),
	}
}

// wednesday is 2026-03-04.
var wednesday = time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

func (s *services) createBlock(t *testing.T, name string, weeks int) *MesocycleView {
	t.Helper()
	view, err := s.mesocycles.Create(context.Background(), CreateMesocycleRequest{
		Name:      name,
		StartDate: wednesday,
		Weeks:     weeks,
	})
	require.NoError(t, err)
	return view
}
