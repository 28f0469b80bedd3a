package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mesoplan/internal/db"
	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/importer"
	"github.com/alexanderramin/mesoplan/internal/repository"
	"github.com/google/uuid"
)

var ErrInvalidWorkout = errors.New("invalid workout template")

type workoutTemplateService struct {
	templates repository.WorkoutTemplateRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewWorkoutTemplateService(templates repository.WorkoutTemplateRepo, uow db.UnitOfWork, observers ...UseCaseObserver) WorkoutTemplateService {
	return &workoutTemplateService{
		templates: templates,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *workoutTemplateService) Create(ctx context.Context, w *domain.WorkoutTemplate) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"label": w.Label}
	defer func() { observe(ctx, s.observer, "create-workout", startedAt, fields, err) }()

	if err := validateWorkout(w); err != nil {
		return err
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = startedAt
	}
	fields["exercises"] = len(w.Exercises)
	return s.templates.Create(ctx, w)
}

func (s *workoutTemplateService) Get(ctx context.Context, ref string) (*domain.WorkoutTemplate, error) {
	input := strings.TrimSpace(ref)
	w, err := s.templates.GetByID(ctx, input)
	if errors.Is(err, repository.ErrNotFound) {
		return s.templates.GetByLabel(ctx, input)
	}
	return w, err
}

func (s *workoutTemplateService) List(ctx context.Context) ([]*domain.WorkoutTemplate, error) {
	return s.templates.List(ctx)
}

// Import loads a workout YAML file and stores every workout in it, or
// none if any fails.
func (s *workoutTemplateService) Import(ctx context.Context, path string) (created []*domain.WorkoutTemplate, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	defer func() { observe(ctx, s.observer, "import-workouts", startedAt, fields, err) }()

	file, err := importer.LoadWorkoutFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading workout file: %w", err)
	}
	if errs := importer.ValidateWorkoutFile(file); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkout, errors.Join(errs...))
	}

	nonstandard := 0
	for _, w := range file.Workouts {
		for _, ex := range w.Exercises {
			if !ex.Standard() {
				nonstandard++
			}
		}
	}
	fields["nonstandard_exercises"] = nonstandard

	created = importer.Convert(file)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteWorkoutTemplateRepo(tx)
		for _, w := range created {
			if err := repo.Create(ctx, w); err != nil {
				return fmt.Errorf("creating workout %q: %w", w.Label, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["workouts"] = len(created)
	return created, nil
}

func (s *workoutTemplateService) Delete(ctx context.Context, ref string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"workout": ref}
	defer func() { observe(ctx, s.observer, "delete-workout", startedAt, fields, err) }()

	w, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}
	return s.templates.Delete(ctx, w.ID)
}

func validateWorkout(w *domain.WorkoutTemplate) error {
	w.Label = strings.TrimSpace(w.Label)
	switch {
	case w.Label == "":
		return fmt.Errorf("%w: label is required", ErrInvalidWorkout)
	case len(w.Days) == 0:
		return fmt.Errorf("%w: at least one day is required", ErrInvalidWorkout)
	case len(w.Exercises) == 0:
		return fmt.Errorf("%w: at least one exercise is required", ErrInvalidWorkout)
	}
	for i, ex := range w.Exercises {
		if strings.TrimSpace(ex.Name) == "" || ex.Sets < 1 || strings.TrimSpace(ex.Reps) == "" {
			return fmt.Errorf("%w: exercise %d needs a name, sets and reps", ErrInvalidWorkout, i+1)
		}
	}
	return nil
}
