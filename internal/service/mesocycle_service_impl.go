package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/mesoplan/internal/db"
	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/progression"
	"github.com/alexanderramin/mesoplan/internal/repository"
	"github.com/alexanderramin/mesoplan/internal/template"
	"github.com/google/uuid"
)

var (
	ErrUnknownStrategy  = errors.New("unknown strategy preset")
	ErrInvalidMesocycle = errors.New("invalid mesocycle")
)

// NoStrategy creates a mesocycle whose workouts pass through unchanged.
const NoStrategy = "none"

// MesocycleDefaults fill the fields a CreateMesocycleRequest leaves empty.
type MesocycleDefaults struct {
	Weeks           int
	Strategy        string
	DeloadFrequency int
}

type mesocycleService struct {
	mesocycles   repository.MesocycleRepo
	progressions repository.ProgressionRepo
	uow          db.UnitOfWork
	catalog      *template.Catalog
	defaults     MesocycleDefaults
	logger       *slog.Logger
	observer     UseCaseObserver
}

func NewMesocycleService(
	mesocycles repository.MesocycleRepo,
	progressions repository.ProgressionRepo,
	uow db.UnitOfWork,
	catalog *template.Catalog,
	defaults MesocycleDefaults,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) MesocycleService {
	if catalog == nil {
		catalog = template.Builtin()
	}
	if defaults.Weeks < 1 {
		defaults.Weeks = 4
	}
	if defaults.DeloadFrequency < 1 {
		defaults.DeloadFrequency = domain.DefaultDeloadFrequency
	}
	return &mesocycleService{
		mesocycles:   mesocycles,
		progressions: progressions,
		uow:          uow,
		catalog:      catalog,
		defaults:     defaults,
		logger:       logger,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *mesocycleService) Create(ctx context.Context, req CreateMesocycleRequest) (view *MesocycleView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": req.Name}
	defer func() { observe(ctx, s.observer, "create-mesocycle", startedAt, fields, err) }()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidMesocycle)
	}
	weeks := req.Weeks
	if weeks == 0 {
		weeks = s.defaults.Weeks
	}
	if weeks < 1 {
		return nil, fmt.Errorf("%w (got %d)", progression.ErrInvalidWeeks, weeks)
	}
	strategyName := req.Strategy
	if strategyName == "" {
		strategyName = s.defaults.Strategy
	}
	var strategy *domain.ProgressionStrategy
	if strategyName != "" && strategyName != NoStrategy {
		preset, ok := domain.StrategyPreset(strategyName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategyName)
		}
		strategy = &preset
	}

	start := req.StartDate
	if start.IsZero() {
		start = startedAt
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	m := &domain.Mesocycle{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: start,
		Weeks:     weeks,
		CreatedAt: startedAt,
		UpdatedAt: startedAt,
	}
	editor, err := progression.New(weeks,
		progression.WithLogger(s.logger),
		progression.WithInitial(&domain.MesocycleProgression{
			ID:                  uuid.New().String(),
			MesocycleID:         m.ID,
			GlobalSettings:      domain.GlobalSettings{DeloadFrequency: s.defaults.DeloadFrequency},
			ProgressionStrategy: strategy,
		}),
	)
	if err != nil {
		return nil, err
	}
	prog := editor.Settle()
	fields["weeks"] = weeks
	fields["strategy"] = strategyName

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteMesocycleRepo(tx).Create(ctx, m); err != nil {
			return fmt.Errorf("creating mesocycle: %w", err)
		}
		rec := &repository.ProgressionRecord{Progression: prog, UpdatedAt: startedAt}
		if err := repository.NewSQLiteProgressionRepo(tx).Upsert(ctx, rec); err != nil {
			return fmt.Errorf("creating progression: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["mesocycle_id"] = m.ID
	return &MesocycleView{Mesocycle: m, Progression: prog, PreDeload: map[int]domain.IntensityParameters{}}, nil
}

func (s *mesocycleService) Get(ctx context.Context, ref string) (*MesocycleView, error) {
	m, err := resolveMesocycle(ctx, s.mesocycles, ref)
	if err != nil {
		return nil, err
	}
	rec, err := loadProgression(ctx, s.progressions, m)
	if err != nil {
		return nil, err
	}
	return &MesocycleView{Mesocycle: m, Progression: rec.Progression, PreDeload: rec.PreDeload}, nil
}

func (s *mesocycleService) List(ctx context.Context) ([]*domain.Mesocycle, error) {
	return s.mesocycles.List(ctx)
}

func (s *mesocycleService) Delete(ctx context.Context, ref string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"mesocycle": ref}
	defer func() { observe(ctx, s.observer, "delete-mesocycle", startedAt, fields, err) }()

	m, err := resolveMesocycle(ctx, s.mesocycles, ref)
	if err != nil {
		return err
	}
	fields["mesocycle_id"] = m.ID
	return s.mesocycles.Delete(ctx, m.ID)
}

func (s *mesocycleService) UpdateWeek(ctx context.Context, ref string, week int, intensity domain.IntensityParameters, isDeload *bool) (*MesocycleView, error) {
	return s.edit(ctx, ref, "update-week", map[string]any{"week": week}, func(m *domain.Mesocycle, e *progression.Editor) error {
		if err := checkWeek(m, week); err != nil {
			return err
		}
		_, err := e.UpdateWeek(week, intensity, isDeload)
		return err
	})
}

func (s *mesocycleService) ToggleDeload(ctx context.Context, ref string, week int) (*MesocycleView, error) {
	return s.edit(ctx, ref, "toggle-deload", map[string]any{"week": week}, func(m *domain.Mesocycle, e *progression.Editor) error {
		if err := checkWeek(m, week); err != nil {
			return err
		}
		_, err := e.ToggleDeload(week)
		return err
	})
}

func (s *mesocycleService) UpdateLabel(ctx context.Context, ref string, week int, label string) (*MesocycleView, error) {
	return s.edit(ctx, ref, "update-label", map[string]any{"week": week}, func(_ *domain.Mesocycle, e *progression.Editor) error {
		_, err := e.UpdateLabel(week, label)
		return err
	})
}

func (s *mesocycleService) UpdateNotes(ctx context.Context, ref string, week int, notes string) (*MesocycleView, error) {
	return s.edit(ctx, ref, "update-notes", map[string]any{"week": week}, func(_ *domain.Mesocycle, e *progression.Editor) error {
		_, err := e.UpdateNotes(week, notes)
		return err
	})
}

func (s *mesocycleService) ApplyPreset(ctx context.Context, ref string, week int, preset string) (*MesocycleView, error) {
	fields := map[string]any{"week": week, "preset": preset}
	return s.edit(ctx, ref, "apply-preset", fields, func(m *domain.Mesocycle, e *progression.Editor) error {
		if err := checkWeek(m, week); err != nil {
			return err
		}
		_, err := e.ApplyPreset(week, preset)
		return err
	})
}

func (s *mesocycleService) ApplyAutoDeload(ctx context.Context, ref string, frequency int) (*MesocycleView, error) {
	fields := map[string]any{"frequency": frequency}
	return s.edit(ctx, ref, "auto-deload", fields, func(_ *domain.Mesocycle, e *progression.Editor) error {
		if frequency == 0 {
			frequency = s.defaults.DeloadFrequency
			fields["frequency"] = frequency
		}
		e.ApplyAutoDeload(frequency)
		return nil
	})
}

func (s *mesocycleService) ApplyTemplate(ctx context.Context, ref string, templateRef string, overrides *domain.IntensityOverrides) (*MesocycleView, error) {
	fields := map[string]any{"template": templateRef}
	return s.edit(ctx, ref, "apply-template", fields, func(_ *domain.Mesocycle, e *progression.Editor) error {
		t, err := resolveTemplate(s.catalog, templateRef)
		if err != nil {
			return err
		}
		fields["template_id"] = t.ID
		_, err = e.ApplyTemplate(s.catalog, t.ID, overrides)
		return err
	})
}

func (s *mesocycleService) SetStrategy(ctx context.Context, ref string, strategy domain.ProgressionStrategy) (*MesocycleView, error) {
	fields := map[string]any{"primary": string(strategy.Primary)}
	return s.edit(ctx, ref, "set-strategy", fields, func(_ *domain.Mesocycle, e *progression.Editor) error {
		_, err := e.SetStrategy(strategy)
		return err
	})
}

func (s *mesocycleService) SetProgressionType(ctx context.Context, ref string, t domain.ProgressionType) (*MesocycleView, error) {
	return s.edit(ctx, ref, "set-progression-type", map[string]any{"type": string(t)}, func(_ *domain.Mesocycle, e *progression.Editor) error {
		_, err := e.SetProgressionType(t)
		return err
	})
}

func (s *mesocycleService) Save(ctx context.Context, mesocycleID string, p domain.MesocycleProgression, preDeload map[int]domain.IntensityParameters) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"mesocycle_id": mesocycleID, "weeks": len(p.WeeklyProgressions)}
	defer func() { observe(ctx, s.observer, "save-progression", startedAt, fields, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		mesos := repository.NewSQLiteMesocycleRepo(tx)
		m, err := mesos.GetByID(ctx, mesocycleID)
		if err != nil {
			return err
		}
		p.MesocycleID = m.ID
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		rec := &repository.ProgressionRecord{Progression: p, PreDeload: preDeload, UpdatedAt: startedAt}
		if err := repository.NewSQLiteProgressionRepo(tx).Upsert(ctx, rec); err != nil {
			return err
		}
		m.UpdatedAt = startedAt
		return mesos.Update(ctx, m)
	})
}

// edit runs op against an editor seeded from the stored progression and
// saves whatever the editor last emitted, all inside one transaction.
func (s *mesocycleService) edit(ctx context.Context, ref, name string, fields map[string]any, op func(*domain.Mesocycle, *progression.Editor) error) (view *MesocycleView, err error) {
	startedAt := time.Now().UTC()
	fields["mesocycle"] = ref
	defer func() { observe(ctx, s.observer, name, startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		mesos := repository.NewSQLiteMesocycleRepo(tx)
		progs := repository.NewSQLiteProgressionRepo(tx)

		m, err := resolveMesocycle(ctx, mesos, ref)
		if err != nil {
			return err
		}
		rec, err := loadProgression(ctx, progs, m)
		if err != nil {
			return err
		}

		var latest domain.MesocycleProgression
		editor, err := progression.New(m.Weeks,
			progression.WithInitial(&rec.Progression),
			progression.WithPreDeload(rec.PreDeload),
			progression.WithLogger(s.logger),
			progression.WithListener(func(p domain.MesocycleProgression) { latest = p }),
		)
		if err != nil {
			return err
		}
		editor.Settle()
		if err := op(m, editor); err != nil {
			return err
		}

		saved := &repository.ProgressionRecord{Progression: latest, PreDeload: editor.PreDeload(), UpdatedAt: startedAt}
		if err := progs.Upsert(ctx, saved); err != nil {
			return err
		}
		m.UpdatedAt = startedAt
		if err := mesos.Update(ctx, m); err != nil {
			return err
		}
		fields["mesocycle_id"] = m.ID
		view = &MesocycleView{Mesocycle: m, Progression: latest, PreDeload: saved.PreDeload}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func checkWeek(m *domain.Mesocycle, week int) error {
	if week < 1 {
		return fmt.Errorf("%w (got %d)", progression.ErrWeekOutOfRange, week)
	}
	if week > m.Weeks {
		return fmt.Errorf("%w: %d (%s has %d weeks)", progression.ErrWeekNotFound, week, m.Name, m.Weeks)
	}
	return nil
}

// resolveMesocycle finds a mesocycle by id, case-insensitive name, or
// 1-based position in the listing.
func resolveMesocycle(ctx context.Context, repo repository.MesocycleRepo, ref string) (*domain.Mesocycle, error) {
	input := strings.TrimSpace(ref)
	if input == "" {
		return nil, fmt.Errorf("mesocycle: %w: empty reference", repository.ErrNotFound)
	}
	m, err := repo.GetByID(ctx, input)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	m, err = repo.GetByName(ctx, input)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if n, convErr := strconv.Atoi(input); convErr == nil && n >= 1 {
		all, err := repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if n <= len(all) {
			return all[n-1], nil
		}
	}
	return nil, fmt.Errorf("mesocycle %q: %w", input, repository.ErrNotFound)
}

// loadProgression returns the stored progression, or a default one when
// none has been saved yet.
func loadProgression(ctx context.Context, repo repository.ProgressionRepo, m *domain.Mesocycle) (*repository.ProgressionRecord, error) {
	rec, err := repo.GetByMesocycle(ctx, m.ID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	weeks := domain.DefaultWeeks(m.Weeks)
	return &repository.ProgressionRecord{
		Progression: domain.MesocycleProgression{
			ID:                 uuid.New().String(),
			MesocycleID:        m.ID,
			BaselineWeek:       weeks[0],
			WeeklyProgressions: weeks,
			ProgressionType:    domain.ProgressionLinear,
			GlobalSettings:     domain.DefaultGlobalSettings(),
		},
		PreDeload: map[int]domain.IntensityParameters{},
	}, nil
}
