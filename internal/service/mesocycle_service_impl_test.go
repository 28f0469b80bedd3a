package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/progression"
	"github.com/alexanderramin/mesoplan/internal/repository"
	"github.com/alexanderramin/mesoplan/internal/template"
	"github.com/alexanderramin/mesoplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMesocycleService_CreateAppliesDefaults(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	view, err := s.mesocycles.Create(ctx, CreateMesocycleRequest{
		Name:      "  Spring Block ",
		StartDate: wednesday.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, "Spring Block", view.Mesocycle.Name)
	assert.Equal(t, 4, view.Mesocycle.Weeks)
	assert.Equal(t, wednesday, view.Mesocycle.StartDate)
	assert.Len(t, view.Progression.WeeklyProgressions, 4)
	assert.Equal(t, domain.ProgressionLinear, view.Progression.ProgressionType)
	require.NotNil(t, view.Progression.ProgressionStrategy)
	assert.Equal(t, domain.FocusWeight, view.Progression.ProgressionStrategy.Primary)
	assert.Equal(t, 4, view.Progression.GlobalSettings.DeloadFrequency)

	stored, err := s.mesocycles.Get(ctx, view.Mesocycle.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Progression.ID, stored.Progression.ID)
	assert.Equal(t, view.Progression.WeeklyProgressions, stored.Progression.WeeklyProgressions)

	ev := s.observer.last()
	assert.Equal(t, "create-mesocycle", ev.Name)
	assert.Equal(t, view.Mesocycle.ID, ev.Fields["mesocycle_id"])
}

func TestMesocycleService_CreateWithoutStrategy(t *testing.T) {
	s := setupServices(t)
	view, err := s.mesocycles.Create(context.Background(), CreateMesocycleRequest{
		Name: "Plain", Weeks: 6, Strategy: NoStrategy,
	})
	require.NoError(t, err)
	assert.Nil(t, view.Progression.ProgressionStrategy)
	assert.Len(t, view.Progression.WeeklyProgressions, 6)
	assert.False(t, view.Mesocycle.StartDate.IsZero(), "start defaults to today")
}

func TestMesocycleService_CreateRejectsBadInput(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.mesocycles.Create(ctx, CreateMesocycleRequest{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidMesocycle)

	_, err = s.mesocycles.Create(ctx, CreateMesocycleRequest{Name: "Bad", Strategy: "powerbuilding"})
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = s.mesocycles.Create(ctx, CreateMesocycleRequest{Name: "Bad", Weeks: -2})
	assert.ErrorIs(t, err, progression.ErrInvalidWeeks)

	all, err := s.mesocycles.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.False(t, s.observer.last().Success)
}

func TestMesocycleService_GetResolvesRefs(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	first := s.createBlock(t, "Base", 4)
	second := s.createBlock(t, "Peak", 3)

	byName, err := s.mesocycles.Get(ctx, "peak")
	require.NoError(t, err)
	assert.Equal(t, second.Mesocycle.ID, byName.Mesocycle.ID)

	byIndex, err := s.mesocycles.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, first.Mesocycle.ID, byIndex.Mesocycle.ID)

	_, err = s.mesocycles.Get(ctx, "3")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.mesocycles.Get(ctx, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMesocycleService_ToggleDeloadRestoresAcrossCalls(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	block := s.createBlock(t, "Base", 4)

	heavy := domain.IntensityParameters{Volume: 110, Weight: 107.5, RIR: 1, RPE: 8.5, Sets: 1.1, RepsModifier: 1}
	_, err := s.mesocycles.UpdateWeek(ctx, "Base", 3, heavy, nil)
	require.NoError(t, err)

	view, err := s.mesocycles.ToggleDeload(ctx, block.Mesocycle.ID, 3)
	require.NoError(t, err)
	w3, _ := view.Progression.Week(3)
	assert.True(t, w3.IsDeload)
	assert.Equal(t, domain.DeloadIntensity(), w3.Intensity)
	assert.Equal(t, domain.DeloadLabel, w3.Label)
	assert.Equal(t, heavy, view.PreDeload[3])

	view, err = s.mesocycles.ToggleDeload(ctx, block.Mesocycle.ID, 3)
	require.NoError(t, err)
	w3, _ = view.Progression.Week(3)
	assert.False(t, w3.IsDeload)
	assert.Equal(t, heavy, w3.Intensity)
	assert.Empty(t, w3.Label)
	assert.NotContains(t, view.PreDeload, 3)

	stored, err := s.mesocycles.Get(ctx, "Base")
	require.NoError(t, err)
	w3, _ = stored.Progression.Week(3)
	assert.Equal(t, heavy, w3.Intensity)
	assert.Empty(t, stored.PreDeload)
}

func TestMesocycleService_WeekBounds(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.createBlock(t, "Base", 4)

	_, err := s.mesocycles.ToggleDeload(ctx, "Base", 5)
	assert.ErrorIs(t, err, progression.ErrWeekNotFound)

	_, err = s.mesocycles.UpdateWeek(ctx, "Base", 0, domain.DefaultIntensity(), nil)
	assert.ErrorIs(t, err, progression.ErrWeekOutOfRange)

	_, err = s.mesocycles.UpdateLabel(ctx, "Base", 9, "Test Week")
	assert.ErrorIs(t, err, progression.ErrWeekNotFound)

	view, err := s.mesocycles.Get(ctx, "Base")
	require.NoError(t, err)
	assert.Len(t, view.Progression.WeeklyProgressions, 4)
}

func TestMesocycleService_LabelsAndNotes(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.createBlock(t, "Base", 4)

	_, err := s.mesocycles.UpdateLabel(ctx, "Base", 2, "Opener")
	require.NoError(t, err)
	view, err := s.mesocycles.UpdateNotes(ctx, "Base", 2, "Keep bar speed high")
	require.NoError(t, err)

	w2, ok := view.Progression.Week(2)
	require.True(t, ok)
	assert.Equal(t, "Opener", w2.Label)
	assert.Equal(t, "Keep bar speed high", w2.Notes)
}

func TestMesocycleService_ApplyPreset(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.createBlock(t, "Base", 4)

	view, err := s.mesocycles.ApplyPreset(ctx, "Base", 2, "Hard")
	require.NoError(t, err)
	w2, _ := view.Progression.Week(2)
	assert.Equal(t, "Hard Week", w2.Label)
	assert.Equal(t, 105.0, w2.Intensity.Weight)
	assert.Equal(t, 1, w2.Intensity.RIR)

	before, err := s.mesocycles.Get(ctx, "Base")
	require.NoError(t, err)
	_, err = s.mesocycles.ApplyPreset(ctx, "Base", 2, "brutal")
	assert.ErrorIs(t, err, progression.ErrUnknownPreset)
	after, err := s.mesocycles.Get(ctx, "Base")
	require.NoError(t, err)
	assert.Equal(t, before.Progression, after.Progression)
}

func TestMesocycleService_ApplyAutoDeload(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.createBlock(t, "Long", 8)

	view, err := s.mesocycles.ApplyAutoDeload(ctx, "Long", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6}, view.Progression.DeloadWeeks())
	assert.True(t, view.Progression.GlobalSettings.AutoDeload)
	assert.Equal(t, 3, view.Progression.GlobalSettings.DeloadFrequency)

	view, err = s.mesocycles.ApplyAutoDeload(ctx, "Long", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 6, 8}, view.Progression.DeloadWeeks())
	assert.Equal(t, 4, s.observer.last().Fields["frequency"])
}

func TestMesocycleService_ApplyTemplate(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.createBlock(t, "Base", 4)

	view, err := s.mesocycles.ApplyTemplate(ctx, "Base", "Step Loading", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressionStep, view.Progression.ProgressionType)
	assert.Equal(t, []int{4}, view.Progression.DeloadWeeks())
	assert.Equal(t, "step-loading", s.observer.last().Fields["template_id"])

	view, err = s.mesocycles.ApplyTemplate(ctx, "Base", "1", &domain.IntensityOverrides{RIR: domain.Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressionLinear, view.Progression.ProgressionType)
	for _, w := range view.Progression.WeeklyProgressions {
		assert.Equal(t, 3, w.Intensity.RIR, "week %d", w.Week)
	}

	_, err = s.mesocycles.ApplyTemplate(ctx, "Base", "no-such-template", nil)
	assert.ErrorIs(t, err, template.ErrTemplateNotFound)
}

func TestMesocycleService_StrategyAndType(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.createBlock(t, "Base", 4)

	view, err := s.mesocycles.SetStrategy(ctx, "Base", domain.ConditioningStrategy())
	require.NoError(t, err)
	assert.Equal(t, domain.FocusDensity, view.Progression.ProgressionStrategy.Primary)

	_, err = s.mesocycles.SetStrategy(ctx, "Base", domain.ProgressionStrategy{Primary: "speed"})
	assert.Error(t, err)

	view, err = s.mesocycles.SetProgressionType(ctx, "Base", domain.ProgressionWave)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressionWave, view.Progression.ProgressionType)

	_, err = s.mesocycles.SetProgressionType(ctx, "Base", "zigzag")
	assert.Error(t, err)
}

func TestMesocycleService_SaveEditorOutput(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	block := s.createBlock(t, "Base", 4)

	var latest domain.MesocycleProgression
	e, err := progression.New(4,
		progression.WithInitial(&block.Progression),
		progression.WithListener(func(p domain.MesocycleProgression) { latest = p }),
	)
	require.NoError(t, err)
	e.Settle()
	_, err = e.ToggleDeload(2)
	require.NoError(t, err)

	require.NoError(t, s.mesocycles.Save(ctx, block.Mesocycle.ID, latest, e.PreDeload()))

	stored, err := s.mesocycles.Get(ctx, "Base")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, stored.Progression.DeloadWeeks())
	assert.Equal(t, domain.DefaultIntensity(), stored.PreDeload[2])
	assert.Equal(t, block.Progression.ID, stored.Progression.ID)

	err = s.mesocycles.Save(ctx, "missing", latest, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMesocycleService_EditRollsBackOnWriteFailure(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.createBlock(t, "Base", 4)

	boom := errors.New("disk full")
	failing := buildServices(s.db, &testutil.FailOnNthExecUoW{DB: s.db, FailOn: 2, Err: boom})

	_, err := failing.mesocycles.ToggleDeload(ctx, "Base", 2)
	require.ErrorIs(t, err, boom)

	view, err := s.mesocycles.Get(ctx, "Base")
	require.NoError(t, err)
	assert.Empty(t, view.Progression.DeloadWeeks(), "progression write rolled back with the mesocycle update")
	assert.Empty(t, view.PreDeload)
}

func TestMesocycleService_Delete(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.createBlock(t, "Base", 4)

	require.NoError(t, s.mesocycles.Delete(ctx, "base"))
	_, err := s.mesocycles.Get(ctx, "Base")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM mesocycle_progressions`).Scan(&n))
	assert.Zero(t, n)

	assert.ErrorIs(t, s.mesocycles.Delete(ctx, "base"), repository.ErrNotFound)
}
