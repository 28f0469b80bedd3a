package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/mesoplan/internal/calendar"
	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutTemplateRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteWorkoutTemplateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	w := testutil.NewTestWorkoutTemplate("Lower A", testutil.WithDays(time.Tuesday, time.Saturday))
	w.Exercises[1].RPE = domain.Ptr(8.5)
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lower A", got.Label)
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Saturday}, got.Days)
	assert.Equal(t, w.Exercises, got.Exercises)

	byLabel, err := repo.GetByLabel(ctx, "lower a")
	require.NoError(t, err)
	assert.Equal(t, w.ID, byLabel.ID)
}

func TestWorkoutTemplateRepo_DuplicateLabelRejected(t *testing.T) {
	repo := NewSQLiteWorkoutTemplateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkoutTemplate("Push")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestWorkoutTemplate("Push")))
}

func TestWorkoutTemplateRepo_ListAndDelete(t *testing.T) {
	repo := NewSQLiteWorkoutTemplateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestWorkoutTemplate("Upper")
	b := testutil.NewTestWorkoutTemplate("Lower")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Upper", list[0].Label)

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), ErrNotFound)
}

func TestWorkoutInstanceRepo_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	m := testutil.NewTestMesocycle("Block", testutil.WithWeeks(2))
	require.NoError(t, NewSQLiteMesocycleRepo(database).Create(ctx, m))
	w := testutil.NewTestWorkoutTemplate("Full Body")
	require.NoError(t, NewSQLiteWorkoutTemplateRepo(database).Create(ctx, w))

	instances := calendar.Materialize(m.StartDate, m.Weeks, []domain.WorkoutTemplate{*w}, nil)
	require.NotEmpty(t, instances)
	now := time.Now().UTC().Truncate(time.Second)
	for i := range instances {
		instances[i].ID = uuid.New().String()
		instances[i].MesocycleID = m.ID
		instances[i].CreatedAt = now
	}
	instances[len(instances)-1].IsDeload = true

	repo := NewSQLiteWorkoutInstanceRepo(database)
	require.NoError(t, repo.CreateBatch(ctx, instances))

	got, err := repo.ListByMesocycle(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got, len(instances))
	for i := range got {
		assert.Equal(t, instances[i].Label, got[i].Label)
		assert.True(t, instances[i].Date.Equal(got[i].Date))
		assert.Equal(t, instances[i].Exercises, got[i].Exercises)
	}
	assert.True(t, got[len(got)-1].IsDeload)

	n, err := repo.DeleteByMesocycle(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(instances)), n)
}

func TestWorkoutInstanceRepo_DeletingTemplateCascades(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	m := testutil.NewTestMesocycle("Block", testutil.WithWeeks(1))
	require.NoError(t, NewSQLiteMesocycleRepo(database).Create(ctx, m))
	templates := NewSQLiteWorkoutTemplateRepo(database)
	w := testutil.NewTestWorkoutTemplate("Arms")
	require.NoError(t, templates.Create(ctx, w))

	repo := NewSQLiteWorkoutInstanceRepo(database)
	require.NoError(t, repo.CreateBatch(ctx, []domain.WorkoutInstance{{
		ID: uuid.New().String(), MesocycleID: m.ID, TemplateID: w.ID,
		Label: "Arms - Week 1", Date: m.StartDate, Week: 1, CreatedAt: time.Now(),
	}}))

	require.NoError(t, templates.Delete(ctx, w.ID))

	got, err := repo.ListByMesocycle(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
