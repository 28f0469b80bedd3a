package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mesoplan/internal/db"
	"github.com/alexanderramin/mesoplan/internal/domain"
)

type SQLiteWorkoutTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteWorkoutTemplateRepo(conn db.DBTX) *SQLiteWorkoutTemplateRepo {
	return &SQLiteWorkoutTemplateRepo{db: conn}
}

const workoutTemplateColumns = `id, label, days, exercises, created_at`

func (r *SQLiteWorkoutTemplateRepo) Create(ctx context.Context, w *domain.WorkoutTemplate) error {
	days, err := encodeJSON(domain.WeekdayNames(w.Days), "days")
	if err != nil {
		return err
	}
	exercises := w.Exercises
	if exercises == nil {
		exercises = []domain.ExerciseDefaults{}
	}
	exercisesJSON, err := encodeJSON(exercises, "exercises")
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO workout_templates (`+workoutTemplateColumns+`) VALUES (?, ?, ?, ?, ?)`,
		w.ID, w.Label, days, exercisesJSON, w.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting workout template: %w", err)
	}
	return nil
}

func (r *SQLiteWorkoutTemplateRepo) GetByID(ctx context.Context, id string) (*domain.WorkoutTemplate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workoutTemplateColumns+` FROM workout_templates WHERE id = ?`, id)
	w, err := scanWorkoutTemplate(row)
	if err != nil {
		return nil, notFound("workout template", err)
	}
	return w, nil
}

func (r *SQLiteWorkoutTemplateRepo) GetByLabel(ctx context.Context, label string) (*domain.WorkoutTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+workoutTemplateColumns+` FROM workout_templates WHERE LOWER(label) = LOWER(?)`, label)
	w, err := scanWorkoutTemplate(row)
	if err != nil {
		return nil, notFound("workout template", err)
	}
	return w, nil
}

// List returns templates in creation order, which is also the order
// same-day workouts are materialized in.
func (r *SQLiteWorkoutTemplateRepo) List(ctx context.Context) ([]*domain.WorkoutTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+workoutTemplateColumns+` FROM workout_templates ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing workout templates: %w", err)
	}
	defer rows.Close()

	var out []*domain.WorkoutTemplate
	for rows.Next() {
		w, err := scanWorkoutTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout template row: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workout templates: %w", err)
	}
	return out, nil
}

func (r *SQLiteWorkoutTemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workout_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting workout template: %w", err)
	}
	return checkAffected(res, "workout template")
}

func scanWorkoutTemplate(s scanner) (*domain.WorkoutTemplate, error) {
	var w domain.WorkoutTemplate
	var days, exercises, created string
	if err := s.Scan(&w.ID, &w.Label, &days, &exercises, &created); err != nil {
		return nil, err
	}

	var names []string
	if err := decodeJSON(days, &names, "days"); err != nil {
		return nil, err
	}
	for _, n := range names {
		d, err := domain.ParseWeekday(n)
		if err != nil {
			return nil, fmt.Errorf("decoding days: %w", err)
		}
		w.Days = append(w.Days, d)
	}
	if err := decodeJSON(exercises, &w.Exercises, "exercises"); err != nil {
		return nil, err
	}
	var err error
	if w.CreatedAt, err = parseTime(created, time.RFC3339, "created_at"); err != nil {
		return nil, err
	}
	return &w, nil
}
