package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mesoplan/internal/db"
	"github.com/alexanderramin/mesoplan/internal/domain"
)

type SQLiteWorkoutInstanceRepo struct {
	db db.DBTX
}

func NewSQLiteWorkoutInstanceRepo(conn db.DBTX) *SQLiteWorkoutInstanceRepo {
	return &SQLiteWorkoutInstanceRepo{db: conn}
}

// CreateBatch inserts instances in order. Run it inside a UnitOfWork to
// make the batch atomic.
func (r *SQLiteWorkoutInstanceRepo) CreateBatch(ctx context.Context, instances []domain.WorkoutInstance) error {
	query := `INSERT INTO workout_instances (id, mesocycle_id, template_id, label, date, week, is_deload, exercises, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range instances {
		inst := &instances[i]
		exercises := inst.Exercises
		if exercises == nil {
			exercises = []domain.ResolvedExercise{}
		}
		exercisesJSON, err := encodeJSON(exercises, "exercises")
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, query,
			inst.ID,
			inst.MesocycleID,
			inst.TemplateID,
			inst.Label,
			inst.Date.Format(dateLayout),
			inst.Week,
			boolToInt(inst.IsDeload),
			exercisesJSON,
			inst.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting workout instance %s: %w", inst.Label, err)
		}
	}
	return nil
}

// ListByMesocycle returns a mesocycle's workouts ordered by date. Same-day
// workouts keep their insertion order.
func (r *SQLiteWorkoutInstanceRepo) ListByMesocycle(ctx context.Context, mesocycleID string) ([]domain.WorkoutInstance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, mesocycle_id, template_id, label, date, week, is_deload, exercises, created_at
		FROM workout_instances WHERE mesocycle_id = ? ORDER BY date, rowid`, mesocycleID)
	if err != nil {
		return nil, fmt.Errorf("listing workout instances: %w", err)
	}
	defer rows.Close()

	var out []domain.WorkoutInstance
	for rows.Next() {
		var inst domain.WorkoutInstance
		var date, exercises, created string
		var deload int
		if err := rows.Scan(&inst.ID, &inst.MesocycleID, &inst.TemplateID, &inst.Label,
			&date, &inst.Week, &deload, &exercises, &created); err != nil {
			return nil, fmt.Errorf("scanning workout instance row: %w", err)
		}
		inst.IsDeload = intToBool(deload)
		if inst.Date, err = parseTime(date, dateLayout, "date"); err != nil {
			return nil, err
		}
		if inst.CreatedAt, err = parseTime(created, time.RFC3339, "created_at"); err != nil {
			return nil, err
		}
		if err := decodeJSON(exercises, &inst.Exercises, "exercises"); err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workout instances: %w", err)
	}
	return out, nil
}

func (r *SQLiteWorkoutInstanceRepo) DeleteByMesocycle(ctx context.Context, mesocycleID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workout_instances WHERE mesocycle_id = ?`, mesocycleID)
	if err != nil {
		return 0, fmt.Errorf("deleting workout instances: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking deleted workout instances: %w", err)
	}
	return n, nil
}
