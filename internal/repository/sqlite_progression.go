package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mesoplan/internal/db"
	"github.com/alexanderramin/mesoplan/internal/domain"
)

// SQLiteProgressionRepo stores one progression per mesocycle. The week list,
// settings, strategy and deload snapshots are JSON columns in the same
// shape the progression is emitted in.
type SQLiteProgressionRepo struct {
	db db.DBTX
}

func NewSQLiteProgressionRepo(conn db.DBTX) *SQLiteProgressionRepo {
	return &SQLiteProgressionRepo{db: conn}
}

func (r *SQLiteProgressionRepo) GetByMesocycle(ctx context.Context, mesocycleID string) (*ProgressionRecord, error) {
	query := `SELECT id, mesocycle_id, baseline_week, progression_type, weekly_progressions,
		global_settings, strategy, pre_deload, updated_at
		FROM mesocycle_progressions WHERE mesocycle_id = ?`

	var (
		rec                               ProgressionRecord
		baseline, weeks, settings, preDel string
		ptype, updated                    string
		strategy                          sql.NullString
	)
	p := &rec.Progression
	err := r.db.QueryRowContext(ctx, query, mesocycleID).Scan(
		&p.ID, &p.MesocycleID, &baseline, &ptype, &weeks,
		&settings, &strategy, &preDel, &updated,
	)
	if err != nil {
		return nil, notFound("progression", err)
	}
	p.ProgressionType = domain.ProgressionType(ptype)

	if err := decodeJSON(baseline, &p.BaselineWeek, "baseline_week"); err != nil {
		return nil, err
	}
	if err := decodeJSON(weeks, &p.WeeklyProgressions, "weekly_progressions"); err != nil {
		return nil, err
	}
	if err := decodeJSON(settings, &p.GlobalSettings, "global_settings"); err != nil {
		return nil, err
	}
	if strategy.Valid {
		var s domain.ProgressionStrategy
		if err := decodeJSON(strategy.String, &s, "strategy"); err != nil {
			return nil, err
		}
		p.ProgressionStrategy = &s
	}
	rec.PreDeload = map[int]domain.IntensityParameters{}
	if err := decodeJSON(preDel, &rec.PreDeload, "pre_deload"); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseTime(updated, time.RFC3339, "updated_at"); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert writes the record, replacing any progression already stored for
// the mesocycle. The stored id is kept on replace.
func (r *SQLiteProgressionRepo) Upsert(ctx context.Context, rec *ProgressionRecord) error {
	p := &rec.Progression

	baseline, err := encodeJSON(p.BaselineWeek, "baseline_week")
	if err != nil {
		return err
	}
	weeks := p.WeeklyProgressions
	if weeks == nil {
		weeks = []domain.WeekIntensity{}
	}
	weeksJSON, err := encodeJSON(weeks, "weekly_progressions")
	if err != nil {
		return err
	}
	settings, err := encodeJSON(p.GlobalSettings, "global_settings")
	if err != nil {
		return err
	}
	var strategy any
	if p.ProgressionStrategy != nil {
		s, err := encodeJSON(p.ProgressionStrategy, "strategy")
		if err != nil {
			return err
		}
		strategy = s
	}
	preDeload := rec.PreDeload
	if preDeload == nil {
		preDeload = map[int]domain.IntensityParameters{}
	}
	preDeloadJSON, err := encodeJSON(preDeload, "pre_deload")
	if err != nil {
		return err
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}

	query := `INSERT INTO mesocycle_progressions (id, mesocycle_id, baseline_week, progression_type,
		weekly_progressions, global_settings, strategy, pre_deload, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(mesocycle_id) DO UPDATE SET
			baseline_week = excluded.baseline_week,
			progression_type = excluded.progression_type,
			weekly_progressions = excluded.weekly_progressions,
			global_settings = excluded.global_settings,
			strategy = excluded.strategy,
			pre_deload = excluded.pre_deload,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.MesocycleID,
		baseline,
		string(p.ProgressionType),
		weeksJSON,
		settings,
		strategy,
		preDeloadJSON,
		rec.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting progression: %w", err)
	}
	return nil
}
