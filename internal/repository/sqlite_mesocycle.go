package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mesoplan/internal/db"
	"github.com/alexanderramin/mesoplan/internal/domain"
)

type SQLiteMesocycleRepo struct {
	db db.DBTX
}

func NewSQLiteMesocycleRepo(conn db.DBTX) *SQLiteMesocycleRepo {
	return &SQLiteMesocycleRepo{db: conn}
}

const mesocycleColumns = `id, name, start_date, weeks, created_at, updated_at`

func (r *SQLiteMesocycleRepo) Create(ctx context.Context, m *domain.Mesocycle) error {
	query := `INSERT INTO mesocycles (` + mesocycleColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.StartDate.Format(dateLayout),
		m.Weeks,
		m.CreatedAt.UTC().Format(time.RFC3339),
		m.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting mesocycle: %w", err)
	}
	return nil
}

func (r *SQLiteMesocycleRepo) GetByID(ctx context.Context, id string) (*domain.Mesocycle, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mesocycleColumns+` FROM mesocycles WHERE id = ?`, id)
	m, err := scanMesocycle(row)
	if err != nil {
		return nil, notFound("mesocycle", err)
	}
	return m, nil
}

// GetByName matches case-insensitively. With duplicate names the oldest wins.
func (r *SQLiteMesocycleRepo) GetByName(ctx context.Context, name string) (*domain.Mesocycle, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+mesocycleColumns+` FROM mesocycles WHERE LOWER(name) = LOWER(?) ORDER BY created_at, rowid LIMIT 1`, name)
	m, err := scanMesocycle(row)
	if err != nil {
		return nil, notFound("mesocycle", err)
	}
	return m, nil
}

func (r *SQLiteMesocycleRepo) List(ctx context.Context) ([]*domain.Mesocycle, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+mesocycleColumns+` FROM mesocycles ORDER BY start_date, created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing mesocycles: %w", err)
	}
	defer rows.Close()

	var out []*domain.Mesocycle
	for rows.Next() {
		m, err := scanMesocycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mesocycle row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mesocycles: %w", err)
	}
	return out, nil
}

func (r *SQLiteMesocycleRepo) Update(ctx context.Context, m *domain.Mesocycle) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE mesocycles SET name = ?, start_date = ?, weeks = ?, updated_at = ? WHERE id = ?`,
		m.Name,
		m.StartDate.Format(dateLayout),
		m.Weeks,
		m.UpdatedAt.UTC().Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating mesocycle: %w", err)
	}
	return checkAffected(res, "mesocycle")
}

func (r *SQLiteMesocycleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mesocycles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting mesocycle: %w", err)
	}
	return checkAffected(res, "mesocycle")
}

func scanMesocycle(s scanner) (*domain.Mesocycle, error) {
	var m domain.Mesocycle
	var start, created, updated string
	if err := s.Scan(&m.ID, &m.Name, &start, &m.Weeks, &created, &updated); err != nil {
		return nil, err
	}

	var err error
	if m.StartDate, err = parseTime(start, dateLayout, "start_date"); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(created, time.RFC3339, "created_at"); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updated, time.RFC3339, "updated_at"); err != nil {
		return nil, err
	}
	return &m, nil
}
