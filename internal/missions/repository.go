package missions

import (
	"context"
	"database/sql"
	"errors"
)

// SQLRepo stores missions in Postgres (pgx stdlib driver).
//
// Assumed schema:
//
//	CREATE TABLE missions (
//	    id          TEXT PRIMARY KEY,
//	    project_id  TEXT NOT NULL,
//	    title       TEXT NOT NULL,
//	    description TEXT NOT NULL DEFAULT '',
//	    status      TEXT NOT NULL,
//	    assignee_id TEXT NOT NULL DEFAULT '',
//	    due         TIMESTAMPTZ,
//	    created_by  TEXT NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    updated_at  TIMESTAMPTZ NOT NULL
//	);
type SQLRepo struct {
	db *sql.DB
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{db: db}
}

const missionColumns = `id, project_id, title, description, status, assignee_id, due, created_by, created_at, updated_at`

func (r *SQLRepo) Insert(ctx context.Context, m Mission) error {
	const q = `
INSERT INTO missions (` + missionColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := r.db.ExecContext(ctx, q,
		m.ID, m.ProjectID, m.Title, m.Description, m.Status, m.AssigneeID,
		m.Due, m.CreatedBy, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *SQLRepo) Get(ctx context.Context, id string) (Mission, error) {
	const q = `SELECT ` + missionColumns + ` FROM missions WHERE id = $1`

	var m Mission
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.Status, &m.AssigneeID,
		&m.Due, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Mission{}, ErrNotFound
	}
	if err != nil {
		return Mission{}, err
	}
	return m, nil
}

func (r *SQLRepo) Update(ctx context.Context, m Mission) error {
	const q = `
UPDATE missions
SET project_id = $2, title = $3, description = $4, status = $5, assignee_id = $6, due = $7, updated_at = $8
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		m.ID, m.ProjectID, m.Title, m.Description, m.Status, m.AssigneeID,
		m.Due, m.UpdatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM missions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) List(ctx context.Context) ([]Mission, error) {
	const q = `SELECT ` + missionColumns + ` FROM missions ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Mission
	for rows.Next() {
		var m Mission
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.Status, &m.AssigneeID,
			&m.Due, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
