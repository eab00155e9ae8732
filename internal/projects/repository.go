package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// SQLRepo stores projects in Postgres (pgx stdlib driver). Developer
// assignments live in a JSONB column; the lists are small and always read
// whole, so a join table would buy nothing here.
//
// Assumed schema:
//
//	CREATE TABLE projects (
//	    id            TEXT PRIMARY KEY,
//	    client_id     TEXT NOT NULL,
//	    name          TEXT NOT NULL,
//	    description   TEXT NOT NULL DEFAULT '',
//	    status        TEXT NOT NULL,
//	    developer_ids JSONB NOT NULL DEFAULT '[]',
//	    created_by    TEXT NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL
//	);
type SQLRepo struct {
	db *sql.DB
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{db: db}
}

const projectColumns = `id, client_id, name, description, status, developer_ids, created_by, created_at, updated_at`

func (r *SQLRepo) Insert(ctx context.Context, p Project) error {
	devs, err := devsJSON(p.DeveloperIDs)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO projects (` + projectColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err = r.db.ExecContext(ctx, q,
		p.ID, p.ClientID, p.Name, p.Description, p.Status, devs,
		p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *SQLRepo) Get(ctx context.Context, id string) (Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

func (r *SQLRepo) Update(ctx context.Context, p Project) error {
	devs, err := devsJSON(p.DeveloperIDs)
	if err != nil {
		return err
	}
	const q = `
UPDATE projects
SET client_id = $2, name = $3, description = $4, status = $5, developer_ids = $6, updated_at = $7
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		p.ID, p.ClientID, p.Name, p.Description, p.Status, devs, p.UpdatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) List(ctx context.Context) ([]Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var p Project
	var devs []byte
	err := row.Scan(
		&p.ID, &p.ClientID, &p.Name, &p.Description, &p.Status, &devs,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Project{}, err
	}
	if len(devs) > 0 {
		if err := json.Unmarshal(devs, &p.DeveloperIDs); err != nil {
			return Project{}, err
		}
	}
	return p, nil
}

func devsJSON(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}
