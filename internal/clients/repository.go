package clients

import (
	"context"
	"database/sql"
	"errors"
)

// SQLRepo stores clients in Postgres (pgx stdlib driver).
//
// Assumed schema:
//
//	CREATE TABLE clients (
//	    id         TEXT PRIMARY KEY,
//	    name       TEXT NOT NULL,
//	    company    TEXT NOT NULL DEFAULT '',
//	    email      TEXT NOT NULL DEFAULT '',
//	    phone      TEXT NOT NULL DEFAULT '',
//	    notes      TEXT NOT NULL DEFAULT '',
//	    created_by TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
type SQLRepo struct {
	db *sql.DB
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{db: db}
}

const clientColumns = `id, name, company, email, phone, notes, created_by, created_at, updated_at`

func (r *SQLRepo) Insert(ctx context.Context, cl Client) error {
	const q = `
INSERT INTO clients (` + clientColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.db.ExecContext(ctx, q,
		cl.ID, cl.Name, cl.Company, cl.Email, cl.Phone, cl.Notes,
		cl.CreatedBy, cl.CreatedAt, cl.UpdatedAt)
	return err
}

func (r *SQLRepo) Get(ctx context.Context, id string) (Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	var cl Client
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&cl.ID, &cl.Name, &cl.Company, &cl.Email, &cl.Phone, &cl.Notes,
		&cl.CreatedBy, &cl.CreatedAt, &cl.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Client{}, ErrNotFound
	}
	if err != nil {
		return Client{}, err
	}
	return cl, nil
}

func (r *SQLRepo) Update(ctx context.Context, cl Client) error {
	const q = `
UPDATE clients
SET name = $2, company = $3, email = $4, phone = $5, notes = $6, updated_at = $7
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		cl.ID, cl.Name, cl.Company, cl.Email, cl.Phone, cl.Notes, cl.UpdatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) List(ctx context.Context) ([]Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var cl Client
		if err := rows.Scan(
			&cl.ID, &cl.Name, &cl.Company, &cl.Email, &cl.Phone, &cl.Notes,
			&cl.CreatedBy, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}
