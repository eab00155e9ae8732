package identity

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for user records.
// The auth path needs only point lookups; no transactions are required.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	List(ctx context.Context) ([]User, error)
}

// SQLRepo stores users in Postgres (pgx stdlib driver).
//
// Assumed schema:
//
//	CREATE TABLE users (
//	    id            TEXT PRIMARY KEY,
//	    name          TEXT NOT NULL,
//	    email         TEXT NOT NULL UNIQUE,
//	    role          TEXT NOT NULL,
//	    password_hash TEXT NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL
//	);
type SQLRepo struct {
	db *sql.DB
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{db: db}
}

func (r *SQLRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	const q = `
SELECT id, name, email, role, password_hash, created_at, updated_at
FROM users
WHERE email = $1
`
	return r.scanOne(ctx, q, NormalizeEmail(email))
}

func (r *SQLRepo) FindByID(ctx context.Context, id string) (User, error) {
	const q = `
SELECT id, name, email, role, password_hash, created_at, updated_at
FROM users
WHERE id = $1
`
	return r.scanOne(ctx, q, id)
}

func (r *SQLRepo) Create(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	const q = `
INSERT INTO users (id, name, email, role, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (email) DO NOTHING
`
	res, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.Role, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return User{}, ErrEmailTaken
	}
	return u, nil
}

func (r *SQLRepo) List(ctx context.Context) ([]User, error) {
	const q = `
SELECT id, name, email, role, password_hash, created_at, updated_at
FROM users
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *SQLRepo) scanOne(ctx context.Context, q string, arg any) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// NormalizeEmail lowercases and trims an email address. Storage and lookup
// both go through it, which makes email matching case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
