package audit

import (
	"context"
	"database/sql"
)

// SQLRepo stores security events in Postgres (pgx stdlib driver). Only
// Insert is implemented; the table is append-only and read by operators,
// not by the API.
//
// Assumed schema:
//
//	CREATE TABLE auth_events (
//	    id            TEXT PRIMARY KEY,
//	    type          TEXT NOT NULL,
//	    actor_user_id TEXT NOT NULL DEFAULT '',
//	    actor_role    TEXT NOT NULL DEFAULT '',
//	    email         TEXT NOT NULL DEFAULT '',
//	    ip_address    TEXT NOT NULL DEFAULT '',
//	    session_id    TEXT NOT NULL DEFAULT '',
//	    message       TEXT NOT NULL DEFAULT '',
//	    created_at    TIMESTAMPTZ NOT NULL
//	);
type SQLRepo struct {
	db *sql.DB
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{db: db}
}

func (r *SQLRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO auth_events (id, type, actor_user_id, actor_role, email, ip_address, session_id, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.Type, e.ActorUserID, e.ActorRole, e.Email,
		e.IPAddress, e.SessionID, e.Message, e.CreatedAt)
	return err
}
