package scripts

import (
	"context"
	"database/sql"
)

const planPhotosDDL = `
CREATE TABLE IF NOT EXISTS plan_photos (
	id          SERIAL PRIMARY KEY,
	client_name TEXT NOT NULL,
	plan_id     TEXT NOT NULL,
	kind        TEXT NOT NULL CHECK (kind IN ('exterior', 'interior')),
	src         TEXT NOT NULL,
	sort_index  INTEGER NOT NULL CHECK (sort_index >= 1),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (client_name, plan_id, kind, src)
);

CREATE INDEX IF NOT EXISTS plan_photos_collection_idx
	ON plan_photos (client_name, plan_id, kind, sort_index);
`

// EnsureSchema creates the plan_photos table when it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, planPhotosDDL)
	return err
}
