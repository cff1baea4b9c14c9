package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/MrSprintALot/job-feed/internal/core/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS job_posts (
		id              UUID PRIMARY KEY,
		title           TEXT NOT NULL,
		company         TEXT NOT NULL DEFAULT '',
		url             TEXT NOT NULL UNIQUE,
		source_platform TEXT NOT NULL,
		location        TEXT NOT NULL DEFAULT 'Remote',
		role_category   TEXT NOT NULL DEFAULT '',
		salary          TEXT NOT NULL DEFAULT '',
		description     TEXT NOT NULL DEFAULT '',
		tags            TEXT NOT NULL DEFAULT '',
		posted_at       TEXT NOT NULL DEFAULT '',
		scraped_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_posts_source ON job_posts (source_platform)`,
	`CREATE INDEX IF NOT EXISTS idx_job_posts_scraped_at ON job_posts (scraped_at DESC)`,
	`CREATE TABLE IF NOT EXISTS lists (
		name       TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS saved_jobs (
		job_id    UUID NOT NULL REFERENCES job_posts (id) ON DELETE CASCADE,
		list_name TEXT NOT NULL REFERENCES lists (name) ON DELETE CASCADE,
		saved_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (job_id, list_name)
	)`,
}

// EnsureSchema creates the tables on startup and seeds the default list.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	seed := `INSERT INTO lists (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	if _, err := pool.Exec(ctx, seed, domain.DefaultListName); err != nil {
		return fmt.Errorf("failed to seed default list: %w", err)
	}
	return nil
}
