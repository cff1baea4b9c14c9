package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresJobStorageAdapter owns the job_posts table and implements the
// deduplicating write path.
type PostgresJobStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewPostgresJobStorageAdapter(pool *pgxpool.Pool) (*PostgresJobStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresJobStorageAdapter{pool: pool}, nil
}

// InsertBatch persists the fetched records one by one. The url unique index
// makes re-runs idempotent: a conflicting insert affects zero rows and is
// counted as a duplicate, the first writer always wins. scraped_at is
// assigned by the database at insert time.
func (s *PostgresJobStorageAdapter) InsertBatch(ctx context.Context, records []domain.JobPosting) (int, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	storeLogger := logger.WithFields(port.Fields{
		"component": "PostgresJobStorageAdapter",
		"method":    "InsertBatch",
	})

	// An unreachable store must fail the whole run, not degrade every
	// record into a silent skip.
	if err := s.pool.Ping(ctx); err != nil {
		storeLogger.Error("Store is unreachable", err, nil)
		return 0, 0, fmt.Errorf("store unavailable: %w", err)
	}

	query := `
		INSERT INTO job_posts (id, title, company, url, source_platform, location, role_category, salary, description, tags, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (url) DO NOTHING`

	inserted, skipped := 0, 0
	for _, record := range records {
		cmdTag, err := s.pool.Exec(ctx, query,
			uuid.New(),
			record.Title,
			record.Company,
			record.URL,
			record.SourcePlatform,
			record.Location,
			record.RoleCategory,
			record.Salary,
			record.Description,
			record.Tags,
			record.PostedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				storeLogger.Error("Failed to insert record, skipping", err, port.Fields{
					"url":     record.URL,
					"pg_code": pgErr.Code,
				})
			} else {
				storeLogger.Error("Failed to insert record, skipping", err, port.Fields{
					"url": record.URL,
				})
			}
			skipped++
			continue
		}

		if cmdTag.RowsAffected() == 0 {
			storeLogger.Debug("Duplicate url, record skipped", port.Fields{"url": record.URL})
			skipped++
			continue
		}
		inserted++
	}

	storeLogger.Info("Batch persisted", port.Fields{
		"batch_size": len(records),
		"inserted":   inserted,
		"skipped":    skipped,
	})
	return inserted, skipped, nil
}
