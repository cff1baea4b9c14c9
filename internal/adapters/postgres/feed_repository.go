package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFeedRepository serves the read side of the feed: filtered pages,
// the source filter values and the aggregate stats.
type PostgresFeedRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFeedRepository(pool *pgxpool.Pool) (*PostgresFeedRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresFeedRepository{pool: pool}, nil
}

func (r *PostgresFeedRepository) FindJobs(ctx context.Context, filters domain.FeedFilters, limit, offset int) (*domain.PaginatedFeed, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresFeedRepository",
		"method":    "FindJobs",
		"limit":     limit,
		"offset":    offset,
	})

	whereClause, args := applyFeedFilters(filters)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalCount int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM job_posts jp %s", whereClause)
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count jobs", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	dataQuery := fmt.Sprintf(`
		SELECT jp.id, jp.title, jp.company, jp.url, jp.source_platform, jp.location,
		       jp.role_category, jp.salary, jp.description, jp.tags, jp.posted_at, jp.scraped_at,
		       COALESCE(array_agg(sj.list_name) FILTER (WHERE sj.list_name IS NOT NULL), '{}')
		FROM job_posts jp
		LEFT JOIN saved_jobs sj ON sj.job_id = jp.id
		%s
		GROUP BY jp.id
		ORDER BY jp.scraped_at DESC, jp.id
		LIMIT $%d OFFSET $%d`, whereClause, len(args)+1, len(args)+2)

	rows, err := tx.Query(ctx, dataQuery, append(args, limit, offset)...)
	if err != nil {
		repoLogger.Error("Failed to query jobs", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.FeedJob, 0, limit)
	for rows.Next() {
		var job domain.FeedJob
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Company, &job.URL, &job.SourcePlatform, &job.Location,
			&job.RoleCategory, &job.Salary, &job.Description, &job.Tags, &job.PostedAt, &job.ScrapedAt,
			&job.SavedIn,
		); err != nil {
			repoLogger.Error("Failed to scan job row", err, nil)
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during jobs iteration", err, nil)
		return nil, fmt.Errorf("error during jobs iteration: %w", err)
	}

	sources, err := r.distinctSources(ctx, tx)
	if err != nil {
		repoLogger.Error("Failed to load distinct sources", err, nil)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Feed page loaded", port.Fields{
		"found_on_page": len(jobs),
		"total_count":   totalCount,
	})
	return &domain.PaginatedFeed{
		Jobs:         jobs,
		TotalCount:   totalCount,
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
		Sources:      sources,
	}, nil
}

func (r *PostgresFeedRepository) distinctSources(ctx context.Context, tx pgx.Tx) ([]string, error) {
	rows, err := tx.Query(ctx, "SELECT DISTINCT source_platform FROM job_posts ORDER BY source_platform")
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct sources: %w", err)
	}
	defer rows.Close()

	sources := make([]string, 0, 4)
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during sources iteration: %w", err)
	}
	return sources, nil
}

func (r *PostgresFeedRepository) GetStats(ctx context.Context) (*domain.FeedStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresFeedRepository",
		"method":    "GetStats",
	})

	stats := &domain.FeedStats{BySource: make(map[string]int64)}

	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM job_posts").Scan(&stats.TotalJobs); err != nil {
		repoLogger.Error("Failed to count jobs", err, nil)
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	savedQuery := "SELECT COUNT(DISTINCT job_id) FROM saved_jobs"
	if err := r.pool.QueryRow(ctx, savedQuery).Scan(&stats.SavedJobs); err != nil {
		repoLogger.Error("Failed to count saved jobs", err, nil)
		return nil, fmt.Errorf("failed to count saved jobs: %w", err)
	}

	rows, err := r.pool.Query(ctx, "SELECT source_platform, COUNT(*) FROM job_posts GROUP BY source_platform")
	if err != nil {
		repoLogger.Error("Failed to count jobs by source", err, nil)
		return nil, fmt.Errorf("failed to count jobs by source: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			repoLogger.Error("Failed to scan per-source count", err, nil)
			return nil, fmt.Errorf("failed to scan per-source count: %w", err)
		}
		stats.BySource[source] = count
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during per-source counts iteration", err, nil)
		return nil, fmt.Errorf("error during per-source counts iteration: %w", err)
	}

	return stats, nil
}
