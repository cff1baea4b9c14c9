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

// PostgresSavedListsRepository owns the lists and saved_jobs tables.
type PostgresSavedListsRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSavedListsRepository(pool *pgxpool.Pool) (*PostgresSavedListsRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresSavedListsRepository{pool: pool}, nil
}

func (r *PostgresSavedListsRepository) Save(ctx context.Context, jobID uuid.UUID, listName string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresSavedListsRepository",
		"method":    "Save",
		"job_id":    jobID,
		"list_name": listName,
	})

	// The target list is created on the fly so saving into a fresh list is a
	// single call for the client.
	ensureList := `INSERT INTO lists (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	if _, err := r.pool.Exec(ctx, ensureList, listName); err != nil {
		repoLogger.Error("Failed to ensure list exists", err, nil)
		return fmt.Errorf("failed to ensure list %q exists: %w", listName, err)
	}

	query := `INSERT INTO saved_jobs (job_id, list_name) VALUES ($1, $2) ON CONFLICT (job_id, list_name) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, jobID, listName)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			repoLogger.Warn("Job does not exist", nil)
			return domain.ErrJobNotFound
		}
		repoLogger.Error("Failed to save job", err, port.Fields{"query": query})
		return fmt.Errorf("failed to save job: %w", err)
	}

	repoLogger.Debug("Job saved", nil)
	return nil
}

func (r *PostgresSavedListsRepository) Unsave(ctx context.Context, jobID uuid.UUID, listName string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresSavedListsRepository",
		"method":    "Unsave",
		"job_id":    jobID,
		"list_name": listName,
	})

	var cmdTag pgconn.CommandTag
	var err error
	if listName == "" {
		cmdTag, err = r.pool.Exec(ctx, `DELETE FROM saved_jobs WHERE job_id = $1`, jobID)
	} else {
		cmdTag, err = r.pool.Exec(ctx, `DELETE FROM saved_jobs WHERE job_id = $1 AND list_name = $2`, jobID, listName)
	}
	if err != nil {
		repoLogger.Error("Failed to unsave job", err, nil)
		return fmt.Errorf("failed to unsave job: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to unsave a job that was not saved.", nil)
	} else {
		repoLogger.Debug("Job unsaved", port.Fields{"removed": cmdTag.RowsAffected()})
	}
	return nil
}

func (r *PostgresSavedListsRepository) CreateList(ctx context.Context, name string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresSavedListsRepository",
		"method":    "CreateList",
		"list_name": name,
	})

	_, err := r.pool.Exec(ctx, `INSERT INTO lists (name) VALUES ($1)`, name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			repoLogger.Warn("List already exists", nil)
			return domain.ErrListExists
		}
		repoLogger.Error("Failed to create list", err, nil)
		return fmt.Errorf("failed to create list: %w", err)
	}

	repoLogger.Debug("List created", nil)
	return nil
}

// DeleteList removes the list row; the ON DELETE CASCADE constraint takes
// the saved entries with it while job_posts stay untouched.
func (r *PostgresSavedListsRepository) DeleteList(ctx context.Context, name string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresSavedListsRepository",
		"method":    "DeleteList",
		"list_name": name,
	})

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM lists WHERE name = $1`, name)
	if err != nil {
		repoLogger.Error("Failed to delete list", err, nil)
		return fmt.Errorf("failed to delete list: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrListNotFound
	}

	repoLogger.Debug("List deleted", nil)
	return nil
}

func (r *PostgresSavedListsRepository) FindSaved(ctx context.Context, listName string) ([]domain.SavedJob, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresSavedListsRepository",
		"method":    "FindSaved",
		"list_name": listName,
	})

	query := `
		SELECT jp.id, jp.title, jp.company, jp.url, jp.source_platform, jp.location,
		       jp.role_category, jp.salary, jp.description, jp.tags, jp.posted_at, jp.scraped_at,
		       sj.list_name, sj.saved_at
		FROM saved_jobs sj
		JOIN job_posts jp ON jp.id = sj.job_id`
	args := []interface{}{}
	if listName != "" {
		query += ` WHERE sj.list_name = $1`
		args = append(args, listName)
	}
	query += ` ORDER BY sj.saved_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query saved jobs", err, nil)
		return nil, fmt.Errorf("failed to query saved jobs: %w", err)
	}
	defer rows.Close()

	var saved []domain.SavedJob
	for rows.Next() {
		var entry domain.SavedJob
		if err := rows.Scan(
			&entry.Job.ID, &entry.Job.Title, &entry.Job.Company, &entry.Job.URL,
			&entry.Job.SourcePlatform, &entry.Job.Location, &entry.Job.RoleCategory,
			&entry.Job.Salary, &entry.Job.Description, &entry.Job.Tags,
			&entry.Job.PostedAt, &entry.Job.ScrapedAt,
			&entry.ListName, &entry.SavedAt,
		); err != nil {
			repoLogger.Error("Failed to scan saved job row", err, nil)
			return nil, fmt.Errorf("failed to scan saved job row: %w", err)
		}
		saved = append(saved, entry)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during saved jobs iteration", err, nil)
		return nil, fmt.Errorf("error during saved jobs iteration: %w", err)
	}

	return saved, nil
}

func (r *PostgresSavedListsRepository) ListLists(ctx context.Context) ([]domain.ListInfo, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresSavedListsRepository",
		"method":    "ListLists",
	})

	query := `
		SELECT l.name, l.created_at, COUNT(sj.job_id)
		FROM lists l
		LEFT JOIN saved_jobs sj ON sj.list_name = l.name
		GROUP BY l.name, l.created_at
		ORDER BY l.created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		repoLogger.Error("Failed to query lists", err, nil)
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []domain.ListInfo
	for rows.Next() {
		var info domain.ListInfo
		if err := rows.Scan(&info.Name, &info.CreatedAt, &info.SavedCount); err != nil {
			repoLogger.Error("Failed to scan list row", err, nil)
			return nil, fmt.Errorf("failed to scan list row: %w", err)
		}
		lists = append(lists, info)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during lists iteration", err, nil)
		return nil, fmt.Errorf("error during lists iteration: %w", err)
	}

	return lists, nil
}
