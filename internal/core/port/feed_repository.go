package port

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/core/domain"
)

// FeedRepositoryPort is the read side of the store consumed by the feed and
// stats endpoints.
type FeedRepositoryPort interface {
	FindJobs(ctx context.Context, filters domain.FeedFilters, limit, offset int) (*domain.PaginatedFeed, error)

	GetStats(ctx context.Context) (*domain.FeedStats, error)
}
