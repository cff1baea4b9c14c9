package usecases_port

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/core/domain"
)

type GetFeedUseCasePort interface {
	Execute(ctx context.Context, filters domain.FeedFilters, limit, offset int) (*domain.PaginatedFeed, error)
}
