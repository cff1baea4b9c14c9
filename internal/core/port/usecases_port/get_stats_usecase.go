package usecases_port

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/core/domain"
)

type GetStatsUseCasePort interface {
	Execute(ctx context.Context) (*domain.FeedStats, error)
}
