package usecase

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
)

type GetFeedUseCase struct {
	repo port.FeedRepositoryPort
}

func NewGetFeedUseCase(repo port.FeedRepositoryPort) *GetFeedUseCase {
	return &GetFeedUseCase{repo: repo}
}

func (uc *GetFeedUseCase) Execute(ctx context.Context, filters domain.FeedFilters, limit, offset int) (*domain.PaginatedFeed, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetFeed",
	})

	if limit <= 0 {
		limit = domain.DefaultFeedLimit
	}
	if offset < 0 {
		offset = 0
	}

	feed, err := uc.repo.FindJobs(ctx, filters, limit, offset)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{
		"returned":    len(feed.Jobs),
		"total_count": feed.TotalCount,
	})
	return feed, nil
}
