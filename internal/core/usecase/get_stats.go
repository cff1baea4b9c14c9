package usecase

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
)

type GetStatsUseCase struct {
	repo port.FeedRepositoryPort
}

func NewGetStatsUseCase(repo port.FeedRepositoryPort) *GetStatsUseCase {
	return &GetStatsUseCase{repo: repo}
}

func (uc *GetStatsUseCase) Execute(ctx context.Context) (*domain.FeedStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	stats, err := uc.repo.GetStats(ctx)
	if err != nil {
		logger.Error("Failed to load feed stats", err, port.Fields{
			"use_case": "GetStats",
		})
		return nil, err
	}
	return stats, nil
}
