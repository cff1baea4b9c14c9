package usecases_port

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/core/domain"
)

type RunAggregationUseCasePort interface {
	// Execute runs every resolved source and returns the per-source and
	// total counters of the run.
	Execute(ctx context.Context, sources []string, searchTerms []string) (*domain.RunSummary, error)
}
