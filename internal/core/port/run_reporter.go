package port

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/core/domain"

	"github.com/google/uuid"
)

// RunReporterPort publishes the outcome of a completed aggregation run for
// downstream consumers. Reporting is best-effort: a failed publish never
// fails the run.
type RunReporterPort interface {
	ReportRun(ctx context.Context, runID uuid.UUID, summary *domain.RunSummary) error
}
