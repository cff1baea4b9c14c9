package port

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/core/domain"
)

// JobStoragePort is the write side of the dedup/persist store.
type JobStoragePort interface {
	// InsertBatch attempts one uniquely-keyed insert per record. A url
	// collision is an expected duplicate and counts as a skip; any other
	// per-record failure also degrades to a skip. The returned error is
	// non-nil only when the store itself is unavailable, which aborts the
	// run.
	InsertBatch(ctx context.Context, records []domain.JobPosting) (inserted, skipped int, err error)
}
