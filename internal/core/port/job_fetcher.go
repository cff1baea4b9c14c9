package port

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/core/domain"
)

// JobFetcherPort is the single capability every source adapter provides:
// fetch raw listings from one external API and map them into canonical
// records.
//
// Ordinary transport or parse failures must not escape as the only result:
// the adapter returns whatever it has collected so far (possibly nothing)
// together with the error, so the runner can record a per-source error
// outcome and still persist the partial batch.
type JobFetcherPort interface {
	// Name identifies the source platform, e.g. "remotive".
	Name() string

	// Fetch retrieves listings, pushing searchTerms server-side where the
	// API supports it and filtering client-side otherwise.
	Fetch(ctx context.Context, searchTerms []string) ([]domain.JobPosting, error)
}
