package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"

	"github.com/google/uuid"
)

// RunAggregationUseCase fetches from every resolved source, persists the
// combined batch through the dedup store and reports the run outcome.
type RunAggregationUseCase struct {
	registry *FetcherRegistry
	storage  port.JobStoragePort
	reporter port.RunReporterPort // optional, may be nil
}

func NewRunAggregationUseCase(registry *FetcherRegistry, storage port.JobStoragePort, reporter port.RunReporterPort) *RunAggregationUseCase {
	return &RunAggregationUseCase{
		registry: registry,
		storage:  storage,
		reporter: reporter,
	}
}

type sourceResult struct {
	name    string
	records []domain.JobPosting
	err     error
}

func (uc *RunAggregationUseCase) Execute(ctx context.Context, sources []string, searchTerms []string) (*domain.RunSummary, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RunAggregation",
	})

	fetchers := uc.registry.Resolve(sources)
	ucLogger.Info("Use case started", port.Fields{
		"requested_sources": sources,
		"resolved_sources":  len(fetchers),
		"search_terms":      searchTerms,
	})

	results := make([]sourceResult, len(fetchers))
	var wg sync.WaitGroup
	for i, fetcher := range fetchers {
		wg.Add(1)
		go func(i int, fetcher port.JobFetcherPort) {
			defer wg.Done()
			defer func() {
				// A panicking adapter must not take the whole run down.
				if rec := recover(); rec != nil {
					results[i] = sourceResult{
						name: fetcher.Name(),
						err:  fmt.Errorf("panic: %v", rec),
					}
				}
			}()

			records, err := fetcher.Fetch(ctx, searchTerms)
			results[i] = sourceResult{name: fetcher.Name(), records: records, err: err}
		}(i, fetcher)
	}
	wg.Wait()

	summary := &domain.RunSummary{
		Sources: make(map[string]domain.SourceOutcome, len(results)),
	}

	// Concatenate in resolution order so ties on the url key are broken
	// deterministically by the store's first-write-wins insert.
	var batch []domain.JobPosting
	for _, res := range results {
		outcome := domain.SourceOutcome{
			Fetched: len(res.records),
			Status:  domain.StatusOK,
		}
		if res.err != nil {
			outcome.Status = "error: " + res.err.Error()
			ucLogger.Warn("Source finished with an error", port.Fields{
				"source":  res.name,
				"fetched": len(res.records),
				"error":   res.err.Error(),
			})
		}
		summary.Sources[res.name] = outcome
		summary.Fetched += len(res.records)
		batch = append(batch, res.records...)
	}

	inserted, skipped, err := uc.storage.InsertBatch(ctx, batch)
	if err != nil {
		ucLogger.Error("Storage is unavailable, aborting run", err, nil)
		return nil, fmt.Errorf("failed to persist %d fetched records: %w", len(batch), err)
	}
	summary.Inserted = inserted
	summary.SkippedDuplicates = skipped

	uc.report(ctx, ucLogger, summary)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"fetched":            summary.Fetched,
		"inserted":           summary.Inserted,
		"skipped_duplicates": summary.SkippedDuplicates,
	})
	return summary, nil
}

// report publishes the run summary when a reporter is configured. Publishing
// is best-effort: a broker failure is logged and swallowed.
func (uc *RunAggregationUseCase) report(ctx context.Context, logger port.LoggerPort, summary *domain.RunSummary) {
	if uc.reporter == nil {
		return
	}

	runID := uuid.New()
	if err := uc.reporter.ReportRun(ctx, runID, summary); err != nil {
		logger.Warn("Failed to publish run report", port.Fields{
			"run_id": runID,
			"error":  err.Error(),
		})
	}
}
