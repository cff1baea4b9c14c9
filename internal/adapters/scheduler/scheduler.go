package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/port"
	"github.com/MrSprintALot/job-feed/internal/core/port/usecases_port"

	"github.com/robfig/cron/v3"
)

// Scheduler drives periodic aggregation runs. It is a thin collaborator
// around the run use case: all run semantics live in the use case, the
// scheduler only decides when to call it.
type Scheduler struct {
	cron        *cron.Cron
	runUC       usecases_port.RunAggregationUseCasePort
	searchTerms []string
	spec        string
	logger      port.LoggerPort
}

func New(runUC usecases_port.RunAggregationUseCasePort, searchTerms []string, intervalHours int, logger port.LoggerPort) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		runUC:       runUC,
		searchTerms: searchTerms,
		spec:        fmt.Sprintf("@every %dh", intervalHours),
		logger:      logger.WithFields(port.Fields{"component": "Scheduler"}),
	}
}

// Start registers the job and starts the cron loop. One run fires
// immediately so the feed is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Cron started", port.Fields{"spec": s.spec})

	go s.runOnce(ctx)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Cron stopped", nil)
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx := contextkeys.ContextWithLogger(ctx, s.logger)

	s.logger.Info("Scheduled aggregation run starting", port.Fields{"terms": s.searchTerms})

	// All registered sources participate in scheduled runs.
	summary, err := s.runUC.Execute(runCtx, nil, s.searchTerms)
	if err != nil {
		s.logger.Error("Scheduled aggregation run failed", err, nil)
		return
	}

	s.logger.Info("Scheduled aggregation run finished", port.Fields{
		"fetched":            summary.Fetched,
		"inserted":           summary.Inserted,
		"skipped_duplicates": summary.SkippedDuplicates,
	})
}
