package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
	"github.com/MrSprintALot/job-feed/pkg/rabbitmq/rabbitmq_producer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RunReportDTO is the message published to the run reports queue after each
// aggregation run. Only counters travel over the wire, never the postings
// themselves.
type RunReportDTO struct {
	RunID             uuid.UUID                   `json:"run_id"`
	FinishedAt        time.Time                   `json:"finished_at"`
	Sources           map[string]SourceOutcomeDTO `json:"sources"`
	Fetched           int                         `json:"fetched"`
	Inserted          int                         `json:"inserted"`
	SkippedDuplicates int                         `json:"skipped_duplicates"`
}

type SourceOutcomeDTO struct {
	Fetched int    `json:"fetched"`
	Status  string `json:"status"`
}

type RunReporterAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

func NewRunReporterAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*RunReporterAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &RunReporterAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func (a *RunReporterAdapter) ReportRun(ctx context.Context, runID uuid.UUID, summary *domain.RunSummary) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "RunReporterAdapter",
		"routing_key": a.routingKey,
		"run_id":      runID,
	})

	dto := RunReportDTO{
		RunID:             runID,
		FinishedAt:        time.Now().UTC(),
		Sources:           make(map[string]SourceOutcomeDTO, len(summary.Sources)),
		Fetched:           summary.Fetched,
		Inserted:          summary.Inserted,
		SkippedDuplicates: summary.SkippedDuplicates,
	}
	for name, outcome := range summary.Sources {
		dto.Sources[name] = SourceOutcomeDTO{Fetched: outcome.Fetched, Status: outcome.Status}
	}

	body, _ := json.Marshal(dto)

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent, // survive a broker restart
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	adapterLogger.Info("Publishing run report", nil)
	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish run report", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish report for run %s: %w", runID, err)
	}

	adapterLogger.Info("Successfully published run report", nil)
	return nil
}
