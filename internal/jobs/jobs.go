// Package jobs wires the periodic background work: the escalation scan and
// the external sync dispatch. Both run on a shared cron scheduler; each
// tick is independent and failures are logged, never fatal.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"transtrack/internal/core/application/usecases/commands"
	"transtrack/internal/core/application/usecases/queries"
	"transtrack/internal/core/ports"
	"transtrack/internal/events"
	"transtrack/internal/metrics"
	"transtrack/internal/pkg/logging"

	"github.com/robfig/cron/v3"
)

const (
	tickTimeout = 2 * time.Minute

	// DefaultSyncBatchLimit caps one dispatch tick when no limit is
	// configured.
	DefaultSyncBatchLimit = 50
)

// Scheduler owns the cron instance and the registered jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logging.WithComponent("jobs"),
	}
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// AddEscalationScan registers the periodic escalation sweep. Each tick
// evaluates every active order and announces the rules that fired.
func (s *Scheduler) AddEscalationScan(spec string, job *EscalationScanJob) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
		defer cancel()
		job.Run(ctx)
	})
	return err
}

// AddSyncDispatch registers the periodic sync dispatch. Each tick drains
// the queue of orders waiting for delivery to the planning system.
func (s *Scheduler) AddSyncDispatch(spec string, job *SyncDispatchJob) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
		defer cancel()
		job.Run(ctx)
	})
	return err
}

// EscalationScanJob runs the escalation sweep query and publishes an event
// per fired rule. The sweep itself never mutates orders; announcing is the
// job's responsibility.
type EscalationScanJob struct {
	handler   queries.EscalationSweepQueryHandler
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewEscalationScanJob creates the escalation scan job.
func NewEscalationScanJob(handler queries.EscalationSweepQueryHandler, publisher ports.EventPublisher) *EscalationScanJob {
	return &EscalationScanJob{
		handler:   handler,
		publisher: publisher,
		logger:    logging.WithComponent("escalation-scan"),
	}
}

// Run executes one sweep.
func (j *EscalationScanJob) Run(ctx context.Context) {
	sweep, err := j.handler.Handle(ctx, queries.NewEscalationSweepQuery())
	if err != nil {
		j.logger.Error("escalation sweep failed", "error", err)
		return
	}

	now := time.Now().UTC()
	fired := 0
	for _, entry := range sweep {
		for _, result := range entry.Triggered() {
			fired++
			metrics.IncrementEscalationTriggered(string(result.Condition))

			event := events.EscalationTriggered{
				OrderID:     entry.OrderID.String(),
				Number:      entry.OrderNumber,
				RuleName:    result.RuleName,
				Condition:   string(result.Condition),
				Message:     result.Message,
				TriggeredAt: now,
			}
			if err := j.publisher.Publish(ctx, event); err != nil {
				j.logger.Warn("failed to publish escalation event",
					"order", entry.OrderNumber, "rule", result.RuleName, "error", err)
			}
		}
	}

	if fired > 0 {
		j.logger.Info("escalation sweep finished", "orders", len(sweep), "fired", fired)
	}
}

// SyncDispatchJob pushes queued orders to the external planning system.
type SyncDispatchJob struct {
	handler commands.DispatchOrderSyncCommandHandler
	limit   int
	logger  *slog.Logger
}

// NewSyncDispatchJob creates the sync dispatch job. The limit caps how
// many orders one tick may send.
func NewSyncDispatchJob(handler commands.DispatchOrderSyncCommandHandler, limit int) *SyncDispatchJob {
	return &SyncDispatchJob{
		handler: handler,
		limit:   limit,
		logger:  logging.WithComponent("sync-dispatch"),
	}
}

// Run executes one dispatch pass.
func (j *SyncDispatchJob) Run(ctx context.Context) {
	command, err := commands.NewDispatchOrderSyncCommand(j.limit)
	if err != nil {
		j.logger.Error("invalid dispatch command", "error", err)
		return
	}

	if err := j.handler.Handle(ctx, command); err != nil {
		j.logger.Error("sync dispatch failed", "error", err)
	}
}
