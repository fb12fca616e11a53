package worker

import (
	"context"
	"time"

	"go-ats-core/internal/domain"
	"go-ats-core/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Worker drives the automation sweep and the outbox drain on cron
// schedules. It replaces the external cron the rule engine would
// otherwise depend on.
type Worker struct {
	cron *cron.Cron
}

func New(automationUC domain.AutomationUsecase, outboxUC domain.OutboxUsecase, sweepSpec, drainSpec string) (*Worker, error) {
	c := cron.New()

	_, err := c.AddFunc(sweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		result, err := automationUC.RunSweep(ctx)
		if err != nil {
			logger.Log.Error("Scheduled sweep failed", "error", err)
			return
		}
		if result.Skipped {
			return
		}
		logger.Log.Debug("Scheduled sweep done",
			"rules_executed", result.Executed, "candidates", len(result.CandidateIDs))
	})
	if err != nil {
		return nil, err
	}

	_, err = c.AddFunc(drainSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if _, err := outboxUC.Drain(ctx); err != nil {
			logger.Log.Error("Scheduled outbox drain failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Worker{cron: c}, nil
}

func (w *Worker) Start() {
	w.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
}
