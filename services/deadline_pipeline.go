package services

import (
	"context"
	"time"

	"github.com/Nikk8744/F-T-T-sub000/services/logger"

	"github.com/google/uuid"
)

// RunSummary reports one pipeline run
type RunSummary struct {
	RunID       string    `json:"runId"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
	WarningDays int       `json:"warningDays"`
	Candidates  int       `json:"candidates"`
	Skipped     int       `json:"skipped"`
	Persisted   int       `json:"persisted"`
	Failed      int       `json:"failed"`
	Pushed      int       `json:"pushed"`
}

// DeadlinePipeline runs scanner, resolver and dispatcher once, sequentially
type DeadlinePipeline struct {
	scanner     *DeadlineScanner
	resolver    *RecipientResolver
	dispatcher  *NotificationDispatcher
	warningDays int
	logger      logger.Logger
}

type DeadlinePipelineOptions struct {
	Scanner     *DeadlineScanner
	Resolver    *RecipientResolver
	Dispatcher  *NotificationDispatcher
	WarningDays int
	Logger      logger.Logger
}

func NewDeadlinePipeline(opts DeadlinePipelineOptions) *DeadlinePipeline {
	return &DeadlinePipeline{
		scanner:     opts.Scanner,
		resolver:    opts.Resolver,
		dispatcher:  opts.Dispatcher,
		warningDays: opts.WarningDays,
		logger:      opts.Logger,
	}
}

func (p *DeadlinePipeline) WarningDays() int {
	return p.warningDays
}

// Run uses the configured warning window
func (p *DeadlinePipeline) Run(ctx context.Context, now time.Time) (RunSummary, error) {
	return p.RunWithWindow(ctx, now, p.warningDays)
}

// RunWithWindow returns an error only when the scan fails. Per-candidate and
// per-recipient failures are logged and counted.
func (p *DeadlinePipeline) RunWithWindow(ctx context.Context, now time.Time, warningDays int) (RunSummary, error) {
	summary := RunSummary{
		RunID:       uuid.NewString(),
		StartedAt:   time.Now(),
		WarningDays: warningDays,
	}
	p.logger.Info("deadline run %s: scanning at %s with %d day window", summary.RunID, now.Format(time.RFC3339), warningDays)

	candidates, err := p.scanner.Scan(ctx, now, warningDays)
	if err != nil {
		summary.FinishedAt = time.Now()
		p.logger.Error("deadline run %s: %v", summary.RunID, err)
		return summary, err
	}
	summary.Candidates = len(candidates)

	for _, c := range candidates {
		recipients, err := p.resolver.Resolve(ctx, c)
		if err != nil {
			summary.Skipped++
			p.logger.Warn("deadline run %s: skipping %s %d: %v", summary.RunID, c.Kind, c.EntityID, err)
			continue
		}
		if len(recipients) == 0 {
			summary.Skipped++
			p.logger.Warn("deadline run %s: no recipients for %s %d", summary.RunID, c.Kind, c.EntityID)
			continue
		}

		result := p.dispatcher.Dispatch(ctx, c, recipients)
		summary.Persisted += result.Persisted()
		summary.Failed += result.Failed()
		summary.Pushed += result.Pushed()
	}

	summary.FinishedAt = time.Now()
	p.logger.Info("deadline run %s: %d candidates, %d skipped, %d notifications, %d failed",
		summary.RunID, summary.Candidates, summary.Skipped, summary.Persisted, summary.Failed)
	return summary, nil
}
