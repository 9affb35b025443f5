package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Nikk8744/F-T-T-sub000/constants"
	apperrors "github.com/Nikk8744/F-T-T-sub000/errors"
	"github.com/Nikk8744/F-T-T-sub000/services"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"

	"github.com/robfig/cron/v3"
)

// Runner is the deadline pipeline as the scheduler sees it
type Runner interface {
	Run(ctx context.Context, now time.Time) (services.RunSummary, error)
	RunWithWindow(ctx context.Context, now time.Time, warningDays int) (services.RunSummary, error)
}

const (
	SourceScheduled = "scheduled"
	SourceManual    = "manual"
)

// SchedulerStatus is a snapshot of the scheduler
type SchedulerStatus struct {
	Running    bool                 `json:"running"`
	Expression string               `json:"expression,omitempty"`
	FellBack   bool                 `json:"fellBack"`
	Fallback   string               `json:"fallback,omitempty"`
	Entries    int                  `json:"entries"`
	NextRun    *time.Time           `json:"nextRun,omitempty"`
	LastRun    *services.RunSummary `json:"lastRun,omitempty"`
	LastSource string               `json:"lastSource,omitempty"`
	LastError  string               `json:"lastError,omitempty"`
}

// Scheduler owns the single recurring timer that drives the deadline pipeline
type Scheduler struct {
	mu         sync.Mutex
	cron       *cron.Cron
	runner     Runner
	logger     logger.Logger
	now        func() time.Time
	entryID    cron.EntryID
	running    bool
	expression string
	fellBack   bool
	fallback   error
	lastRun    *services.RunSummary
	lastSource string
	lastErr    string
}

type SchedulerOptions struct {
	Runner   Runner
	Logger   logger.Logger
	Location *time.Location
	Now      func() time.Time
}

func NewScheduler(opts SchedulerOptions) *Scheduler {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cl := logger.NewCronLogger(opts.Logger)

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner: opts.Runner,
		logger: opts.Logger,
		now:    now,
	}
}

// Start installs expr as the only active timer, replacing any previous one.
// An unparsable expr falls back to the daily-midnight default.
func (s *Scheduler) Start(expr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.stopLocked()
	}

	var fallback error
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		fallback = apperrors.NewAppError(apperrors.ErrCodeInvalidSchedule,
			fmt.Sprintf("schedule %q rejected", expr), fmt.Errorf("%w: %v", apperrors.ErrInvalidSchedule, err))
		s.logger.Warn("%v, falling back to %q", fallback, constants.DefaultDeadlineCron)
		expr = constants.DefaultDeadlineCron
		schedule, err = cron.ParseStandard(expr)
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeSchedulerFailed, "cannot parse default schedule", err)
		}
	}

	s.entryID = s.cron.Schedule(schedule, cron.FuncJob(s.tick))
	s.cron.Start()
	s.running = true
	s.expression = expr
	s.fellBack = fallback != nil
	s.fallback = fallback

	s.logger.Info("Deadline scheduler started with %q", expr)
	return nil
}

// Stop cancels future ticks. A tick already running is left to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.stopLocked()
	s.logger.Info("Deadline scheduler stopped")
}

func (s *Scheduler) stopLocked() {
	s.cron.Remove(s.entryID)
	s.cron.Stop()
	s.entryID = 0
	s.running = false
}

// Trigger runs the pipeline now, outside the schedule, without touching the timer.
// A negative warningDays uses the pipeline's configured window.
func (s *Scheduler) Trigger(ctx context.Context, warningDays int) (services.RunSummary, error) {
	var (
		summary services.RunSummary
		err     error
	)
	if warningDays < 0 {
		summary, err = s.runner.Run(ctx, s.now())
	} else {
		summary, err = s.runner.RunWithWindow(ctx, s.now(), warningDays)
	}
	s.record(SourceManual, summary, err)
	return summary, err
}

func (s *Scheduler) tick() {
	s.logger.Info("Running scheduled deadline check at %v", s.now())
	summary, err := s.runner.Run(context.Background(), s.now())
	s.record(SourceScheduled, summary, err)
}

func (s *Scheduler) record(source string, summary services.RunSummary, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRun = &summary
	s.lastSource = source
	s.lastErr = ""
	if err != nil {
		s.lastErr = err.Error()
	}
}

func (s *Scheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := SchedulerStatus{
		Running:    s.running,
		Expression: s.expression,
		FellBack:   s.fellBack,
		Entries:    len(s.cron.Entries()),
		LastSource: s.lastSource,
		LastError:  s.lastErr,
	}
	if s.fallback != nil {
		st.Fallback = s.fallback.Error()
	}
	if s.lastRun != nil {
		last := *s.lastRun
		st.LastRun = &last
	}
	if s.running {
		if next := s.cron.Entry(s.entryID).Next; !next.IsZero() {
			st.NextRun = &next
		}
	}
	return st
}
