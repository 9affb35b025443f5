package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/Nikk8744/F-T-T-sub000/errors"
	"github.com/Nikk8744/F-T-T-sub000/services"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"
)

type mockRunner struct {
	mu              sync.Mutex
	RunFunc         func(ctx context.Context, now time.Time) (services.RunSummary, error)
	RunWithWindowFn func(ctx context.Context, now time.Time, days int) (services.RunSummary, error)
	runs            int
	windows         []int
}

func (m *mockRunner) Run(ctx context.Context, now time.Time) (services.RunSummary, error) {
	m.mu.Lock()
	m.runs++
	m.mu.Unlock()
	if m.RunFunc != nil {
		return m.RunFunc(ctx, now)
	}
	return services.RunSummary{RunID: "run"}, nil
}

func (m *mockRunner) RunWithWindow(ctx context.Context, now time.Time, days int) (services.RunSummary, error) {
	m.mu.Lock()
	m.windows = append(m.windows, days)
	m.mu.Unlock()
	if m.RunWithWindowFn != nil {
		return m.RunWithWindowFn(ctx, now, days)
	}
	return services.RunSummary{RunID: "window", WarningDays: days}, nil
}

func newTestScheduler(r Runner) *Scheduler {
	return NewScheduler(SchedulerOptions{
		Runner:   r,
		Logger:   logger.Nop{},
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) },
	})
}

func TestSchedulerInvalidExpressionFallsBackThenReplaces(t *testing.T) {
	s := newTestScheduler(&mockRunner{})
	defer s.Stop()

	if err := s.Start("invalid-cron"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	st := s.Status()
	if !st.Running || !st.FellBack || st.Expression != "0 0 * * *" || st.Entries != 1 {
		t.Fatalf("status after invalid start = %+v", st)
	}
	if st.NextRun == nil || st.NextRun.Hour() != 0 || st.NextRun.Minute() != 0 {
		t.Errorf("NextRun = %v, want midnight", st.NextRun)
	}
	if !errors.Is(s.fallback, apperrors.ErrInvalidSchedule) || st.Fallback == "" {
		t.Errorf("fallback cause = %v (%q), want ErrInvalidSchedule", s.fallback, st.Fallback)
	}

	if err := s.Start("0 2 * * *"); err != nil {
		t.Fatalf("restart: %v", err)
	}
	st = s.Status()
	if !st.Running || st.FellBack || st.Expression != "0 2 * * *" {
		t.Fatalf("status after restart = %+v", st)
	}
	if st.Entries != 1 {
		t.Errorf("Entries = %d, want exactly one active timer", st.Entries)
	}
	if st.NextRun == nil || st.NextRun.Hour() != 2 {
		t.Errorf("NextRun = %v, want 02:00", st.NextRun)
	}
	if s.fallback != nil || st.Fallback != "" {
		t.Errorf("fallback should clear on a valid restart, got %q", st.Fallback)
	}
}

func TestSchedulerEmptyExpressionUsesDefault(t *testing.T) {
	s := newTestScheduler(&mockRunner{})
	defer s.Stop()

	if err := s.Start(""); err != nil {
		t.Fatal(err)
	}
	if st := s.Status(); st.Expression != "0 0 * * *" || !st.FellBack {
		t.Errorf("status = %+v", st)
	}
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	s := newTestScheduler(&mockRunner{})

	s.Stop()
	if err := s.Start("*/5 * * * *"); err != nil {
		t.Fatal(err)
	}
	s.Stop()
	s.Stop()

	st := s.Status()
	if st.Running || st.Entries != 0 || st.NextRun != nil {
		t.Errorf("status after stop = %+v", st)
	}

	if err := s.Start("0 3 * * *"); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()
	if st := s.Status(); !st.Running || st.Entries != 1 {
		t.Errorf("status after restart = %+v", st)
	}
}

func TestSchedulerTriggerIsIndependentOfTimer(t *testing.T) {
	r := &mockRunner{}
	s := newTestScheduler(r)

	summary, err := s.Trigger(context.Background(), -1)
	if err != nil || summary.RunID != "run" {
		t.Fatalf("Trigger = %+v, %v", summary, err)
	}
	if st := s.Status(); st.Running || st.LastSource != SourceManual || st.LastRun == nil {
		t.Errorf("status = %+v", st)
	}

	if err := s.Start("0 2 * * *"); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()
	before := s.Status().NextRun

	summary, err = s.Trigger(context.Background(), 5)
	if err != nil || summary.WarningDays != 5 {
		t.Fatalf("Trigger with window = %+v, %v", summary, err)
	}
	after := s.Status()
	if !after.Running || after.NextRun == nil || !after.NextRun.Equal(*before) {
		t.Errorf("manual trigger changed the timer: before %v after %+v", before, after)
	}
	if len(r.windows) != 1 || r.windows[0] != 5 {
		t.Errorf("windows = %v", r.windows)
	}
}

func TestSchedulerTickRecordsFailure(t *testing.T) {
	r := &mockRunner{
		RunFunc: func(context.Context, time.Time) (services.RunSummary, error) {
			return services.RunSummary{RunID: "failed"}, errors.New("scan failed")
		},
	}
	s := newTestScheduler(r)

	s.tick()

	st := s.Status()
	if st.LastSource != SourceScheduled || st.LastError != "scan failed" || st.LastRun.RunID != "failed" {
		t.Errorf("status = %+v", st)
	}
	if r.runs != 1 {
		t.Errorf("runs = %d", r.runs)
	}
}

func TestSchedulerSkipsOverlappingTicks(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	runner := &mockRunner{
		RunFunc: func(context.Context, time.Time) (services.RunSummary, error) {
			started <- struct{}{}
			<-release
			return services.RunSummary{RunID: "slow"}, nil
		},
	}
	s := newTestScheduler(runner)
	defer s.Stop()

	if err := s.Start("0 2 * * *"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.mu.Lock()
	job := s.cron.Entry(s.entryID).WrappedJob
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		job.Run()
		close(done)
	}()
	<-started

	// second tick while the first is still running returns without calling the runner
	job.Run()

	close(release)
	<-done

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.runs != 1 {
		t.Errorf("runs = %d, want 1", runner.runs)
	}
}
