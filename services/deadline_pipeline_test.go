package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Nikk8744/F-T-T-sub000/constants"
	apperrors "github.com/Nikk8744/F-T-T-sub000/errors"
	"github.com/Nikk8744/F-T-T-sub000/models"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"

	"github.com/goccy/go-json"
)

type recordingHandle struct {
	mu       sync.Mutex
	messages [][]byte
}

func (h *recordingHandle) Write(msg []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
	return nil
}

func TestPipelineTaskApproaching(t *testing.T) {
	f := newPipelineFixture(t, 2)
	users := createUsers(t, f.db, 3)
	task := createTask(t, f.db, "Prepare demo", day(1), constants.TaskStatusPending, users[0], users[1], users[2])

	live := &recordingHandle{}
	f.dir.Register(users[1].ID, live)

	summary, err := f.pipeline.Run(context.Background(), today)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Candidates != 1 || summary.Persisted != 3 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.RunID == "" {
		t.Error("RunID should be set")
	}

	ns := f.notificationsFor(t, constants.EntityTask, task.ID)
	got := recipientsOf(ns)
	for _, u := range users {
		if got[u.ID] != 1 {
			t.Errorf("user %d got %d notifications, want 1", u.ID, got[u.ID])
		}
	}
	for _, n := range ns {
		if n.Type != constants.NotificationDeadlineApproaching {
			t.Errorf("type = %q", n.Type)
		}
		if n.IsRead || n.InitiatorID != nil {
			t.Errorf("notification = %+v", n)
		}
	}

	if len(live.messages) != 1 {
		t.Fatalf("live messages = %d, want 1", len(live.messages))
	}
	var event struct {
		Event string              `json:"event"`
		Data  models.Notification `json:"data"`
	}
	if err := json.Unmarshal(live.messages[0], &event); err != nil {
		t.Fatal(err)
	}
	if event.Event != "notification" || event.Data.UserID != users[1].ID || event.Data.ID == 0 {
		t.Errorf("live event = %+v", event)
	}
}

func TestPipelineTaskMissed(t *testing.T) {
	f := newPipelineFixture(t, 2)
	users := createUsers(t, f.db, 3)
	task := createTask(t, f.db, "File taxes", day(-3), constants.TaskStatusPending, users[0], users[1], users[2])

	if _, err := f.pipeline.Run(context.Background(), today); err != nil {
		t.Fatal(err)
	}

	ns := f.notificationsFor(t, constants.EntityTask, task.ID)
	if len(ns) != 3 {
		t.Fatalf("notifications = %d, want 3", len(ns))
	}
	for _, n := range ns {
		if n.Type != constants.NotificationDeadlineMissed {
			t.Errorf("type = %q", n.Type)
		}
	}
}

func TestPipelineTaskDueTodayIsIgnored(t *testing.T) {
	f := newPipelineFixture(t, 2)
	users := createUsers(t, f.db, 2)
	createTask(t, f.db, "Today", day(0), constants.TaskStatusInProgress, users[0], users[1])

	summary, err := f.pipeline.Run(context.Background(), today)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Candidates != 0 || summary.Persisted != 0 {
		t.Errorf("summary = %+v, want nothing", summary)
	}
}

func TestPipelineProjectWithOwnerOnly(t *testing.T) {
	f := newPipelineFixture(t, 2)
	users := createUsers(t, f.db, 1)
	project := createProject(t, f.db, "Solo", day(1), constants.ProjectStatusPending, users[0])

	if _, err := f.pipeline.Run(context.Background(), today); err != nil {
		t.Fatal(err)
	}

	ns := f.notificationsFor(t, constants.EntityProject, project.ID)
	if len(ns) != 1 || ns[0].UserID != users[0].ID || ns[0].Type != constants.NotificationDeadlineApproaching {
		t.Errorf("notifications = %+v", ns)
	}
}

func TestPipelineOwnerAlsoAssigneeNotifiedOnce(t *testing.T) {
	f := newPipelineFixture(t, 2)
	users := createUsers(t, f.db, 2)
	project := createProject(t, f.db, "Team", day(-1), constants.ProjectStatusInProgress, users[0], users[0], users[1])

	if _, err := f.pipeline.Run(context.Background(), today); err != nil {
		t.Fatal(err)
	}

	got := recipientsOf(f.notificationsFor(t, constants.EntityProject, project.ID))
	if len(got) != 2 || got[users[0].ID] != 1 || got[users[1].ID] != 1 {
		t.Errorf("notifications per user = %v", got)
	}
}

// Cycles do not suppress repeats: an unresolved deadline is reported on every run.
func TestPipelineRepeatsNotificationsEveryRun(t *testing.T) {
	f := newPipelineFixture(t, 2)
	users := createUsers(t, f.db, 2)
	task := createTask(t, f.db, "Recurring alert", day(2), constants.TaskStatusPending, users[0], users[1])

	for i := 0; i < 2; i++ {
		if _, err := f.pipeline.Run(context.Background(), today); err != nil {
			t.Fatal(err)
		}
	}

	got := recipientsOf(f.notificationsFor(t, constants.EntityTask, task.ID))
	for _, u := range users {
		if got[u.ID] != 2 {
			t.Errorf("user %d got %d notifications, want 2", u.ID, got[u.ID])
		}
	}
}

func TestPipelineCompletedEntitiesNeverNotified(t *testing.T) {
	f := newPipelineFixture(t, 2)
	users := createUsers(t, f.db, 1)
	createTask(t, f.db, "done early", day(1), constants.TaskStatusDone, users[0])
	createTask(t, f.db, "done late", day(-5), constants.TaskStatusDone, users[0])
	createProject(t, f.db, "completed", day(-1), constants.ProjectStatusCompleted, users[0])

	summary, err := f.pipeline.Run(context.Background(), today)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Candidates != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestPipelineWindowOverride(t *testing.T) {
	f := newPipelineFixture(t, 2)
	users := createUsers(t, f.db, 1)
	createTask(t, f.db, "next week", day(5), constants.TaskStatusPending, users[0])

	summary, err := f.pipeline.Run(context.Background(), today)
	if err != nil || summary.Candidates != 0 {
		t.Fatalf("default window: %+v, %v", summary, err)
	}

	summary, err = f.pipeline.RunWithWindow(context.Background(), today, 7)
	if err != nil || summary.Candidates != 1 || summary.WarningDays != 7 {
		t.Fatalf("wide window: %+v, %v", summary, err)
	}
}

func TestPipelineScanFailureAbortsRun(t *testing.T) {
	boom := errors.New("db down")
	sink := &mockSink{}
	p := NewDeadlinePipeline(DeadlinePipelineOptions{
		Scanner: NewDeadlineScanner(&mockDeadlineStore{
			MissedTasksFunc: func(context.Context, time.Time) ([]models.Task, error) { return nil, boom },
		}, time.UTC),
		Resolver:   NewRecipientResolver(&mockRecipientStore{}),
		Dispatcher: NewNotificationDispatcher(sink, logger.Nop{}),
		Logger:     logger.Nop{},
	})

	_, err := p.Run(context.Background(), today)
	if !errors.Is(err, apperrors.ErrScanFailed) {
		t.Fatalf("err = %v", err)
	}
	if len(sink.created) != 0 {
		t.Error("nothing may be dispatched after a failed scan")
	}
}

func TestPipelineSkipsCandidateWhenResolverFails(t *testing.T) {
	sink := &mockSink{}
	p := NewDeadlinePipeline(DeadlinePipelineOptions{
		Scanner: NewDeadlineScanner(&mockDeadlineStore{
			MissedTasksFunc: func(context.Context, time.Time) ([]models.Task, error) {
				return []models.Task{
					{ID: 1, Subject: "broken", DueDate: day(-1), Status: constants.TaskStatusPending, OwnerID: 1},
					{ID: 2, Subject: "fine", DueDate: day(-1), Status: constants.TaskStatusPending, OwnerID: 2},
				}, nil
			},
		}, time.UTC),
		Resolver: NewRecipientResolver(&mockRecipientStore{
			TaskAssigneeIDsFunc: func(_ context.Context, taskID uint) ([]uint, error) {
				if taskID == 1 {
					return nil, errors.New("lookup failed")
				}
				return []uint{3}, nil
			},
		}),
		Dispatcher: NewNotificationDispatcher(sink, logger.Nop{}),
		Logger:     logger.Nop{},
	})

	summary, err := p.Run(context.Background(), today)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Candidates != 2 || summary.Skipped != 1 || summary.Persisted != 2 {
		t.Errorf("summary = %+v", summary)
	}
}
