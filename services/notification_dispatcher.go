package services

import (
	"context"
	"fmt"

	"github.com/Nikk8744/F-T-T-sub000/builders"
	"github.com/Nikk8744/F-T-T-sub000/models"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"
	"github.com/Nikk8744/F-T-T-sub000/services/notification"
)

// NotificationSink persists a notification and pushes it to live connections
type NotificationSink interface {
	Create(ctx context.Context, n *models.Notification) error
	Push(ctx context.Context, n *models.Notification) error
}

type DispatchStage string

const (
	StagePersist DispatchStage = "persist"
	StagePush    DispatchStage = "push"
)

type DispatchError struct {
	UserID uint
	Stage  DispatchStage
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s notification for user %d: %v", e.Stage, e.UserID, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// RecipientOutcome is the result for one recipient. A push failure leaves the notification persisted.
type RecipientOutcome struct {
	UserID         uint
	NotificationID uint
	PersistErr     *DispatchError
	PushErr        *DispatchError
}

func (o RecipientOutcome) Persisted() bool {
	return o.PersistErr == nil
}

type DispatchResult struct {
	Outcomes []RecipientOutcome
}

// Persisted counts recipients whose notification row was written
func (r DispatchResult) Persisted() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Persisted() {
			n++
		}
	}
	return n
}

func (r DispatchResult) Failed() int {
	return len(r.Outcomes) - r.Persisted()
}

// Pushed counts recipients persisted and pushed without error
func (r DispatchResult) Pushed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Persisted() && o.PushErr == nil {
			n++
		}
	}
	return n
}

type NotificationDispatcher struct {
	sink   NotificationSink
	logger logger.Logger
}

func NewNotificationDispatcher(sink NotificationSink, l logger.Logger) *NotificationDispatcher {
	return &NotificationDispatcher{sink: sink, logger: l}
}

// Dispatch writes one notification per recipient, in order, continuing past failures
func (d *NotificationDispatcher) Dispatch(ctx context.Context, c DeadlineCandidate, recipients []uint) DispatchResult {
	msg := notification.NewDeadlineMessage(string(c.Kind), c.Title, c.Due, c.IsApproaching)
	title, body := msg.Build()

	builder := builders.NewNotificationBuilder().
		WithType(msg.Type()).
		WithContent(title, body).
		AboutEntity(string(c.Kind), c.EntityID)

	result := DispatchResult{Outcomes: make([]RecipientOutcome, 0, len(recipients))}
	for _, userID := range recipients {
		outcome := RecipientOutcome{UserID: userID}
		n := builder.ForUser(userID).Build()

		if err := d.sink.Create(ctx, n); err != nil {
			outcome.PersistErr = &DispatchError{UserID: userID, Stage: StagePersist, Err: err}
			d.logger.Error("%v", outcome.PersistErr)
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}
		outcome.NotificationID = n.ID

		if err := d.sink.Push(ctx, n); err != nil {
			outcome.PushErr = &DispatchError{UserID: userID, Stage: StagePush, Err: err}
			d.logger.Warn("%v", outcome.PushErr)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result
}
