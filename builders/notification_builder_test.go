package builders

import (
	"testing"

	"github.com/Nikk8744/F-T-T-sub000/constants"
)

func TestNotificationBuilderReuse(t *testing.T) {
	b := NewNotificationBuilder().
		WithType(constants.NotificationDeadlineMissed).
		WithContent("Task deadline missed", "late").
		AboutEntity(constants.EntityTask, 12)

	first := b.ForUser(1).Build()
	second := b.ForUser(2).Build()

	if first.UserID != 1 || second.UserID != 2 {
		t.Fatalf("user ids = %d, %d", first.UserID, second.UserID)
	}
	if first == second {
		t.Fatal("Build must return distinct notifications")
	}
	if first.InitiatorID != nil {
		t.Error("system notifications carry no initiator")
	}
	if first.IsRead {
		t.Error("new notifications are unread")
	}
	if second.EntityType != constants.EntityTask || second.EntityID != 12 {
		t.Errorf("entity = %s/%d", second.EntityType, second.EntityID)
	}
}

func TestNotificationBuilderInitiatorIsCopied(t *testing.T) {
	b := NewNotificationBuilder().InitiatedBy(5)
	n := b.Build()
	b.InitiatedBy(6)

	if n.InitiatorID == nil || *n.InitiatorID != 5 {
		t.Errorf("InitiatorID = %v, want 5", n.InitiatorID)
	}
}
