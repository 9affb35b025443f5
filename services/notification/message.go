package notification

import (
	"fmt"
	"time"

	"github.com/Nikk8744/F-T-T-sub000/constants"

	"github.com/goccy/go-json"
)

const dateLayout = "2006-01-02"

// DeadlineMessage builds the title and body for a deadline alert
type DeadlineMessage struct {
	entityType  string
	name        string
	due         time.Time
	approaching bool
}

func NewDeadlineMessage(entityType, name string, due time.Time, approaching bool) *DeadlineMessage {
	return &DeadlineMessage{
		entityType:  entityType,
		name:        name,
		due:         due,
		approaching: approaching,
	}
}

// Type is DEADLINE_APPROACHING or DEADLINE_MISSED
func (b *DeadlineMessage) Type() string {
	if b.approaching {
		return constants.NotificationDeadlineApproaching
	}
	return constants.NotificationDeadlineMissed
}

func (b *DeadlineMessage) Build() (title, message string) {
	due := b.due.Format(dateLayout)

	switch {
	case b.entityType == constants.EntityProject && b.approaching:
		return "Project deadline approaching",
			fmt.Sprintf("Project %q is scheduled to end on %s.", b.name, due)
	case b.entityType == constants.EntityProject:
		return "Project deadline missed",
			fmt.Sprintf("Project %q was due to end on %s and is not completed yet.", b.name, due)
	case b.approaching:
		return "Task deadline approaching",
			fmt.Sprintf("Task %q is due on %s.", b.name, due)
	default:
		return "Task deadline missed",
			fmt.Sprintf("Task %q was due on %s and is not done yet.", b.name, due)
	}
}

// LiveEvent is the frame written to websocket clients
type LiveEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func EncodeEvent(event string, data interface{}) ([]byte, error) {
	payload, err := json.Marshal(LiveEvent{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode live event: %w", err)
	}
	return payload, nil
}
