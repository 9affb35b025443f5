package constants

// Notification types
const (
	NotificationDeadlineApproaching = "DEADLINE_APPROACHING"
	NotificationDeadlineMissed      = "DEADLINE_MISSED"
	NotificationTaskAssigned        = "TASK_ASSIGNED"
	NotificationProjectInvite       = "PROJECT_INVITE"
)

// Entity types referenced by notifications
const (
	EntityTask    = "Task"
	EntityProject = "Project"
	EntityUser    = "User"
)

const (
	DefaultDeadlineCron        = "0 0 * * *"
	DefaultDeadlineWarningDays = 2
	LiveChannel                = "notifications:live"
)
