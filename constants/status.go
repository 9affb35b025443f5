package constants

// User roles
const (
	RoleMember = 0
	RoleAdmin  = 1
)

// Task status
const (
	TaskStatusPending    = "Pending"
	TaskStatusInProgress = "In-Progress"
	TaskStatusDone       = "Done"
)

// Project status
const (
	ProjectStatusPending    = "Pending"
	ProjectStatusInProgress = "In-Progress"
	ProjectStatusCompleted  = "Completed"
)

// OpenTaskStatuses are the statuses a task can still miss a deadline in.
var OpenTaskStatuses = []string{TaskStatusPending, TaskStatusInProgress}

// OpenProjectStatuses are the statuses a project can still miss a deadline in.
var OpenProjectStatuses = []string{ProjectStatusPending, ProjectStatusInProgress}
