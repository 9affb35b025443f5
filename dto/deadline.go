package dto

type TriggerDeadlineRequest struct {
	WarningDays *int `json:"warningDays" validate:"omitempty,min=0,max=365"`
}

type StartSchedulerRequest struct {
	Expression string `json:"expression" validate:"required,max=100"`
}
