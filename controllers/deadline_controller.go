package controllers

import (
	"context"
	"errors"
	"io"

	"github.com/Nikk8744/F-T-T-sub000/dto"
	"github.com/Nikk8744/F-T-T-sub000/jobs"
	"github.com/Nikk8744/F-T-T-sub000/response"
	"github.com/Nikk8744/F-T-T-sub000/services"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"
	"github.com/Nikk8744/F-T-T-sub000/validator"

	"github.com/gin-gonic/gin"
)

// DeadlineScheduler is the operator surface of jobs.Scheduler
type DeadlineScheduler interface {
	Start(expr string) error
	Stop()
	Status() jobs.SchedulerStatus
	Trigger(ctx context.Context, warningDays int) (services.RunSummary, error)
}

type DeadlineController struct {
	scheduler DeadlineScheduler
	logger    logger.Logger
}

func NewDeadlineController(scheduler DeadlineScheduler, l logger.Logger) *DeadlineController {
	return &DeadlineController{scheduler: scheduler, logger: l}
}

// TriggerDeadlineCheck godoc
// @Summary  Run the deadline check now, outside the schedule
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body body dto.TriggerDeadlineRequest false "optional warning window override"
// @Success  200 {object} response.Response{data=services.RunSummary}
// @Failure  500 {object} response.Response
// @Security BearerAuth
// @Router   /admin/deadlines/check [post]
func (ctrl *DeadlineController) TriggerDeadlineCheck(c *gin.Context) {
	var req dto.TriggerDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		response.FromError(c, err)
		return
	}

	warningDays := -1
	if req.WarningDays != nil {
		warningDays = *req.WarningDays
	}

	summary, err := ctrl.scheduler.Trigger(c.Request.Context(), warningDays)
	if err != nil {
		ctrl.logger.Error("manual deadline check failed: %v", err)
		response.FromError(c, err)
		return
	}

	response.Success(c, summary)
}

// GetSchedulerStatus godoc
// @Summary  Show the deadline scheduler state
// @Tags     admin
// @Success  200 {object} response.Response{data=jobs.SchedulerStatus}
// @Security BearerAuth
// @Router   /admin/scheduler [get]
func (ctrl *DeadlineController) GetSchedulerStatus(c *gin.Context) {
	response.Success(c, ctrl.scheduler.Status())
}

// StartScheduler godoc
// @Summary  (Re)start the deadline scheduler with a 5-field cron expression
// @Tags     admin
// @Accept   json
// @Param    body body dto.StartSchedulerRequest true "cron expression"
// @Success  200 {object} response.Response{data=jobs.SchedulerStatus}
// @Security BearerAuth
// @Router   /admin/scheduler/start [post]
func (ctrl *DeadlineController) StartScheduler(c *gin.Context) {
	var req dto.StartSchedulerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		response.FromError(c, err)
		return
	}

	if err := ctrl.scheduler.Start(req.Expression); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, ctrl.scheduler.Status())
}

// StopScheduler godoc
// @Summary  Stop the deadline scheduler
// @Tags     admin
// @Success  200 {object} response.Response{data=jobs.SchedulerStatus}
// @Security BearerAuth
// @Router   /admin/scheduler/stop [post]
func (ctrl *DeadlineController) StopScheduler(c *gin.Context) {
	ctrl.scheduler.Stop()
	response.Success(c, ctrl.scheduler.Status())
}
