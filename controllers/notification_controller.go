package controllers

import (
	"context"
	"strconv"

	"github.com/Nikk8744/F-T-T-sub000/dto"
	"github.com/Nikk8744/F-T-T-sub000/middleware"
	"github.com/Nikk8744/F-T-T-sub000/models"
	"github.com/Nikk8744/F-T-T-sub000/response"
	"github.com/Nikk8744/F-T-T-sub000/services"
	"github.com/Nikk8744/F-T-T-sub000/validator"

	"github.com/gin-gonic/gin"
)

// NotificationService is what the controller needs from services.NotificationService
type NotificationService interface {
	ListForUser(ctx context.Context, userID uint, unreadOnly bool, page, limit int) ([]models.Notification, int64, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, userID, notificationID uint) error
	ListForEntity(ctx context.Context, entityType string, entityID uint) ([]models.Notification, error)
}

type NotificationController struct {
	service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{service: service}
}

// GetMyNotifications godoc
// @Summary  List the caller's notifications, newest first
// @Tags     notifications
// @Produce  json
// @Param    page   query int  false "page, from 0"
// @Param    limit  query int  false "page size, max 100"
// @Param    unread query bool false "only unread"
// @Success  200 {object} response.Response{data=[]dto.NotificationResponse}
// @Security BearerAuth
// @Router   /notifications [get]
func (ctrl *NotificationController) GetMyNotifications(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var query dto.ListNotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if err := validator.ValidateStruct(query); err != nil {
		response.FromError(c, err)
		return
	}

	limit := query.Limit
	if limit == 0 {
		limit = services.DefaultPageLimit
	}

	notifications, total, err := ctrl.service.ListForUser(c.Request.Context(), userID, query.Unread, query.Page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.SuccessWithPagination(c, toNotificationResponses(notifications), query.Page, limit, total)
}

// GetUnreadCount godoc
// @Summary  Count the caller's unread notifications
// @Tags     notifications
// @Produce  json
// @Success  200 {object} response.Response{data=dto.UnreadCountResponse}
// @Security BearerAuth
// @Router   /notifications/unread-count [get]
func (ctrl *NotificationController) GetUnreadCount(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	count, err := ctrl.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, dto.UnreadCountResponse{Unread: count})
}

// MarkRead godoc
// @Summary  Mark one notification as read
// @Tags     notifications
// @Param    id path int true "notification id"
// @Success  200 {object} response.Response
// @Failure  404 {object} response.Response
// @Security BearerAuth
// @Router   /notifications/{id}/read [put]
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.service.MarkRead(c.Request.Context(), userID, id); err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, nil)
}

// MarkAllRead godoc
// @Summary  Mark all of the caller's notifications as read
// @Tags     notifications
// @Success  200 {object} response.Response{data=dto.MarkAllReadResponse}
// @Security BearerAuth
// @Router   /notifications/read-all [put]
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	updated, err := ctrl.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, dto.MarkAllReadResponse{Updated: updated})
}

// DeleteNotification godoc
// @Summary  Delete one of the caller's notifications
// @Tags     notifications
// @Param    id path int true "notification id"
// @Success  200 {object} response.Response
// @Failure  404 {object} response.Response
// @Security BearerAuth
// @Router   /notifications/{id} [delete]
func (ctrl *NotificationController) DeleteNotification(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), userID, id); err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, nil)
}

// GetEntityNotifications godoc
// @Summary  List every notification about one task, project or user (admin)
// @Tags     admin
// @Param    type path string true "Task, Project or User"
// @Param    id   path int    true "entity id"
// @Success  200 {object} response.Response{data=[]dto.NotificationResponse}
// @Security BearerAuth
// @Router   /admin/notifications/entity/{type}/{id} [get]
func (ctrl *NotificationController) GetEntityNotifications(c *gin.Context) {
	var params dto.EntityNotificationsParams
	if err := c.ShouldBindUri(&params); err != nil {
		response.BadRequest(c, "Invalid entity")
		return
	}
	if err := validator.ValidateStruct(params); err != nil {
		response.FromError(c, err)
		return
	}

	notifications, err := ctrl.service.ListForEntity(c.Request.Context(), params.EntityType, params.EntityID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, toNotificationResponses(notifications))
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func toNotificationResponses(notifications []models.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.NotificationResponse{
			ID:          n.ID,
			Type:        n.Type,
			Title:       n.Title,
			Message:     n.Message,
			EntityType:  n.EntityType,
			EntityID:    n.EntityID,
			InitiatorID: n.InitiatorID,
			IsRead:      n.IsRead,
			CreatedAt:   n.CreatedAt,
		})
	}
	return out
}
