package services

import (
	"context"
	"fmt"

	"github.com/Nikk8744/F-T-T-sub000/commands"
	apperrors "github.com/Nikk8744/F-T-T-sub000/errors"
	"github.com/Nikk8744/F-T-T-sub000/models"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"
	"github.com/Nikk8744/F-T-T-sub000/services/notification"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	liveEventName    = "notification"
)

type NotificationService struct {
	db     *gorm.DB
	broker notification.Broker
	cache  unreadCache
	logger logger.Logger
}

type NotificationServiceOptions struct {
	DB     *gorm.DB
	Broker notification.Broker
	// Cache holds unread counts; nil reads straight from the database
	Cache  *redis.Client
	Logger logger.Logger
}

func NewNotificationService(opts NotificationServiceOptions) *NotificationService {
	return &NotificationService{
		db:     opts.DB,
		broker: opts.Broker,
		cache:  unreadCache{rdb: opts.Cache},
		logger: opts.Logger,
	}
}

// Create persists n and fills in its ID and CreatedAt
func (s *NotificationService) Create(ctx context.Context, n *models.Notification) error {
	if n.UserID == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "notification needs a recipient", apperrors.ErrInvalidInput)
	}
	if _, err := commands.NewCreateNotificationCommand(n, s.db).Execute(ctx); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "failed to save notification", err)
	}
	s.invalidateUnread(ctx, n.UserID)
	return nil
}

// Push sends n to the recipient's live connections. It never blocks on the client.
func (s *NotificationService) Push(ctx context.Context, n *models.Notification) error {
	if s.broker == nil {
		return nil
	}
	payload, err := notification.EncodeEvent(liveEventName, n)
	if err != nil {
		return err
	}
	return s.broker.Publish(ctx, n.UserID, payload)
}

// Notify persists then pushes. Push failures are logged only.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) error {
	if err := s.Create(ctx, n); err != nil {
		return err
	}
	if err := s.Push(ctx, n); err != nil {
		s.logger.Warn("live push of notification %d to user %d failed: %v", n.ID, n.UserID, err)
	}
	return nil
}

// ListForUser returns one page, newest first, and the total matching count
func (s *NotificationService) ListForUser(ctx context.Context, userID uint, unreadOnly bool, page, limit int) ([]models.Notification, int64, error) {
	page, limit = normalizePage(page, limit)

	tx := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "failed to count notifications", err)
	}

	notifications := make([]models.Notification, 0)
	err := tx.Order("created_at DESC").Order("id DESC").
		Offset(page * limit).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "failed to list notifications", err)
	}
	return notifications, total, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if count, ok := s.cache.get(ctx, userID); ok {
		return count, nil
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "failed to count unread notifications", err)
	}
	if err := s.cache.set(ctx, userID, count); err != nil {
		s.logger.Warn("caching unread count for user %d: %v", userID, err)
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	if notificationID == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidID, "invalid notification id", apperrors.ErrInvalidInput)
	}
	affected, err := commands.NewMarkReadCommand(userID, notificationID, s.db).Execute(ctx)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "failed to mark notification as read", err)
	}
	if affected == 0 {
		return notFound(notificationID)
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	affected, err := commands.NewMarkReadCommand(userID, 0, s.db).Execute(ctx)
	if err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "failed to mark notifications as read", err)
	}
	s.invalidateUnread(ctx, userID)
	return affected, nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uint) error {
	affected, err := commands.NewDeleteNotificationCommand(userID, notificationID, s.db).Execute(ctx)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "failed to delete notification", err)
	}
	if affected == 0 {
		return notFound(notificationID)
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

// ListForEntity returns every notification about one task, project or user
func (s *NotificationService) ListForEntity(ctx context.Context, entityType string, entityID uint) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	err := s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").Order("id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "failed to list notifications", err)
	}
	return notifications, nil
}

func (s *NotificationService) invalidateUnread(ctx context.Context, userID uint) {
	if err := s.cache.invalidate(ctx, userID); err != nil {
		s.logger.Warn("dropping cached unread count for user %d: %v", userID, err)
	}
}

func notFound(id uint) error {
	return apperrors.NewAppError(apperrors.ErrCodeNotificationNotFound,
		fmt.Sprintf("notification %d not found", id), apperrors.ErrNotificationNotFound)
}

func normalizePage(page, limit int) (int, int) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
