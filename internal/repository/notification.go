package repository

import (
	"context"
	"time"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/pkg/xcontext"
)

type NotificationFilter struct {
	UserID string
	Type   entity.NotificationType
	Offset int
	Limit  int
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	GetList(ctx context.Context, filter NotificationFilter) ([]entity.Notification, error)
	Count(ctx context.Context, filter NotificationFilter) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}

type notificationRepository struct{}

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return xcontext.DB(ctx).Create(notification).Error
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	var result entity.Notification
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *notificationRepository) GetList(
	ctx context.Context, filter NotificationFilter,
) ([]entity.Notification, error) {
	tx := xcontext.DB(ctx).
		Preload("Sender").
		Where("user_id=?", filter.UserID)
	if filter.Type != "" {
		tx = tx.Where("type=?", filter.Type)
	}

	var result []entity.Notification
	err := tx.Order("created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) Count(ctx context.Context, filter NotificationFilter) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=?", filter.UserID)
	if filter.Type != "" {
		tx = tx.Where("type=?", filter.Type)
	}

	var result int64
	if err := tx.Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND is_read=?", userID, false).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("id=?", id).
		Updates(map[string]any{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND is_read=?", userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Notification{}, "id=?", id).Error
}
