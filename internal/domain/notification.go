package domain

import (
	"context"
	"errors"

	"github.com/pulsegram/backend/internal/common"
	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationDomain interface {
	GetList(context.Context, *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	GetUnreadCount(context.Context, *model.GetUnreadNotificationCountRequest) (*model.GetUnreadNotificationCountResponse, error)
	MarkRead(context.Context, *model.MarkNotificationReadRequest) (*model.MarkNotificationReadResponse, error)
	MarkAllRead(context.Context, *model.MarkAllNotificationsReadRequest) (*model.MarkAllNotificationsReadResponse, error)
	Delete(context.Context, *model.DeleteNotificationRequest) (*model.DeleteNotificationResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationDomain(
	notificationRepo repository.NotificationRepository,
) *notificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	if req.Type != "" {
		switch entity.NotificationType(req.Type) {
		case entity.NotificationLike, entity.NotificationComment, entity.NotificationFollow,
			entity.NotificationFollowRequest, entity.NotificationMessage:
		default:
			return nil, errorx.New(errorx.BadRequest, "Invalid notification type %s", req.Type)
		}
	}

	page, limit, err := common.NormalizePage(
		ctx, req.Page, req.Limit, xcontext.Configs(ctx).ApiServer.DefaultLimit)
	if err != nil {
		return nil, err
	}

	filter := repository.NotificationFilter{
		UserID: xcontext.RequestUserID(ctx),
		Type:   entity.NotificationType(req.Type),
		Offset: common.Offset(page, limit),
		Limit:  limit,
	}

	notifications, err := d.notificationRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.notificationRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count notifications: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Notification{}
	for i := range notifications {
		result = append(result, model.ConvertNotification(&notifications[i]))
	}

	return &model.GetNotificationsResponse{
		Notifications: result,
		Pagination:    common.NewPagination(total, page, limit),
	}, nil
}

func (d *notificationDomain) GetUnreadCount(
	ctx context.Context, req *model.GetUnreadNotificationCountRequest,
) (*model.GetUnreadNotificationCountResponse, error) {
	count, err := d.notificationRepo.CountUnread(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUnreadNotificationCountResponse{Count: count}, nil
}

func (d *notificationDomain) MarkRead(
	ctx context.Context, req *model.MarkNotificationReadRequest,
) (*model.MarkNotificationReadResponse, error) {
	if _, err := d.getOwned(ctx, req.NotificationID); err != nil {
		return nil, err
	}

	if err := d.notificationRepo.MarkRead(ctx, req.NotificationID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notification read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkNotificationReadResponse{}, nil
}

func (d *notificationDomain) MarkAllRead(
	ctx context.Context, req *model.MarkAllNotificationsReadRequest,
) (*model.MarkAllNotificationsReadResponse, error) {
	if err := d.notificationRepo.MarkAllRead(ctx, xcontext.RequestUserID(ctx)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notifications read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkAllNotificationsReadResponse{}, nil
}

func (d *notificationDomain) Delete(
	ctx context.Context, req *model.DeleteNotificationRequest,
) (*model.DeleteNotificationResponse, error) {
	if _, err := d.getOwned(ctx, req.NotificationID); err != nil {
		return nil, err
	}

	if err := d.notificationRepo.Delete(ctx, req.NotificationID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete notification: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteNotificationResponse{}, nil
}

func (d *notificationDomain) getOwned(
	ctx context.Context, id string,
) (*entity.Notification, error) {
	notification, err := d.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot get notification: %v", err)
		return nil, errorx.Unknown
	}

	if notification.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "This notification belongs to another user")
	}

	return notification, nil
}
