package repository

import (
	"context"
	"time"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/pkg/xcontext"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id int64) (*entity.Message, error)
	GetThread(ctx context.Context, userID, partnerID string, offset, limit int) ([]entity.Message, error)
	CountThread(ctx context.Context, userID, partnerID string) (int64, error)
	GetAllByUser(ctx context.Context, userID string) ([]entity.Message, error)
	GetHistoryByUser(ctx context.Context, userID string) ([]entity.Message, error)
	CountUnread(ctx context.Context, receiverID, senderID string) (int64, error)
	MarkThreadRead(ctx context.Context, receiverID, senderID string) error
	MarkRead(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) error
}

type messageRepository struct{}

func NewMessageRepository() *messageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return xcontext.DB(ctx).Create(message).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*entity.Message, error) {
	var result entity.Message
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetThread returns messages between the two users in both directions,
// newest first. Messages ids are snowflakes, so ordering by id is ordering
// by creation time.
func (r *messageRepository) GetThread(
	ctx context.Context, userID, partnerID string, offset, limit int,
) ([]entity.Message, error) {
	var result []entity.Message
	err := xcontext.DB(ctx).
		Where("is_deleted=?", false).
		Where(
			"(sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?)",
			userID, partnerID, partnerID, userID,
		).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *messageRepository) CountThread(ctx context.Context, userID, partnerID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("is_deleted=?", false).
		Where(
			"(sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?)",
			userID, partnerID, partnerID, userID,
		).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *messageRepository) GetAllByUser(ctx context.Context, userID string) ([]entity.Message, error) {
	var result []entity.Message
	err := xcontext.DB(ctx).
		Where("is_deleted=?", false).
		Where("sender_id=? OR receiver_id=?", userID, userID).
		Order("id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetHistoryByUser also returns the messages the user deleted, for their
// own audit. Deleted messages the partner sent stay hidden.
func (r *messageRepository) GetHistoryByUser(ctx context.Context, userID string) ([]entity.Message, error) {
	var result []entity.Message
	err := xcontext.DB(ctx).
		Where("sender_id=? OR receiver_id=?", userID, userID).
		Where("is_deleted=? OR sender_id=?", false, userID).
		Order("id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID, senderID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("receiver_id=? AND sender_id=? AND is_read=? AND is_deleted=?",
			receiverID, senderID, false, false).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *messageRepository) MarkThreadRead(ctx context.Context, receiverID, senderID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("receiver_id=? AND sender_id=? AND is_read=?", receiverID, senderID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *messageRepository) MarkRead(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("id=?", id).
		Updates(map[string]any{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *messageRepository) SoftDelete(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("id=?", id).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": time.Now(),
		}).Error
}
