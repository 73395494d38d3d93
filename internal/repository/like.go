package repository

import (
	"context"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/pkg/xcontext"
)

type LikeRepository interface {
	Create(ctx context.Context, like *entity.Like) error
	Get(ctx context.Context, userID, postID string) (*entity.Like, error)
	Delete(ctx context.Context, userID, postID string) (bool, error)
	CountByPostID(ctx context.Context, postID string) (int64, error)
	GetByUserAndPosts(ctx context.Context, userID string, postIDs []string) ([]entity.Like, error)
	DeleteByPostID(ctx context.Context, postID string) error
}

type likeRepository struct{}

func NewLikeRepository() *likeRepository {
	return &likeRepository{}
}

func (r *likeRepository) Create(ctx context.Context, like *entity.Like) error {
	return xcontext.DB(ctx).Create(like).Error
}

func (r *likeRepository) Get(ctx context.Context, userID, postID string) (*entity.Like, error) {
	var result entity.Like
	err := xcontext.DB(ctx).Take(&result, "user_id=? AND post_id=?", userID, postID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Delete reports whether a row was actually removed, so the caller can
// toggle without a separate existence check.
func (r *likeRepository) Delete(ctx context.Context, userID, postID string) (bool, error) {
	tx := xcontext.DB(ctx).Delete(&entity.Like{}, "user_id=? AND post_id=?", userID, postID)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *likeRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Like{}).
		Where("post_id=?", postID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *likeRepository) GetByUserAndPosts(
	ctx context.Context, userID string, postIDs []string,
) ([]entity.Like, error) {
	var result []entity.Like
	err := xcontext.DB(ctx).
		Where("user_id=? AND post_id IN (?)", userID, postIDs).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *likeRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Delete(&entity.Like{}, "post_id=?", postID).Error
}
