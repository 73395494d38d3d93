package repository

import (
	"context"
	"errors"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetFeed(ctx context.Context, offset, limit int) ([]entity.Post, error)
	Count(ctx context.Context) (int64, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Post, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
	IncreaseLikeCount(ctx context.Context, id string) error
	DecreaseLikeCount(ctx context.Context, id string) error
	IncreaseCommentCount(ctx context.Context, id string, n int) error
	DecreaseCommentCount(ctx context.Context, id string, n int) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return xcontext.DB(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var result entity.Post
	err := xcontext.DB(ctx).Preload("User").Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *postRepository) GetFeed(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.Post{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *postRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("user_id=?", userID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Post{}, "id=?", id).Error
}

func (r *postRepository) IncreaseLikeCount(ctx context.Context, id string) error {
	return r.adjustCounter(ctx, id, "likes_count", 1)
}

func (r *postRepository) DecreaseLikeCount(ctx context.Context, id string) error {
	return r.adjustCounter(ctx, id, "likes_count", -1)
}

func (r *postRepository) IncreaseCommentCount(ctx context.Context, id string, n int) error {
	return r.adjustCounter(ctx, id, "comments_count", n)
}

func (r *postRepository) DecreaseCommentCount(ctx context.Context, id string, n int) error {
	return r.adjustCounter(ctx, id, "comments_count", -n)
}

// adjustCounter applies the delta as a single conditional update so two
// concurrent adjustments can never lose each other. Decrements are guarded
// against going negative.
func (r *postRepository) adjustCounter(ctx context.Context, id, column string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id)

	if delta < 0 {
		tx = tx.Where(column+" >= ?", -delta)
	}

	tx = tx.Update(column, gorm.Expr(column+" + ?", delta))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
