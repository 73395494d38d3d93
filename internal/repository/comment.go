package repository

import (
	"context"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetTopLevelByPostID(ctx context.Context, postID string, offset, limit int) ([]entity.Comment, error)
	CountTopLevelByPostID(ctx context.Context, postID string) (int64, error)
	GetByParentID(ctx context.Context, parentID string, offset, limit int) ([]entity.Comment, error)
	CountByParentID(ctx context.Context, parentID string) (int64, error)
	GetByParentIDs(ctx context.Context, parentIDs []string) ([]entity.Comment, error)
	GetLatestByPostID(ctx context.Context, postID string, limit int) ([]entity.Comment, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteWithReplies(ctx context.Context, id string) (int64, error)
	DeleteByPostID(ctx context.Context, postID string) error
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return xcontext.DB(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var result entity.Comment
	err := xcontext.DB(ctx).Preload("User").Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *commentRepository) GetTopLevelByPostID(
	ctx context.Context, postID string, offset, limit int,
) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("User").
		Where("post_id=? AND parent_id IS NULL", postID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) CountTopLevelByPostID(ctx context.Context, postID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("post_id=? AND parent_id IS NULL", postID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *commentRepository) GetByParentID(
	ctx context.Context, parentID string, offset, limit int,
) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("User").
		Where("parent_id=?", parentID).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) CountByParentID(ctx context.Context, parentID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("parent_id=?", parentID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *commentRepository) GetByParentIDs(
	ctx context.Context, parentIDs []string,
) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("User").
		Where("parent_id IN (?)", parentIDs).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) GetLatestByPostID(
	ctx context.Context, postID string, limit int,
) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("User").
		Where("post_id=?", postID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) (int64, error) {
	tx := xcontext.DB(ctx).Delete(&entity.Comment{}, "id=?", id)
	return tx.RowsAffected, tx.Error
}

// DeleteWithReplies removes the comment and every direct reply in one
// statement and reports the exact number of removed rows.
func (r *commentRepository) DeleteWithReplies(ctx context.Context, id string) (int64, error) {
	tx := xcontext.DB(ctx).Delete(&entity.Comment{}, "id=? OR parent_id=?", id, id)
	return tx.RowsAffected, tx.Error
}

func (r *commentRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Delete(&entity.Comment{}, "post_id=?", postID).Error
}
