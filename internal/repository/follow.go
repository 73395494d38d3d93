package repository

import (
	"context"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/pkg/xcontext"
)

type FollowRepository interface {
	Create(ctx context.Context, follow *entity.Follow) error
	Get(ctx context.Context, followerID, followingID string) (*entity.Follow, error)
	GetByID(ctx context.Context, id string) (*entity.Follow, error)
	Delete(ctx context.Context, id string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status entity.FollowStatus) error
	GetPendingByFollowingID(ctx context.Context, followingID string) ([]entity.Follow, error)
	GetFollowers(ctx context.Context, followingID string, offset, limit int) ([]entity.Follow, error)
	CountFollowers(ctx context.Context, followingID string) (int64, error)
	GetFollowing(ctx context.Context, followerID string, offset, limit int) ([]entity.Follow, error)
	CountFollowing(ctx context.Context, followerID string) (int64, error)
	GetFollowingIDs(ctx context.Context, followerID string) ([]string, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, follow *entity.Follow) error {
	return xcontext.DB(ctx).Create(follow).Error
}

func (r *followRepository) Get(
	ctx context.Context, followerID, followingID string,
) (*entity.Follow, error) {
	var result entity.Follow
	err := xcontext.DB(ctx).
		Take(&result, "follower_id=? AND following_id=?", followerID, followingID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followRepository) GetByID(ctx context.Context, id string) (*entity.Follow, error) {
	var result entity.Follow
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx := xcontext.DB(ctx).Delete(&entity.Follow{}, "id=?", id)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *followRepository) UpdateStatus(
	ctx context.Context, id string, status entity.FollowStatus,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("id=?", id).
		Update("status", status).Error
}

func (r *followRepository) GetPendingByFollowingID(
	ctx context.Context, followingID string,
) ([]entity.Follow, error) {
	var result []entity.Follow
	err := xcontext.DB(ctx).
		Preload("Follower").
		Where("following_id=? AND status=?", followingID, entity.FollowPending).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) GetFollowers(
	ctx context.Context, followingID string, offset, limit int,
) ([]entity.Follow, error) {
	var result []entity.Follow
	err := xcontext.DB(ctx).
		Preload("Follower").
		Where("following_id=? AND status=?", followingID, entity.FollowAccepted).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, followingID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("following_id=? AND status=?", followingID, entity.FollowAccepted).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *followRepository) GetFollowing(
	ctx context.Context, followerID string, offset, limit int,
) ([]entity.Follow, error) {
	var result []entity.Follow
	err := xcontext.DB(ctx).
		Preload("Following").
		Where("follower_id=? AND status=?", followerID, entity.FollowAccepted).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, followerID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("follower_id=? AND status=?", followerID, entity.FollowAccepted).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

// GetFollowingIDs returns the target ids of every edge the user created,
// pending ones included.
func (r *followRepository) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("follower_id=?", followerID).
		Pluck("following_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
