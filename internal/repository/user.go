package repository

import (
	"context"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SearchUserFilter struct {
	Q             string
	ExcludeUserID string
	Offset        int
	Limit         int
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	GetByNameOrEmail(ctx context.Context, identifier string) (*entity.User, error)
	UpdateByID(ctx context.Context, id string, updates map[string]any) error
	Search(ctx context.Context, filter SearchUserFilter) ([]entity.User, error)
	CountSearch(ctx context.Context, filter SearchUserFilter) (int64, error)
	GetSuggested(ctx context.Context, excludeIDs []string, limit int) ([]entity.User, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	var result []entity.User
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByNameOrEmail(ctx context.Context, identifier string) (*entity.User, error) {
	var result entity.User
	err := xcontext.DB(ctx).Take(&result, "name=? OR email=?", identifier, identifier).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, updates map[string]any) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(updates).Error
}

func (r *userRepository) searchTx(ctx context.Context, filter SearchUserFilter) *gorm.DB {
	like := "%" + filter.Q + "%"
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("is_active=?", true).
		Where("id<>?", filter.ExcludeUserID).
		Where("name LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
}

func (r *userRepository) Search(ctx context.Context, filter SearchUserFilter) ([]entity.User, error) {
	var result []entity.User
	err := r.searchTx(ctx, filter).
		Order("name ASC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) CountSearch(ctx context.Context, filter SearchUserFilter) (int64, error) {
	var result int64
	if err := r.searchTx(ctx, filter).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *userRepository) GetSuggested(
	ctx context.Context, excludeIDs []string, limit int,
) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).
		Where("is_active=?", true).
		Where("id NOT IN (?)", excludeIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
