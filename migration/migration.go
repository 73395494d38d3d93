package migration

import (
	"context"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Post{},
		&entity.Like{},
		&entity.Comment{},
		&entity.Follow{},
		&entity.Message{},
		&entity.Notification{},
	)
}
