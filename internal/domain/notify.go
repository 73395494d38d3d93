package domain

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/xcontext"
)

// notifyTarget describes one notification fan-out target.
type notifyTarget struct {
	RecipientID string
	Type        entity.NotificationType
	Message     string
	PostID      string
	CommentID   string
}

// notify creates notifications for the given targets on behalf of senderID.
// Self-notifications are dropped, and each recipient gets at most one
// notification per call even when listed twice.
func notify(
	ctx context.Context,
	notificationRepo repository.NotificationRepository,
	senderID string,
	targets ...notifyTarget,
) error {
	seen := map[string]bool{}
	for _, target := range targets {
		if target.RecipientID == senderID || seen[target.RecipientID] {
			continue
		}
		seen[target.RecipientID] = true

		notification := &entity.Notification{
			Base:     entity.Base{ID: uuid.NewString()},
			UserID:   target.RecipientID,
			SenderID: senderID,
			Type:     target.Type,
			Message:  target.Message,
		}

		if target.PostID != "" {
			notification.PostID = sql.NullString{Valid: true, String: target.PostID}
		}

		if target.CommentID != "" {
			notification.CommentID = sql.NullString{Valid: true, String: target.CommentID}
		}

		if err := notificationRepo.Create(ctx, notification); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create notification: %v", err)
			return err
		}
	}

	return nil
}
