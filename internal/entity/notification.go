package entity

import "database/sql"

type NotificationType string

const (
	NotificationLike          = NotificationType("like")
	NotificationComment       = NotificationType("comment")
	NotificationFollow        = NotificationType("follow")
	NotificationFollowRequest = NotificationType("follow_request")
	NotificationMessage       = NotificationType("message")
)

type Notification struct {
	Base

	// UserID is the recipient.
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	SenderID string
	Sender   User `gorm:"foreignKey:SenderID"`

	Type    NotificationType
	Message string

	PostID    sql.NullString
	CommentID sql.NullString

	IsRead bool
	ReadAt sql.NullTime
}
