package entity

import (
	"database/sql"
	"time"
)

type MessageType string

const (
	MessageText  = MessageType("text")
	MessageImage = MessageType("image")
	MessageVideo = MessageType("video")
	MessageAudio = MessageType("audio")
	MessageFile  = MessageType("file")
)

// Message IDs are snowflakes, so ordering by id is ordering by time.
type Message struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time

	SenderID string `gorm:"index:idx_messages_pair"`
	Sender   User   `gorm:"foreignKey:SenderID"`

	ReceiverID string `gorm:"index:idx_messages_pair"`
	Receiver   User   `gorm:"foreignKey:ReceiverID"`

	Content  string `gorm:"size:1000"`
	Type     MessageType `gorm:"default:text"`
	MediaURL string

	IsRead bool
	ReadAt sql.NullTime

	// Soft delete. Deleted messages stay retrievable by their sender but
	// disappear from listings and counts.
	IsDeleted bool
	DeletedAt sql.NullTime
}
