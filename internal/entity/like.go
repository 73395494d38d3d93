package entity

import "time"

type Like struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	PostID string `gorm:"primaryKey"`
	Post   Post   `gorm:"foreignKey:PostID"`
}
