package entity

import "database/sql"

type Comment struct {
	Base

	PostID string `gorm:"index"`
	Post   Post   `gorm:"foreignKey:PostID"`

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Content string `gorm:"size:1000"`

	// ParentID references a top-level comment of the same post. Replies
	// never nest further.
	ParentID sql.NullString `gorm:"index"`
}
