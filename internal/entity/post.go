package entity

type MediaType string

const (
	MediaImage = MediaType("image")
	MediaVideo = MediaType("video")
)

type Post struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Caption   string `gorm:"size:2200"`
	MediaURL  string
	MediaType MediaType
	Location  string `gorm:"size:100"`
	IsPublic  bool   `gorm:"default:true"`

	// Denormalized caches, kept in sync with the like and comment tables
	// by every mutating operation.
	LikesCount    int
	CommentsCount int
}
