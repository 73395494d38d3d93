package entity

type User struct {
	Base

	Name           string `gorm:"unique"`
	Email          string `gorm:"unique"`
	HashedPassword string

	FirstName string
	LastName  string
	Bio       string
	Website   string
	AvatarURL string

	IsVerified bool
	IsPrivate  bool
	IsActive   bool `gorm:"default:true"`
}
