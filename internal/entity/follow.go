package entity

type FollowStatus string

const (
	FollowPending  = FollowStatus("pending")
	FollowAccepted = FollowStatus("accepted")
)

type Follow struct {
	Base

	FollowerID string `gorm:"index:idx_follows_pair,unique"`
	Follower   User   `gorm:"foreignKey:FollowerID"`

	FollowingID string `gorm:"index:idx_follows_pair,unique"`
	Following   User   `gorm:"foreignKey:FollowingID"`

	Status FollowStatus `gorm:"default:accepted"`
}
