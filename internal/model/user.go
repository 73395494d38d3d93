package model

type GetUserRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type GetUserResponse struct {
	User User `json:"user"`

	PostsCount     int64 `json:"posts_count"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`

	IsFollowing  bool   `json:"is_following"`
	FollowStatus string `json:"follow_status,omitempty"`
	IsOnline     bool   `json:"is_online"`

	Posts []Post `json:"posts"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Website   *string `json:"website"`
	AvatarURL *string `json:"avatar_url"`
	IsPrivate *bool   `json:"is_private"`
}

type UpdateUserResponse struct {
	User User `json:"user"`
}

type SearchUsersRequest struct {
	Q     string `json:"q"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

type SearchUsersResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type GetSuggestedUsersRequest struct {
	Limit int `json:"limit"`
}

type GetSuggestedUsersResponse struct {
	Users []User `json:"users"`
}
