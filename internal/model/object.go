package model

type Pagination struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	HasMore bool  `json:"has_more"`
}

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Website   string `json:"website"`
	AvatarURL string `json:"avatar_url"`

	IsVerified bool `json:"is_verified"`
	IsPrivate  bool `json:"is_private"`

	CreatedAt string `json:"created_at"`
}

type Post struct {
	ID       string `json:"id"`
	User     User   `json:"user"`
	Caption  string `json:"caption"`
	MediaURL string `json:"media_url"`

	// MediaType is either image or video.
	MediaType string `json:"media_type"`
	Location  string `json:"location"`
	IsPublic  bool   `json:"is_public"`

	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	IsLiked       bool  `json:"is_liked"`

	CreatedAt string `json:"created_at"`
}

type Comment struct {
	ID       string `json:"id"`
	PostID   string `json:"post_id"`
	User     User   `json:"user"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`

	RepliesCount int64     `json:"replies_count"`
	Replies      []Comment `json:"replies,omitempty"`

	CreatedAt string `json:"created_at"`
}

type FollowRequest struct {
	ID        string `json:"id"`
	Follower  User   `json:"follower"`
	CreatedAt string `json:"created_at"`
}

type Message struct {
	ID         int64  `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	Type       string `json:"type"`
	MediaURL   string `json:"media_url,omitempty"`

	IsRead    bool   `json:"is_read"`
	ReadAt    string `json:"read_at,omitempty"`
	IsDeleted bool   `json:"is_deleted,omitempty"`

	CreatedAt string `json:"created_at"`
}

type Conversation struct {
	Partner     User    `json:"partner"`
	LastMessage Message `json:"last_message"`
	UnreadCount int64   `json:"unread_count"`
	IsOnline    bool    `json:"is_online"`
}

type Notification struct {
	ID        string `json:"id"`
	Sender    User   `json:"sender"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	PostID    string `json:"post_id,omitempty"`
	CommentID string `json:"comment_id,omitempty"`

	IsRead bool   `json:"is_read"`
	ReadAt string `json:"read_at,omitempty"`

	CreatedAt string `json:"created_at"`
}
