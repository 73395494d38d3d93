package model

type CreatePostRequest struct {
	Caption   string `json:"caption"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
	Location  string `json:"location"`
	IsPublic  *bool  `json:"is_public"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetFeedRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type GetFeedResponse struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

type GetPostRequest struct {
	PostID string `json:"post_id"`
}

type GetPostResponse struct {
	Post Post `json:"post"`

	// Comments holds the few most recent comments for preview.
	Comments []Comment `json:"comments"`
}

type ToggleLikePostRequest struct {
	PostID string `json:"post_id"`
}

type ToggleLikePostResponse struct {
	IsLiked    bool  `json:"is_liked"`
	LikesCount int64 `json:"likes_count"`
}

type DeletePostRequest struct {
	PostID string `json:"post_id"`
}

type DeletePostResponse struct{}
