package model

type CreateCommentRequest struct {
	PostID   string `json:"post_id"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id"`
}

type CreateCommentResponse struct {
	Comment Comment `json:"comment"`
}

type GetCommentsRequest struct {
	PostID string `json:"post_id"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type GetCommentsResponse struct {
	Comments   []Comment  `json:"comments"`
	Pagination Pagination `json:"pagination"`
}

type GetRepliesRequest struct {
	CommentID string `json:"comment_id"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}

type GetRepliesResponse struct {
	Replies    []Comment  `json:"replies"`
	Pagination Pagination `json:"pagination"`
}

type DeleteCommentRequest struct {
	CommentID string `json:"comment_id"`
}

type DeleteCommentResponse struct{}
