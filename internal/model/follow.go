package model

const (
	FollowActionFollowed        = "followed"
	FollowActionRequested       = "requested"
	FollowActionUnfollowed      = "unfollowed"
	FollowActionCanceledRequest = "canceled_request"
)

const (
	FollowRespondAccept = "accept"
	FollowRespondReject = "reject"
)

type ToggleFollowRequest struct {
	UserID string `json:"user_id"`
}

type ToggleFollowResponse struct {
	// Action is one of followed, requested, unfollowed, canceled_request.
	Action string `json:"action"`

	IsFollowing  bool   `json:"is_following"`
	FollowStatus string `json:"follow_status,omitempty"`
}

type GetFollowRequestsRequest struct{}

type GetFollowRequestsResponse struct {
	Requests []FollowRequest `json:"requests"`
}

type RespondFollowRequestRequest struct {
	RequestID string `json:"request_id"`

	// Action is either accept or reject.
	Action string `json:"action"`
}

type RespondFollowRequestResponse struct{}

type GetFollowersRequest struct {
	UserID string `json:"user_id"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type GetFollowersResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type GetFollowingRequest struct {
	UserID string `json:"user_id"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type GetFollowingResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}
