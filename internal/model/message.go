package model

type GetConversationsRequest struct{}

type GetConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type GetThreadRequest struct {
	UserID string `json:"user_id"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type GetThreadResponse struct {
	Messages   []Message  `json:"messages"`
	Pagination Pagination `json:"pagination"`
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	Type       string `json:"type"`
	MediaURL   string `json:"media_url"`
}

type SendMessageResponse struct {
	Message Message `json:"message"`
}

type DeleteMessageRequest struct {
	MessageID int64 `json:"message_id"`
}

type DeleteMessageResponse struct{}

type MarkMessageReadRequest struct {
	MessageID int64 `json:"message_id"`
}

type MarkMessageReadResponse struct{}

type GetMessageHistoryRequest struct{}

type GetMessageHistoryResponse struct {
	Messages []Message `json:"messages"`
}
