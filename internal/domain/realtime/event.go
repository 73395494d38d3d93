package realtime

import (
	"encoding/json"

	"github.com/pulsegram/backend/internal/model"
)

const (
	// Client to server.
	OpJoinChat    = "join_chat"
	OpSendMessage = "send_message"
	OpTyping      = "typing"
	OpStopTyping  = "stop_typing"

	// Server to client.
	OpUserStatus     = "user_status"
	OpNewMessage     = "new_message"
	OpUserTyping     = "user_typing"
	OpUserStopTyping = "user_stop_typing"
	OpError          = "error"
)

// Event is the wire envelope. The op discriminates how d is decoded.
type Event struct {
	Op   string          `json:"o"`
	Data json.RawMessage `json:"d"`
}

func ParseEvent(raw []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

func FormatEvent(op string, data any) ([]byte, error) {
	d, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Event{Op: op, Data: d})
}

type JoinChatEvent struct {
	PartnerID string `json:"partner_id"`
}

type SendMessageEvent struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	Type       string `json:"type"`
	MediaURL   string `json:"media_url"`
}

type TypingEvent struct {
	ReceiverID string `json:"receiver_id"`
}

type UserStatusEvent struct {
	UserID   string `json:"user_id"`
	IsOnline bool   `json:"is_online"`
	LastSeen string `json:"last_seen,omitempty"`
}

type NewMessageEvent struct {
	Message model.Message `json:"message"`
}

type UserTypingEvent struct {
	UserID string `json:"user_id"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}
