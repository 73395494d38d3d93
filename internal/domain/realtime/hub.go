package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pulsegram/backend/internal/common"
	"github.com/pulsegram/backend/internal/domain"
	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/ws"
	"github.com/pulsegram/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

type session struct {
	id     string
	userID string
	client *ws.Client
}

// Hub relays chat and presence events between the websocket sessions of
// this process. Presence is mirrored to redis so the api process can see
// it.
type Hub struct {
	sessions *xsync.MapOf[string, *session]

	messageDomain domain.MessageDomain
	messageRepo   repository.MessageRepository
}

func NewHub(
	messageDomain domain.MessageDomain,
	messageRepo repository.MessageRepository,
) *Hub {
	return &Hub{
		sessions:      xsync.NewMapOf[*session](),
		messageDomain: messageDomain,
		messageRepo:   messageRepo,
	}
}

// ServeClient owns the connection until it closes. The context must carry
// the authenticated request user id.
func (h *Hub) ServeClient(ctx context.Context, conn *websocket.Conn) {
	userID := xcontext.RequestUserID(ctx)
	s := &session{
		id:     uuid.NewString(),
		userID: userID,
		client: ws.NewClient(conn),
	}

	h.sessions.Store(s.id, s)
	if h.countUserSessions(userID) == 1 {
		common.SetUserOnline(ctx, userID)
		h.broadcast(ctx, s.id, OpUserStatus, UserStatusEvent{UserID: userID, IsOnline: true})
	}

	for raw := range s.client.R {
		h.handleEvent(ctx, s, raw)
	}

	h.sessions.Delete(s.id)
	if h.countUserSessions(userID) == 0 {
		common.SetUserOffline(ctx, userID)
		h.broadcast(ctx, s.id, OpUserStatus, UserStatusEvent{
			UserID:   userID,
			IsOnline: false,
			LastSeen: common.LastSeen(ctx, userID),
		})
	}
}

func (h *Hub) handleEvent(ctx context.Context, s *session, raw []byte) {
	event, err := ParseEvent(raw)
	if err != nil {
		h.sendError(ctx, s, "Invalid event")
		return
	}

	switch event.Op {
	case OpJoinChat:
		var data JoinChatEvent
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.sendError(ctx, s, "Invalid join_chat event")
			return
		}

		// Opening a chat marks everything the partner sent as read.
		if err := h.messageRepo.MarkThreadRead(ctx, s.userID, data.PartnerID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mark thread read: %v", err)
		}

	case OpSendMessage:
		var data SendMessageEvent
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.sendError(ctx, s, "Invalid send_message event")
			return
		}

		resp, err := h.messageDomain.Send(ctx, &model.SendMessageRequest{
			ReceiverID: data.ReceiverID,
			Content:    data.Content,
			Type:       data.Type,
			MediaURL:   data.MediaURL,
		})
		if err != nil {
			h.sendError(ctx, s, err.Error())
			return
		}

		h.sendToUser(ctx, data.ReceiverID, OpNewMessage, NewMessageEvent{Message: resp.Message})

		// Echo to the sender so their other sessions stay in sync.
		h.sendToUser(ctx, s.userID, OpNewMessage, NewMessageEvent{Message: resp.Message})

	case OpTyping, OpStopTyping:
		var data TypingEvent
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.sendError(ctx, s, "Invalid typing event")
			return
		}

		op := OpUserTyping
		if event.Op == OpStopTyping {
			op = OpUserStopTyping
		}

		h.sendToUser(ctx, data.ReceiverID, op, UserTypingEvent{UserID: s.userID})

	default:
		h.sendError(ctx, s, "Unknown op "+event.Op)
	}
}

func (h *Hub) countUserSessions(userID string) int {
	count := 0
	h.sessions.Range(func(_ string, s *session) bool {
		if s.userID == userID {
			count++
		}
		return true
	})

	return count
}

// broadcast sends the event to every session except the one it came from.
func (h *Hub) broadcast(ctx context.Context, exceptSessionID, op string, data any) {
	raw, err := FormatEvent(op, data)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot format %s event: %v", op, err)
		return
	}

	h.sessions.Range(func(id string, s *session) bool {
		if id == exceptSessionID {
			return true
		}

		if err := s.client.Write(raw, false); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot write to session %s: %v", id, err)
		}
		return true
	})
}

func (h *Hub) sendToUser(ctx context.Context, userID, op string, data any) {
	raw, err := FormatEvent(op, data)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot format %s event: %v", op, err)
		return
	}

	h.sessions.Range(func(id string, s *session) bool {
		if s.userID != userID {
			return true
		}

		if err := s.client.Write(raw, false); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot write to session %s: %v", id, err)
		}
		return true
	})
}

func (h *Hub) sendError(ctx context.Context, s *session, message string) {
	raw, err := FormatEvent(OpError, ErrorEvent{Message: message})
	if err != nil {
		return
	}

	if err := s.client.Write(raw, false); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot write to session %s: %v", s.id, err)
	}
}
