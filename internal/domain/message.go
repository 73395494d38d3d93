package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/pulsegram/backend/internal/common"
	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const messageDefaultLimit = 50

type MessageDomain interface {
	GetConversations(context.Context, *model.GetConversationsRequest) (*model.GetConversationsResponse, error)
	GetThread(context.Context, *model.GetThreadRequest) (*model.GetThreadResponse, error)
	Send(context.Context, *model.SendMessageRequest) (*model.SendMessageResponse, error)
	Delete(context.Context, *model.DeleteMessageRequest) (*model.DeleteMessageResponse, error)
	MarkRead(context.Context, *model.MarkMessageReadRequest) (*model.MarkMessageReadResponse, error)
	GetHistory(context.Context, *model.GetMessageHistoryRequest) (*model.GetMessageHistoryResponse, error)
}

type messageDomain struct {
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewMessageDomain(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *messageDomain {
	return &messageDomain{
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (d *messageDomain) GetConversations(
	ctx context.Context, req *model.GetConversationsRequest,
) (*model.GetConversationsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	messages, err := d.messageRepo.GetAllByUser(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get messages: %v", err)
		return nil, errorx.Unknown
	}

	// Messages are ordered newest first, so the first one seen per partner
	// is the conversation's latest.
	partnerOrder := []string{}
	latest := map[string]*entity.Message{}
	unread := map[string]int64{}
	for i := range messages {
		partnerID := messages[i].SenderID
		if partnerID == userID {
			partnerID = messages[i].ReceiverID
		}

		if _, ok := latest[partnerID]; !ok {
			latest[partnerID] = &messages[i]
			partnerOrder = append(partnerOrder, partnerID)
		}

		if messages[i].ReceiverID == userID && !messages[i].IsRead {
			unread[partnerID]++
		}
	}

	partners := map[string]*entity.User{}
	if len(partnerOrder) > 0 {
		users, err := d.userRepo.GetByIDs(ctx, partnerOrder)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get partners: %v", err)
			return nil, errorx.Unknown
		}

		for i := range users {
			partners[users[i].ID] = &users[i]
		}
	}

	conversations := []model.Conversation{}
	for _, partnerID := range partnerOrder {
		partner, ok := partners[partnerID]
		if !ok {
			continue
		}

		conversations = append(conversations, model.Conversation{
			Partner:     model.ConvertUser(partner, false),
			LastMessage: model.ConvertMessage(latest[partnerID]),
			UnreadCount: unread[partnerID],
			IsOnline:    common.IsUserOnline(ctx, partnerID),
		})
	}

	return &model.GetConversationsResponse{Conversations: conversations}, nil
}

func (d *messageDomain) GetThread(
	ctx context.Context, req *model.GetThreadRequest,
) (*model.GetThreadResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	page, limit, err := common.NormalizePage(ctx, req.Page, req.Limit, messageDefaultLimit)
	if err != nil {
		return nil, err
	}

	messages, err := d.messageRepo.GetThread(
		ctx, userID, req.UserID, common.Offset(page, limit), limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get thread: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.messageRepo.CountThread(ctx, userID, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count thread: %v", err)
		return nil, errorx.Unknown
	}

	// Opening a thread marks everything the partner sent as read.
	if err := d.messageRepo.MarkThreadRead(ctx, userID, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark thread read: %v", err)
		return nil, errorx.Unknown
	}

	// The page is fetched newest-first but shown oldest-first.
	result := []model.Message{}
	for i := len(messages) - 1; i >= 0; i-- {
		result = append(result, model.ConvertMessage(&messages[i]))
	}

	return &model.GetThreadResponse{
		Messages:   result,
		Pagination: common.NewPagination(total, page, limit),
	}, nil
}

func (d *messageDomain) Send(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	senderID := xcontext.RequestUserID(ctx)
	if req.ReceiverID == senderID {
		return nil, errorx.New(errorx.BadRequest, "Not allow messaging yourself")
	}

	if req.Content == "" && req.MediaURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty message")
	}

	if len(req.Content) > 1000 {
		return nil, errorx.New(errorx.BadRequest, "Content is too long")
	}

	messageType := entity.MessageType(req.Type)
	if messageType == "" {
		messageType = entity.MessageText
	}

	switch messageType {
	case entity.MessageText, entity.MessageImage, entity.MessageVideo,
		entity.MessageAudio, entity.MessageFile:
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid message type %s", req.Type)
	}

	receiver, err := d.userRepo.GetByID(ctx, req.ReceiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found receiver")
		}

		xcontext.Logger(ctx).Errorf("Cannot get receiver: %v", err)
		return nil, errorx.Unknown
	}

	if !receiver.IsActive {
		return nil, errorx.New(errorx.NotFound, "Not found receiver")
	}

	message := &entity.Message{
		ID:         xcontext.SnowFlake(ctx).Generate().Int64(),
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Content:    req.Content,
		Type:       messageType,
		MediaURL:   req.MediaURL,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.messageRepo.Create(ctx, message); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	sender, err := d.userRepo.GetByID(ctx, senderID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sender: %v", err)
		return nil, errorx.Unknown
	}

	err = notify(ctx, d.notificationRepo, senderID, notifyTarget{
		RecipientID: receiver.ID,
		Type:        entity.NotificationMessage,
		Message:     fmt.Sprintf("%s sent you a message", sender.Name),
	})
	if err != nil {
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.SendMessageResponse{Message: model.ConvertMessage(message)}, nil
}

func (d *messageDomain) Delete(
	ctx context.Context, req *model.DeleteMessageRequest,
) (*model.DeleteMessageResponse, error) {
	message, err := d.getVisibleMessage(ctx, req.MessageID)
	if err != nil {
		return nil, err
	}

	if message.SenderID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the sender can delete this message")
	}

	if err := d.messageRepo.SoftDelete(ctx, message.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete message: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteMessageResponse{}, nil
}

func (d *messageDomain) MarkRead(
	ctx context.Context, req *model.MarkMessageReadRequest,
) (*model.MarkMessageReadResponse, error) {
	message, err := d.getVisibleMessage(ctx, req.MessageID)
	if err != nil {
		return nil, err
	}

	if message.ReceiverID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the receiver can mark this message read")
	}

	if err := d.messageRepo.MarkRead(ctx, message.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark message read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkMessageReadResponse{}, nil
}

// GetHistory returns every message the user sent or received, newest
// first, without the per-thread read side effect. Messages the user
// deleted are included for their own audit, flagged is_deleted.
func (d *messageDomain) GetHistory(
	ctx context.Context, req *model.GetMessageHistoryRequest,
) (*model.GetMessageHistoryResponse, error) {
	messages, err := d.messageRepo.GetHistoryByUser(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get messages: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Message{}
	for i := range messages {
		result = append(result, model.ConvertMessage(&messages[i]))
	}

	return &model.GetMessageHistoryResponse{Messages: result}, nil
}

func (d *messageDomain) getVisibleMessage(
	ctx context.Context, id int64,
) (*entity.Message, error) {
	message, err := d.messageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found message")
		}

		xcontext.Logger(ctx).Errorf("Cannot get message: %v", err)
		return nil, errorx.Unknown
	}

	if message.IsDeleted {
		return nil, errorx.New(errorx.NotFound, "Not found message")
	}

	userID := xcontext.RequestUserID(ctx)
	if message.SenderID != userID && message.ReceiverID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "This message belongs to another conversation")
	}

	return message, nil
}
