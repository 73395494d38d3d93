package domain

import (
	"testing"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/testutil"
	"github.com/pulsegram/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newMessageDomainForTest() *messageDomain {
	return NewMessageDomain(
		repository.NewMessageRepository(),
		repository.NewUserRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_messageDomain_Send(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newMessageDomainForTest()

	resp, err := d.Send(ctx, &model.SendMessageRequest{
		ReceiverID: testutil.User2.ID, Content: "hello",
	})
	require.NoError(t, err)
	require.NotZero(t, resp.Message.ID)
	require.Equal(t, testutil.User1.ID, resp.Message.SenderID)
	require.Equal(t, string(entity.MessageText), resp.Message.Type)
	require.False(t, resp.Message.IsRead)

	notifications, err := d.notificationRepo.GetList(ctx,
		repository.NotificationFilter{UserID: testutil.User2.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationMessage, notifications[0].Type)

	_, err = d.Send(ctx, &model.SendMessageRequest{ReceiverID: testutil.User1.ID, Content: "hi"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow messaging yourself"), err)

	_, err = d.Send(ctx, &model.SendMessageRequest{ReceiverID: testutil.User2.ID})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow an empty message"), err)

	_, err = d.Send(ctx, &model.SendMessageRequest{
		ReceiverID: testutil.User2.ID, Content: "x", Type: "carrier-pigeon",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid message type carrier-pigeon"), err)

	_, err = d.Send(ctx, &model.SendMessageRequest{ReceiverID: "missing", Content: "x"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found receiver"), err)
}

func Test_messageDomain_Conversations(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newMessageDomainForTest()

	_, err := d.Send(ctx, &model.SendMessageRequest{ReceiverID: testutil.User2.ID, Content: "one"})
	require.NoError(t, err)

	user2Ctx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = d.Send(user2Ctx, &model.SendMessageRequest{ReceiverID: testutil.User1.ID, Content: "two"})
	require.NoError(t, err)

	_, err = d.Send(ctx, &model.SendMessageRequest{ReceiverID: testutil.User3.ID, Content: "hey"})
	require.NoError(t, err)

	resp, err := d.GetConversations(ctx, &model.GetConversationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Conversations, 2)

	// Conversations are ordered by their latest message, newest first.
	require.Equal(t, testutil.User3.ID, resp.Conversations[0].Partner.ID)
	require.Equal(t, "hey", resp.Conversations[0].LastMessage.Content)
	require.EqualValues(t, 0, resp.Conversations[0].UnreadCount)

	require.Equal(t, testutil.User2.ID, resp.Conversations[1].Partner.ID)
	require.Equal(t, "two", resp.Conversations[1].LastMessage.Content)
	require.EqualValues(t, 1, resp.Conversations[1].UnreadCount)
}

func Test_messageDomain_GetThread(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newMessageDomainForTest()

	user2Ctx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := d.Send(user2Ctx, &model.SendMessageRequest{ReceiverID: testutil.User1.ID, Content: "a"})
	require.NoError(t, err)
	_, err = d.Send(user2Ctx, &model.SendMessageRequest{ReceiverID: testutil.User1.ID, Content: "b"})
	require.NoError(t, err)

	// The page covers the newest messages but reads oldest-first.
	resp, err := d.GetThread(ctx, &model.GetThreadRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 2)
	require.Equal(t, "a", resp.Messages[0].Content)
	require.Equal(t, "b", resp.Messages[1].Content)
	require.EqualValues(t, 2, resp.Pagination.Total)

	// Opening the thread marked both messages read.
	count, err := d.messageRepo.CountUnread(ctx, testutil.User1.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func Test_messageDomain_DeleteAndMarkRead(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newMessageDomainForTest()

	resp, err := d.Send(ctx, &model.SendMessageRequest{ReceiverID: testutil.User2.ID, Content: "oops"})
	require.NoError(t, err)

	user2Ctx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	// Only the receiver can mark a message read.
	_, err = d.MarkRead(ctx, &model.MarkMessageReadRequest{MessageID: resp.Message.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied,
		"Only the receiver can mark this message read"), err)

	_, err = d.MarkRead(user2Ctx, &model.MarkMessageReadRequest{MessageID: resp.Message.ID})
	require.NoError(t, err)

	// Only the sender can delete.
	_, err = d.Delete(user2Ctx, &model.DeleteMessageRequest{MessageID: resp.Message.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied,
		"Only the sender can delete this message"), err)

	_, err = d.Delete(ctx, &model.DeleteMessageRequest{MessageID: resp.Message.ID})
	require.NoError(t, err)

	// A deleted message disappears from threads, but the sender can still
	// audit it through their history.
	thread, err := d.GetThread(user2Ctx, &model.GetThreadRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Empty(t, thread.Messages)

	history, err := d.GetHistory(ctx, &model.GetMessageHistoryRequest{})
	require.NoError(t, err)
	require.Len(t, history.Messages, 1)
	require.True(t, history.Messages[0].IsDeleted)

	receiverHistory, err := d.GetHistory(user2Ctx, &model.GetMessageHistoryRequest{})
	require.NoError(t, err)
	require.Empty(t, receiverHistory.Messages)

	_, err = d.Delete(ctx, &model.DeleteMessageRequest{MessageID: resp.Message.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found message"), err)

	// Outsiders cannot touch the thread at all.
	user3Ctx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	sent, err := d.Send(ctx, &model.SendMessageRequest{ReceiverID: testutil.User2.ID, Content: "psst"})
	require.NoError(t, err)

	_, err = d.MarkRead(user3Ctx, &model.MarkMessageReadRequest{MessageID: sent.Message.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied,
		"This message belongs to another conversation"), err)
}
