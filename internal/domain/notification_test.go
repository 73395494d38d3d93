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

func Test_notificationDomain_ListAndFilter(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)

	postDomain := newPostDomainForTest()
	_, err := postDomain.ToggleLike(ctx, &model.ToggleLikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	followDomain := newFollowDomainForTest()
	_, err = followDomain.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	user1Ctx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	d := NewNotificationDomain(repository.NewNotificationRepository())

	resp, err := d.GetList(user1Ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)
	require.EqualValues(t, 2, resp.Pagination.Total)

	resp, err = d.GetList(user1Ctx, &model.GetNotificationsRequest{
		Type: string(entity.NotificationLike),
	})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	require.Equal(t, string(entity.NotificationLike), resp.Notifications[0].Type)
	require.Equal(t, testutil.User2.ID, resp.Notifications[0].Sender.ID)

	_, err = d.GetList(user1Ctx, &model.GetNotificationsRequest{Type: "carrier-pigeon"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid notification type carrier-pigeon"), err)
}

func Test_notificationDomain_ReadFlow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)

	postDomain := newPostDomainForTest()
	_, err := postDomain.ToggleLike(ctx, &model.ToggleLikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	followDomain := newFollowDomainForTest()
	_, err = followDomain.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	user1Ctx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	d := NewNotificationDomain(repository.NewNotificationRepository())

	unread, err := d.GetUnreadCount(user1Ctx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 2, unread.Count)

	list, err := d.GetList(user1Ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)

	// Others cannot read user1's notifications.
	_, err = d.MarkRead(ctx, &model.MarkNotificationReadRequest{
		NotificationID: list.Notifications[0].ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied,
		"This notification belongs to another user"), err)

	_, err = d.MarkRead(user1Ctx, &model.MarkNotificationReadRequest{
		NotificationID: list.Notifications[0].ID,
	})
	require.NoError(t, err)

	unread, err = d.GetUnreadCount(user1Ctx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, unread.Count)

	_, err = d.MarkAllRead(user1Ctx, &model.MarkAllNotificationsReadRequest{})
	require.NoError(t, err)

	unread, err = d.GetUnreadCount(user1Ctx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 0, unread.Count)

	_, err = d.Delete(user1Ctx, &model.DeleteNotificationRequest{
		NotificationID: list.Notifications[0].ID,
	})
	require.NoError(t, err)

	list, err = d.GetList(user1Ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)

	_, err = d.Delete(user1Ctx, &model.DeleteNotificationRequest{NotificationID: "missing"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found notification"), err)
}
