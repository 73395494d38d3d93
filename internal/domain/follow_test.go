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

func newFollowDomainForTest() *followDomain {
	return NewFollowDomain(
		repository.NewFollowRepository(),
		repository.NewUserRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_followDomain_Toggle_public(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newFollowDomainForTest()

	resp, err := d.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, model.FollowActionFollowed, resp.Action)
	require.True(t, resp.IsFollowing)
	require.Equal(t, string(entity.FollowAccepted), resp.FollowStatus)

	notifications, err := d.notificationRepo.GetList(ctx,
		repository.NotificationFilter{UserID: testutil.User2.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationFollow, notifications[0].Type)

	// Toggling again unfollows.
	resp, err = d.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, model.FollowActionUnfollowed, resp.Action)
	require.False(t, resp.IsFollowing)
	require.Empty(t, resp.FollowStatus)

	count, err := d.followRepo.CountFollowers(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	_, err = d.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow following yourself"), err)

	_, err = d.Toggle(ctx, &model.ToggleFollowRequest{UserID: "missing"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)
}

func Test_followDomain_Toggle_private(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newFollowDomainForTest()

	// User3 is private, so following creates a pending request.
	resp, err := d.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)
	require.Equal(t, model.FollowActionRequested, resp.Action)
	require.False(t, resp.IsFollowing)
	require.Equal(t, string(entity.FollowPending), resp.FollowStatus)

	count, err := d.followRepo.CountFollowers(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	notifications, err := d.notificationRepo.GetList(ctx,
		repository.NotificationFilter{UserID: testutil.User3.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationFollowRequest, notifications[0].Type)

	// Toggling a pending request cancels it.
	resp, err = d.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)
	require.Equal(t, model.FollowActionCanceledRequest, resp.Action)
}

func Test_followDomain_RespondRequest_accept(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newFollowDomainForTest()

	_, err := d.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)

	targetCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	requests, err := d.GetRequests(targetCtx, &model.GetFollowRequestsRequest{})
	require.NoError(t, err)
	require.Len(t, requests.Requests, 1)
	require.Equal(t, testutil.User1.ID, requests.Requests[0].Follower.ID)

	requestID := requests.Requests[0].ID

	_, err = d.RespondRequest(targetCtx, &model.RespondFollowRequestRequest{
		RequestID: requestID, Action: "ignore",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid action ignore"), err)

	// Only the requested user can respond.
	_, err = d.RespondRequest(ctx, &model.RespondFollowRequestRequest{
		RequestID: requestID, Action: model.FollowRespondAccept,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied,
		"Only the requested user can respond to this request"), err)

	_, err = d.RespondRequest(targetCtx, &model.RespondFollowRequestRequest{
		RequestID: requestID, Action: model.FollowRespondAccept,
	})
	require.NoError(t, err)

	count, err := d.followRepo.CountFollowers(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// Accepting twice fails.
	_, err = d.RespondRequest(targetCtx, &model.RespondFollowRequestRequest{
		RequestID: requestID, Action: model.FollowRespondAccept,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "This request was already handled"), err)

	// The follower hears back.
	notifications, err := d.notificationRepo.GetList(ctx,
		repository.NotificationFilter{UserID: testutil.User1.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationFollow, notifications[0].Type)
}

func Test_followDomain_RespondRequest_reject(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newFollowDomainForTest()

	_, err := d.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)

	targetCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	requests, err := d.GetRequests(targetCtx, &model.GetFollowRequestsRequest{})
	require.NoError(t, err)
	require.Len(t, requests.Requests, 1)

	_, err = d.RespondRequest(targetCtx, &model.RespondFollowRequestRequest{
		RequestID: requests.Requests[0].ID, Action: model.FollowRespondReject,
	})
	require.NoError(t, err)

	requests, err = d.GetRequests(targetCtx, &model.GetFollowRequestsRequest{})
	require.NoError(t, err)
	require.Empty(t, requests.Requests)

	_, err = d.RespondRequest(targetCtx, &model.RespondFollowRequestRequest{
		RequestID: "missing", Action: model.FollowRespondReject,
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found follow request"), err)
}

func Test_followDomain_Lists(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newFollowDomainForTest()

	_, err := d.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	user2Ctx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = d.Toggle(user2Ctx, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	followers, err := d.GetFollowers(ctx, &model.GetFollowersRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Len(t, followers.Users, 1)
	require.Equal(t, testutil.User1.ID, followers.Users[0].ID)

	following, err := d.GetFollowing(ctx, &model.GetFollowingRequest{})
	require.NoError(t, err)
	require.Len(t, following.Users, 1)
	require.Equal(t, testutil.User2.ID, following.Users[0].ID)
}
