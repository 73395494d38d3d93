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

func newUserDomainForTest() *userDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		repository.NewPostRepository(),
		repository.NewFollowRepository(),
		repository.NewLikeRepository(),
	)
}

func Test_userDomain_Get(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)
	d := newUserDomainForTest()

	resp, err := d.Get(ctx, &model.GetUserRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, "alice", resp.User.Name)
	require.Empty(t, resp.User.Email)
	require.EqualValues(t, 1, resp.PostsCount)
	require.False(t, resp.IsFollowing)
	require.Len(t, resp.Posts, 1)

	// Requesting your own profile includes the email.
	me, err := d.Get(ctx, &model.GetUserRequest{UserID: "me"})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Email, me.User.Email)

	// Profiles can also be looked up by username.
	byName, err := d.Get(ctx, &model.GetUserRequest{Username: "alice"})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, byName.User.ID)

	_, err = d.Get(ctx, &model.GetUserRequest{UserID: "missing"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)

	_, err = d.Get(ctx, &model.GetUserRequest{Username: "nobody"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)
}

func Test_userDomain_Get_privateAccount(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newUserDomainForTest()

	postRepo := repository.NewPostRepository()
	privatePost := testutil.Post1
	privatePost.ID = "private-post"
	privatePost.UserID = testutil.User3.ID
	require.NoError(t, postRepo.Create(ctx, &privatePost))

	// Not a follower: profile visible, posts hidden.
	resp, err := d.Get(ctx, &model.GetUserRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.PostsCount)
	require.Empty(t, resp.Posts)

	// An accepted follower sees the posts.
	followDomain := newFollowDomainForTest()
	_, err = followDomain.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)

	targetCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	requests, err := followDomain.GetRequests(targetCtx, &model.GetFollowRequestsRequest{})
	require.NoError(t, err)
	_, err = followDomain.RespondRequest(targetCtx, &model.RespondFollowRequestRequest{
		RequestID: requests.Requests[0].ID, Action: model.FollowRespondAccept,
	})
	require.NoError(t, err)

	resp, err = d.Get(ctx, &model.GetUserRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)
	require.True(t, resp.IsFollowing)
	require.Len(t, resp.Posts, 1)
}

func Test_userDomain_Update(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newUserDomainForTest()

	bio := "coffee first"
	isPrivate := true
	resp, err := d.Update(ctx, &model.UpdateUserRequest{Bio: &bio, IsPrivate: &isPrivate})
	require.NoError(t, err)
	require.Equal(t, "coffee first", resp.User.Bio)
	require.True(t, resp.User.IsPrivate)

	// Absent fields stay untouched.
	require.Equal(t, testutil.User1.FirstName, resp.User.FirstName)

	_, err = d.Update(ctx, &model.UpdateUserRequest{})
	require.Equal(t, errorx.New(errorx.BadRequest, "Nothing to update"), err)
}

func Test_userDomain_Search(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newUserDomainForTest()

	extra := entity.User{
		Base:     entity.Base{ID: "user4"},
		Name:     "bobby",
		Email:    "bobby@example.com",
		IsActive: true,
	}
	require.NoError(t, repository.NewUserRepository().Create(ctx, &extra))

	resp, err := d.Search(ctx, &model.SearchUsersRequest{Q: "bo"})
	require.NoError(t, err)
	require.Len(t, resp.Users, 2)
	require.Equal(t, "bob", resp.Users[0].Name)
	require.Equal(t, "bobby", resp.Users[1].Name)

	// The requester never appears in their own results.
	resp, err = d.Search(ctx, &model.SearchUsersRequest{Q: "al"})
	require.NoError(t, err)
	require.Empty(t, resp.Users)

	resp, err = d.Search(ctx, &model.SearchUsersRequest{Q: "bo", Limit: 1})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	require.True(t, resp.Pagination.HasMore)

	// Queries shorter than two characters are rejected, whitespace ignored.
	_, err = d.Search(ctx, &model.SearchUsersRequest{Q: "b"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Query must be at least 2 characters"), err)

	_, err = d.Search(ctx, &model.SearchUsersRequest{Q: " b "})
	require.Equal(t, errorx.New(errorx.BadRequest, "Query must be at least 2 characters"), err)
}

func Test_userDomain_GetSuggested(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	d := newUserDomainForTest()

	followDomain := newFollowDomainForTest()
	_, err := followDomain.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	resp, err := d.GetSuggested(ctx, &model.GetSuggestedUsersRequest{})
	require.NoError(t, err)

	// Followed users and the requester are excluded.
	require.Len(t, resp.Users, 1)
	require.Equal(t, "carol", resp.Users[0].Name)
}
