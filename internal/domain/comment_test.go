package domain

import (
	"fmt"
	"testing"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/testutil"
	"github.com/pulsegram/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newCommentDomainForTest() *commentDomain {
	return NewCommentDomain(
		repository.NewCommentRepository(),
		repository.NewPostRepository(),
		repository.NewUserRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_commentDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)
	d := newCommentDomainForTest()

	resp, err := d.Create(ctx, &model.CreateCommentRequest{
		PostID: testutil.Post1.ID, Content: "great shot",
	})
	require.NoError(t, err)
	require.Equal(t, "great shot", resp.Comment.Content)
	require.Empty(t, resp.Comment.ParentID)

	post, err := d.postRepo.GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, post.CommentsCount)

	notifications, err := d.notificationRepo.GetList(ctx,
		repository.NotificationFilter{UserID: testutil.User1.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationComment, notifications[0].Type)

	_, err = d.Create(ctx, &model.CreateCommentRequest{PostID: testutil.Post1.ID, Content: ""})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow an empty content"), err)

	_, err = d.Create(ctx, &model.CreateCommentRequest{PostID: "missing", Content: "hello"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found post"), err)
}

func Test_commentDomain_Create_reply(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)
	d := newCommentDomainForTest()

	parent, err := d.Create(ctx, &model.CreateCommentRequest{
		PostID: testutil.Post1.ID, Content: "top level",
	})
	require.NoError(t, err)

	reply, err := d.Create(ctx, &model.CreateCommentRequest{
		PostID: testutil.Post1.ID, Content: "a reply", ParentID: parent.Comment.ID,
	})
	require.NoError(t, err)
	require.Equal(t, parent.Comment.ID, reply.Comment.ParentID)

	// Replying to a reply is rejected.
	_, err = d.Create(ctx, &model.CreateCommentRequest{
		PostID: testutil.Post1.ID, Content: "too deep", ParentID: reply.Comment.ID,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow replying to a reply"), err)

	// The parent must belong to the same post.
	_, err = d.Create(ctx, &model.CreateCommentRequest{
		PostID: testutil.Post2.ID, Content: "cross post", ParentID: parent.Comment.ID,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Parent comment belongs to another post"), err)
}

func Test_commentDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)
	d := newCommentDomainForTest()

	parent, err := d.Create(ctx, &model.CreateCommentRequest{
		PostID: testutil.Post1.ID, Content: "top level",
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := d.Create(ctx, &model.CreateCommentRequest{
			PostID:   testutil.Post1.ID,
			Content:  fmt.Sprintf("reply %d", i),
			ParentID: parent.Comment.ID,
		})
		require.NoError(t, err)
	}

	resp, err := d.GetList(ctx, &model.GetCommentsRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Comments, 1)
	require.EqualValues(t, 1, resp.Pagination.Total)

	// Only a preview of replies is inlined; the full count is reported.
	require.EqualValues(t, 5, resp.Comments[0].RepliesCount)
	require.Len(t, resp.Comments[0].Replies, 3)

	repliesResp, err := d.GetReplies(ctx, &model.GetRepliesRequest{CommentID: parent.Comment.ID})
	require.NoError(t, err)
	require.Len(t, repliesResp.Replies, 5)
	require.Equal(t, "reply 0", repliesResp.Replies[0].Content)
}

func Test_commentDomain_Delete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)
	d := newCommentDomainForTest()

	parent, err := d.Create(ctx, &model.CreateCommentRequest{
		PostID: testutil.Post1.ID, Content: "top level",
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := d.Create(ctx, &model.CreateCommentRequest{
			PostID:   testutil.Post1.ID,
			Content:  fmt.Sprintf("reply %d", i),
			ParentID: parent.Comment.ID,
		})
		require.NoError(t, err)
	}

	post, err := d.postRepo.GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, 3, post.CommentsCount)

	// A stranger can delete nothing.
	strangerCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = d.Delete(strangerCtx, &model.DeleteCommentRequest{CommentID: parent.Comment.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied,
		"Only the comment author can delete this comment"), err)

	// Not even the post owner: the comment belongs to its author.
	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = d.Delete(ownerCtx, &model.DeleteCommentRequest{CommentID: parent.Comment.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied,
		"Only the comment author can delete this comment"), err)

	// Deleting the parent removes its replies and fixes the counter.
	_, err = d.Delete(ctx, &model.DeleteCommentRequest{CommentID: parent.Comment.ID})
	require.NoError(t, err)

	post, err = d.postRepo.GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, 0, post.CommentsCount)

	count, err := d.commentRepo.CountByParentID(ctx, parent.Comment.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}
