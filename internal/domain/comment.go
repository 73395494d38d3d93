package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pulsegram/backend/internal/common"
	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const repliesPreviewLimit = 3

type CommentDomain interface {
	Create(context.Context, *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetList(context.Context, *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
	GetReplies(context.Context, *model.GetRepliesRequest) (*model.GetRepliesResponse, error)
	Delete(context.Context, *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
}

type commentDomain struct {
	commentRepo      repository.CommentRepository
	postRepo         repository.PostRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *commentDomain {
	return &commentDomain{
		commentRepo:      commentRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (d *commentDomain) Create(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty content")
	}

	if len(req.Content) > 1000 {
		return nil, errorx.New(errorx.BadRequest, "Content is too long")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	var parent *entity.Comment
	if req.ParentID != "" {
		parent, err = d.commentRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found parent comment")
			}

			xcontext.Logger(ctx).Errorf("Cannot get parent comment: %v", err)
			return nil, errorx.Unknown
		}

		if parent.PostID != post.ID {
			return nil, errorx.New(errorx.BadRequest, "Parent comment belongs to another post")
		}

		if parent.ParentID.Valid {
			return nil, errorx.New(errorx.BadRequest, "Not allow replying to a reply")
		}
	}

	userID := xcontext.RequestUserID(ctx)
	comment := &entity.Comment{
		Base:    entity.Base{ID: uuid.NewString()},
		PostID:  post.ID,
		UserID:  userID,
		Content: req.Content,
	}

	if parent != nil {
		comment.ParentID = sql.NullString{Valid: true, String: parent.ID}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.IncreaseCommentCount(ctx, post.ID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase comment count: %v", err)
		return nil, errorx.Unknown
	}

	sender, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sender: %v", err)
		return nil, errorx.Unknown
	}

	targets := []notifyTarget{{
		RecipientID: post.UserID,
		Type:        entity.NotificationComment,
		Message:     fmt.Sprintf("%s commented on your post", sender.Name),
		PostID:      post.ID,
		CommentID:   comment.ID,
	}}

	if parent != nil {
		targets = append(targets, notifyTarget{
			RecipientID: parent.UserID,
			Type:        entity.NotificationComment,
			Message:     fmt.Sprintf("%s replied to your comment", sender.Name),
			PostID:      post.ID,
			CommentID:   comment.ID,
		})
	}

	if err := notify(ctx, d.notificationRepo, userID, targets...); err != nil {
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	created, err := d.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCommentResponse{Comment: model.ConvertComment(created, 0, nil)}, nil
}

func (d *commentDomain) GetList(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	page, limit, err := common.NormalizePage(
		ctx, req.Page, req.Limit, xcontext.Configs(ctx).ApiServer.DefaultLimit)
	if err != nil {
		return nil, err
	}

	comments, err := d.commentRepo.GetTopLevelByPostID(
		ctx, req.PostID, common.Offset(page, limit), limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.commentRepo.CountTopLevelByPostID(ctx, req.PostID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count comments: %v", err)
		return nil, errorx.Unknown
	}

	repliesByParent := map[string][]entity.Comment{}
	if len(comments) > 0 {
		parentIDs := make([]string, 0, len(comments))
		for i := range comments {
			parentIDs = append(parentIDs, comments[i].ID)
		}

		replies, err := d.commentRepo.GetByParentIDs(ctx, parentIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get replies: %v", err)
			return nil, errorx.Unknown
		}

		for i := range replies {
			parentID := replies[i].ParentID.String
			repliesByParent[parentID] = append(repliesByParent[parentID], replies[i])
		}
	}

	result := []model.Comment{}
	for i := range comments {
		replies := repliesByParent[comments[i].ID]

		preview := []model.Comment{}
		for j := range replies {
			if j == repliesPreviewLimit {
				break
			}
			preview = append(preview, model.ConvertComment(&replies[j], 0, nil))
		}

		result = append(result,
			model.ConvertComment(&comments[i], int64(len(replies)), preview))
	}

	return &model.GetCommentsResponse{
		Comments:   result,
		Pagination: common.NewPagination(total, page, limit),
	}, nil
}

func (d *commentDomain) GetReplies(
	ctx context.Context, req *model.GetRepliesRequest,
) (*model.GetRepliesResponse, error) {
	if _, err := d.commentRepo.GetByID(ctx, req.CommentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	page, limit, err := common.NormalizePage(
		ctx, req.Page, req.Limit, xcontext.Configs(ctx).ApiServer.DefaultLimit)
	if err != nil {
		return nil, err
	}

	replies, err := d.commentRepo.GetByParentID(
		ctx, req.CommentID, common.Offset(page, limit), limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get replies: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.commentRepo.CountByParentID(ctx, req.CommentID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count replies: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Comment{}
	for i := range replies {
		result = append(result, model.ConvertComment(&replies[i], 0, nil))
	}

	return &model.GetRepliesResponse{
		Replies:    result,
		Pagination: common.NewPagination(total, page, limit),
	}, nil
}

func (d *commentDomain) Delete(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.commentRepo.GetByID(ctx, req.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied,
			"Only the comment author can delete this comment")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	var removed int64
	if comment.ParentID.Valid {
		removed, err = d.commentRepo.Delete(ctx, comment.ID)
	} else {
		removed, err = d.commentRepo.DeleteWithReplies(ctx, comment.ID)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	if removed > 0 {
		if err := d.postRepo.DecreaseCommentCount(ctx, comment.PostID, int(removed)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease comment count: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.DeleteCommentResponse{}, nil
}
