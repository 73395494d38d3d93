package domain

import (
	"context"
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

const feedDefaultLimit = 10
const postPreviewComments = 5

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	GetFeed(context.Context, *model.GetFeedRequest) (*model.GetFeedResponse, error)
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	ToggleLike(context.Context, *model.ToggleLikePostRequest) (*model.ToggleLikePostResponse, error)
	Delete(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
}

type postDomain struct {
	postRepo         repository.PostRepository
	likeRepo         repository.LikeRepository
	commentRepo      repository.CommentRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewPostDomain(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *postDomain {
	return &postDomain{
		postRepo:         postRepo,
		likeRepo:         likeRepo,
		commentRepo:      commentRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	// A post needs a caption or a media attachment, not necessarily both.
	if req.Caption == "" && req.MediaURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow a post with no caption and no media")
	}

	mediaType := entity.MediaType("")
	if req.MediaURL != "" {
		mediaType = entity.MediaType(req.MediaType)
		if mediaType == "" {
			mediaType = entity.MediaImage
		}

		if mediaType != entity.MediaImage && mediaType != entity.MediaVideo {
			return nil, errorx.New(errorx.BadRequest, "Invalid media type %s", req.MediaType)
		}
	}

	if len(req.Caption) > 2200 {
		return nil, errorx.New(errorx.BadRequest, "Caption is too long")
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	post := &entity.Post{
		Base:      entity.Base{ID: uuid.NewString()},
		UserID:    xcontext.RequestUserID(ctx),
		Caption:   req.Caption,
		MediaURL:  req.MediaURL,
		MediaType: mediaType,
		Location:  req.Location,
		IsPublic:  isPublic,
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{Post: model.ConvertPost(created, false)}, nil
}

func (d *postDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	page, limit, err := common.NormalizePage(ctx, req.Page, req.Limit, feedDefaultLimit)
	if err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetFeed(ctx, common.Offset(page, limit), limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.postRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	result, err := convertPostsWithLikes(ctx, d.likeRepo, xcontext.RequestUserID(ctx), posts)
	if err != nil {
		return nil, err
	}

	return &model.GetFeedResponse{
		Posts:      result,
		Pagination: common.NewPagination(total, page, limit),
	}, nil
}

func (d *postDomain) Get(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	requesterID := xcontext.RequestUserID(ctx)

	isLiked := false
	if _, err := d.likeRepo.Get(ctx, requesterID, post.ID); err == nil {
		isLiked = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get like: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetLatestByPostID(ctx, post.ID, postPreviewComments)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	commentViews := []model.Comment{}
	for i := range comments {
		commentViews = append(commentViews, model.ConvertComment(&comments[i], 0, nil))
	}

	return &model.GetPostResponse{
		Post:     model.ConvertPost(post, isLiked),
		Comments: commentViews,
	}, nil
}

func (d *postDomain) ToggleLike(
	ctx context.Context, req *model.ToggleLikePostRequest,
) (*model.ToggleLikePostResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	removed, err := d.likeRepo.Delete(ctx, userID, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete like: %v", err)
		return nil, errorx.Unknown
	}

	isLiked := false
	if removed {
		if err := d.postRepo.DecreaseLikeCount(ctx, post.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease like count: %v", err)
			return nil, errorx.Unknown
		}
	} else {
		like := &entity.Like{UserID: userID, PostID: post.ID}
		if err := d.likeRepo.Create(ctx, like); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.postRepo.IncreaseLikeCount(ctx, post.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase like count: %v", err)
			return nil, errorx.Unknown
		}

		sender, err := d.userRepo.GetByID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get sender: %v", err)
			return nil, errorx.Unknown
		}

		err = notify(ctx, d.notificationRepo, userID, notifyTarget{
			RecipientID: post.UserID,
			Type:        entity.NotificationLike,
			Message:     fmt.Sprintf("%s liked your post", sender.Name),
			PostID:      post.ID,
		})
		if err != nil {
			return nil, errorx.Unknown
		}

		isLiked = true
	}

	likesCount, err := d.likeRepo.CountByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.ToggleLikePostResponse{IsLiked: isLiked, LikesCount: likesCount}, nil
}

func (d *postDomain) Delete(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the owner can delete this post")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.likeRepo.DeleteByPostID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete likes: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commentRepo.DeleteByPostID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comments: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.Delete(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.DeletePostResponse{}, nil
}
