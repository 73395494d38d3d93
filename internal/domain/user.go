package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/pulsegram/backend/internal/common"
	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	Get(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	Update(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	Search(context.Context, *model.SearchUsersRequest) (*model.SearchUsersResponse, error)
	GetSuggested(context.Context, *model.GetSuggestedUsersRequest) (*model.GetSuggestedUsersResponse, error)
}

type userDomain struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	likeRepo   repository.LikeRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
) *userDomain {
	return &userDomain{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
		likeRepo:   likeRepo,
	}
}

func (d *userDomain) Get(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	requesterID := xcontext.RequestUserID(ctx)

	var user *entity.User
	var err error
	if req.Username != "" {
		user, err = d.userRepo.GetByName(ctx, req.Username)
	} else {
		targetID := req.UserID
		if targetID == "" || targetID == "me" {
			targetID = requesterID
		}

		user, err = d.userRepo.GetByID(ctx, targetID)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	targetID := user.ID

	if !user.IsActive {
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	postsCount, err := d.postRepo.CountByUserID(ctx, targetID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	followersCount, err := d.followRepo.CountFollowers(ctx, targetID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	followingCount, err := d.followRepo.CountFollowing(ctx, targetID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetUserResponse{
		User:           model.ConvertUser(user, targetID == requesterID),
		PostsCount:     postsCount,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
		IsOnline:       common.IsUserOnline(ctx, targetID),
		Posts:          []model.Post{},
	}

	isFollower := false
	if targetID != requesterID {
		follow, err := d.followRepo.Get(ctx, requesterID, targetID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get follow edge: %v", err)
			return nil, errorx.Unknown
		}

		if err == nil {
			resp.FollowStatus = string(follow.Status)
			resp.IsFollowing = follow.Status == entity.FollowAccepted
			isFollower = resp.IsFollowing
		}
	}

	// Posts of a private account are visible only to the owner and to
	// accepted followers.
	if targetID == requesterID || !user.IsPrivate || isFollower {
		posts, err := d.postRepo.GetListByUserID(ctx, targetID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
			return nil, errorx.Unknown
		}

		resp.Posts, err = convertPostsWithLikes(ctx, d.likeRepo, requesterID, posts)
		if err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}

	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}

	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if req.Website != nil {
		updates["website"] = *req.Website
	}

	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if req.IsPrivate != nil {
		updates["is_private"] = *req.IsPrivate
	}

	if len(updates) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Nothing to update")
	}

	if err := d.userRepo.UpdateByID(ctx, userID, updates); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{User: model.ConvertUser(user, true)}, nil
}

func (d *userDomain) Search(
	ctx context.Context, req *model.SearchUsersRequest,
) (*model.SearchUsersResponse, error) {
	q := strings.TrimSpace(req.Q)
	if len(q) < 2 {
		return nil, errorx.New(errorx.BadRequest, "Query must be at least 2 characters")
	}

	page, limit, err := common.NormalizePage(
		ctx, req.Page, req.Limit, xcontext.Configs(ctx).ApiServer.DefaultLimit)
	if err != nil {
		return nil, err
	}

	filter := repository.SearchUserFilter{
		Q:             q,
		ExcludeUserID: xcontext.RequestUserID(ctx),
		Offset:        common.Offset(page, limit),
		Limit:         limit,
	}

	users, err := d.userRepo.Search(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search users: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.userRepo.CountSearch(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count search results: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.User{}
	for i := range users {
		result = append(result, model.ConvertUser(&users[i], false))
	}

	return &model.SearchUsersResponse{
		Users:      result,
		Pagination: common.NewPagination(total, page, limit),
	}, nil
}

func (d *userDomain) GetSuggested(
	ctx context.Context, req *model.GetSuggestedUsersRequest,
) (*model.GetSuggestedUsersResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	if limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit")
	}

	followingIDs, err := d.followRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following ids: %v", err)
		return nil, errorx.Unknown
	}

	users, err := d.userRepo.GetSuggested(ctx, append(followingIDs, userID), limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get suggested users: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.User{}
	for i := range users {
		result = append(result, model.ConvertUser(&users[i], false))
	}

	return &model.GetSuggestedUsersResponse{Users: result}, nil
}

// convertPostsWithLikes batches the requester's likes over the given posts
// and produces views with is_liked resolved.
func convertPostsWithLikes(
	ctx context.Context,
	likeRepo repository.LikeRepository,
	requesterID string,
	posts []entity.Post,
) ([]model.Post, error) {
	postIDs := make([]string, 0, len(posts))
	for i := range posts {
		postIDs = append(postIDs, posts[i].ID)
	}

	likedSet := map[string]bool{}
	if len(postIDs) > 0 {
		likes, err := likeRepo.GetByUserAndPosts(ctx, requesterID, postIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get likes: %v", err)
			return nil, errorx.Unknown
		}

		for _, like := range likes {
			likedSet[like.PostID] = true
		}
	}

	result := []model.Post{}
	for i := range posts {
		result = append(result, model.ConvertPost(&posts[i], likedSet[posts[i].ID]))
	}

	return result, nil
}
