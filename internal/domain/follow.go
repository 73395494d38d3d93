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

type FollowDomain interface {
	Toggle(context.Context, *model.ToggleFollowRequest) (*model.ToggleFollowResponse, error)
	GetRequests(context.Context, *model.GetFollowRequestsRequest) (*model.GetFollowRequestsResponse, error)
	RespondRequest(context.Context, *model.RespondFollowRequestRequest) (*model.RespondFollowRequestResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
}

type followDomain struct {
	followRepo       repository.FollowRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewFollowDomain(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *followDomain {
	return &followDomain{
		followRepo:       followRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (d *followDomain) Toggle(
	ctx context.Context, req *model.ToggleFollowRequest,
) (*model.ToggleFollowResponse, error) {
	followerID := xcontext.RequestUserID(ctx)
	if req.UserID == followerID {
		return nil, errorx.New(errorx.BadRequest, "Not allow following yourself")
	}

	target, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !target.IsActive {
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	existing, err := d.followRepo.Get(ctx, followerID, target.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get follow edge: %v", err)
		return nil, errorx.Unknown
	}

	// An existing edge of any status is removed: unfollow for accepted,
	// request cancelation for pending.
	if existing != nil {
		if _, err := d.followRepo.Delete(ctx, existing.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete follow edge: %v", err)
			return nil, errorx.Unknown
		}

		action := model.FollowActionUnfollowed
		if existing.Status == entity.FollowPending {
			action = model.FollowActionCanceledRequest
		}

		return &model.ToggleFollowResponse{Action: action, IsFollowing: false}, nil
	}

	status := entity.FollowAccepted
	if target.IsPrivate {
		status = entity.FollowPending
	}

	follow := &entity.Follow{
		Base:        entity.Base{ID: uuid.NewString()},
		FollowerID:  followerID,
		FollowingID: target.ID,
		Status:      status,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.followRepo.Create(ctx, follow); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow edge: %v", err)
		return nil, errorx.Unknown
	}

	sender, err := d.userRepo.GetByID(ctx, followerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sender: %v", err)
		return nil, errorx.Unknown
	}

	action := model.FollowActionFollowed
	notificationType := entity.NotificationFollow
	message := fmt.Sprintf("%s started following you", sender.Name)
	if status == entity.FollowPending {
		action = model.FollowActionRequested
		notificationType = entity.NotificationFollowRequest
		message = fmt.Sprintf("%s requested to follow you", sender.Name)
	}

	err = notify(ctx, d.notificationRepo, followerID, notifyTarget{
		RecipientID: target.ID,
		Type:        notificationType,
		Message:     message,
	})
	if err != nil {
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.ToggleFollowResponse{
		Action:       action,
		IsFollowing:  status == entity.FollowAccepted,
		FollowStatus: string(status),
	}, nil
}

func (d *followDomain) GetRequests(
	ctx context.Context, req *model.GetFollowRequestsRequest,
) (*model.GetFollowRequestsResponse, error) {
	requests, err := d.followRepo.GetPendingByFollowingID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follow requests: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.FollowRequest{}
	for i := range requests {
		result = append(result, model.ConvertFollowRequest(&requests[i]))
	}

	return &model.GetFollowRequestsResponse{Requests: result}, nil
}

func (d *followDomain) RespondRequest(
	ctx context.Context, req *model.RespondFollowRequestRequest,
) (*model.RespondFollowRequestResponse, error) {
	if req.Action != model.FollowRespondAccept && req.Action != model.FollowRespondReject {
		return nil, errorx.New(errorx.BadRequest, "Invalid action %s", req.Action)
	}

	follow, err := d.getPendingRequest(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}

	if req.Action == model.FollowRespondReject {
		if _, err := d.followRepo.Delete(ctx, follow.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete follow request: %v", err)
			return nil, errorx.Unknown
		}

		return &model.RespondFollowRequestResponse{}, nil
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.followRepo.UpdateStatus(ctx, follow.ID, entity.FollowAccepted); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update follow status: %v", err)
		return nil, errorx.Unknown
	}

	accepter, err := d.userRepo.GetByID(ctx, follow.FollowingID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get accepter: %v", err)
		return nil, errorx.Unknown
	}

	err = notify(ctx, d.notificationRepo, follow.FollowingID, notifyTarget{
		RecipientID: follow.FollowerID,
		Type:        entity.NotificationFollow,
		Message:     fmt.Sprintf("%s accepted your follow request", accepter.Name),
	})
	if err != nil {
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.RespondFollowRequestResponse{}, nil
}

func (d *followDomain) getPendingRequest(
	ctx context.Context, requestID string,
) (*entity.Follow, error) {
	follow, err := d.followRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found follow request")
		}

		xcontext.Logger(ctx).Errorf("Cannot get follow request: %v", err)
		return nil, errorx.Unknown
	}

	if follow.FollowingID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied,
			"Only the requested user can respond to this request")
	}

	if follow.Status != entity.FollowPending {
		return nil, errorx.New(errorx.BadRequest, "This request was already handled")
	}

	return follow, nil
}

func (d *followDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	page, limit, err := common.NormalizePage(
		ctx, req.Page, req.Limit, xcontext.Configs(ctx).ApiServer.DefaultLimit)
	if err != nil {
		return nil, err
	}

	follows, err := d.followRepo.GetFollowers(ctx, userID, common.Offset(page, limit), limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.User{}
	for i := range follows {
		result = append(result, model.ConvertUser(&follows[i].Follower, false))
	}

	return &model.GetFollowersResponse{
		Users:      result,
		Pagination: common.NewPagination(total, page, limit),
	}, nil
}

func (d *followDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	page, limit, err := common.NormalizePage(
		ctx, req.Page, req.Limit, xcontext.Configs(ctx).ApiServer.DefaultLimit)
	if err != nil {
		return nil, err
	}

	follows, err := d.followRepo.GetFollowing(ctx, userID, common.Offset(page, limit), limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.User{}
	for i := range follows {
		result = append(result, model.ConvertUser(&follows[i].Following, false))
	}

	return &model.GetFollowingResponse{
		Users:      result,
		Pagination: common.NewPagination(total, page, limit),
	}, nil
}
