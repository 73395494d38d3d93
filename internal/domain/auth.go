package domain

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/crypto"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(context.Context, *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
}

func NewAuthDomain(userRepo repository.UserRepository) *authDomain {
	return &authDomain{userRepo: userRepo}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name, email, or password")
	}

	if len(req.Password) < 6 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 6 characters")
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid email address")
	}

	if _, err := d.userRepo.GetByNameOrEmail(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Username has already been taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check username: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.userRepo.GetByNameOrEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email has already been taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check email: %v", err)
		return nil, errorx.Unknown
	}

	hashedPassword, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		IsActive:       true,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, refreshToken, err := generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.RegisterResponse{
		User:         model.ConvertUser(user, true),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	if req.Identifier == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty identifier or password")
	}

	user, err := d.userRepo.GetByNameOrEmail(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid credentials")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !user.IsActive {
		return nil, errorx.New(errorx.PermissionDenied, "This account has been deactivated")
	}

	if err := crypto.ComparePassword(user.HashedPassword, req.Password); err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid credentials")
	}

	accessToken, refreshToken, err := generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		User:         model.ConvertUser(user, true),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	var token model.RefreshToken
	if err := xcontext.TokenEngine(ctx).Verify(req.RefreshToken, &token); err != nil {
		return nil, errorx.New(errorx.TokenExpired, "Invalid or expired refresh token")
	}

	user, err := d.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "User no longer exists")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !user.IsActive {
		return nil, errorx.New(errorx.PermissionDenied, "This account has been deactivated")
	}

	accessToken, refreshToken, err := generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func generateTokens(ctx context.Context, user *entity.User) (string, string, error) {
	cfg := xcontext.Configs(ctx).Auth

	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.AccessToken.Expiration,
		model.AccessToken{ID: user.ID, Name: user.Name},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", "", errorx.Unknown
	}

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.RefreshToken.Expiration,
		model.RefreshToken{UserID: user.ID},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	return accessToken, refreshToken, nil
}
