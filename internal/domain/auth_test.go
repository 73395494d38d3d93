package domain

import (
	"testing"

	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_RegisterAndLogin(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewAuthDomain(repository.NewUserRepository())

	registerResp, err := d.Register(ctx, &model.RegisterRequest{
		Name:      "dave",
		Email:     "dave@example.com",
		Password:  "hunter22",
		FirstName: "Dave",
	})
	require.NoError(t, err)
	require.Equal(t, "dave", registerResp.User.Name)
	require.Equal(t, "dave@example.com", registerResp.User.Email)
	require.NotEmpty(t, registerResp.AccessToken)
	require.NotEmpty(t, registerResp.RefreshToken)

	// The username is unique.
	_, err = d.Register(ctx, &model.RegisterRequest{
		Name:     "dave",
		Email:    "other@example.com",
		Password: "hunter22",
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Username has already been taken"), err)

	// So is the email.
	_, err = d.Register(ctx, &model.RegisterRequest{
		Name:     "dave2",
		Email:    "dave@example.com",
		Password: "hunter22",
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Email has already been taken"), err)

	// Login by name and by email.
	loginResp, err := d.Login(ctx, &model.LoginRequest{Identifier: "dave", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, registerResp.User.ID, loginResp.User.ID)

	_, err = d.Login(ctx, &model.LoginRequest{Identifier: "dave@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = d.Login(ctx, &model.LoginRequest{Identifier: "dave", Password: "wrong"})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid credentials"), err)

	_, err = d.Login(ctx, &model.LoginRequest{Identifier: "nobody", Password: "hunter22"})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid credentials"), err)
}

func Test_authDomain_Register_invalidRequests(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewAuthDomain(repository.NewUserRepository())

	_, err := d.Register(ctx, &model.RegisterRequest{
		Name: "x", Email: "x@example.com", Password: "short",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Password must be at least 6 characters"), err)

	_, err = d.Register(ctx, &model.RegisterRequest{
		Name: "x", Email: "not-an-email", Password: "hunter22",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid email address"), err)

	_, err = d.Register(ctx, &model.RegisterRequest{Name: "", Email: "", Password: ""})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow an empty name, email, or password"), err)
}

func Test_authDomain_Refresh(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewAuthDomain(repository.NewUserRepository())

	registerResp, err := d.Register(ctx, &model.RegisterRequest{
		Name: "erin", Email: "erin@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	refreshResp, err := d.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: registerResp.RefreshToken,
	})
	require.NoError(t, err)
	require.NotEmpty(t, refreshResp.AccessToken)
	require.NotEmpty(t, refreshResp.RefreshToken)

	// An access token is not accepted as a refresh token.
	_, err = d.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: "garbage"})
	require.Equal(t, errorx.New(errorx.TokenExpired, "Invalid or expired refresh token"), err)
}
