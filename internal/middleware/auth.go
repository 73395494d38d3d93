package middleware

import (
	"context"
	"strings"

	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/router"
	"github.com/pulsegram/backend/pkg/xcontext"
)

// NewAuthVerifier returns a middleware that requires a valid access token.
// It accepts a bearer Authorization header or, for websocket clients that
// cannot set headers, a token query parameter.
func NewAuthVerifier() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Missing access token")
		}

		var accessToken model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
			return nil, errorx.New(errorx.TokenExpired, "Invalid or expired access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func extractToken(ctx context.Context) string {
	r := xcontext.HTTPRequest(ctx)

	authorization := r.Header.Get("Authorization")
	if authorization != "" {
		if !strings.HasPrefix(authorization, "Bearer ") {
			return ""
		}

		return strings.TrimPrefix(authorization, "Bearer ")
	}

	return r.URL.Query().Get("token")
}
