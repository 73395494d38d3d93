package common

import (
	"context"
	"time"

	"github.com/pulsegram/backend/pkg/xcontext"
)

// Presence is tracked best-effort in redis so the api process can report
// who is online without talking to the realtime process. Every helper is a
// no-op when no redis client is configured.

func SetUserOnline(ctx context.Context, userID string) {
	redisClient := xcontext.RedisClient(ctx)
	if redisClient == nil {
		return
	}

	if err := redisClient.SAdd(ctx, RedisKeyOnlineUsers, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot mark user online: %v", err)
	}
}

func SetUserOffline(ctx context.Context, userID string) {
	redisClient := xcontext.RedisClient(ctx)
	if redisClient == nil {
		return
	}

	if err := redisClient.SRem(ctx, RedisKeyOnlineUsers, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot mark user offline: %v", err)
	}

	err := redisClient.Set(ctx, RedisKeyLastSeen(userID),
		time.Now().Format(time.RFC3339Nano), 0)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot record last seen: %v", err)
	}
}

func IsUserOnline(ctx context.Context, userID string) bool {
	redisClient := xcontext.RedisClient(ctx)
	if redisClient == nil {
		return false
	}

	online, err := redisClient.SIsMember(ctx, RedisKeyOnlineUsers, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check online status: %v", err)
		return false
	}

	return online
}

func LastSeen(ctx context.Context, userID string) string {
	redisClient := xcontext.RedisClient(ctx)
	if redisClient == nil {
		return ""
	}

	value, err := redisClient.Get(ctx, RedisKeyLastSeen(userID))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get last seen: %v", err)
		return ""
	}

	return value
}
