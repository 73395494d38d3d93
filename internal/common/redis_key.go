package common

import "fmt"

const RedisKeyOnlineUsers = "online_users"

func RedisKeyLastSeen(userID string) string {
	return fmt.Sprintf("lastseen:%s", userID)
}
