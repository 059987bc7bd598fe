package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// One redis key per user; the value is the JWT currently bound to the
// session, so a re-login invalidates the previous token.
const sessionKeyPrefix = "ren:session:"

func sessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}

func SetSession(ctx context.Context, rdb *redis.Client, userID uint, token string, ttl time.Duration) error {
	return rdb.Set(ctx, sessionKey(userID), token, ttl).Err()
}

func GetSession(ctx context.Context, rdb *redis.Client, userID uint) (string, error) {
	return rdb.Get(ctx, sessionKey(userID)).Result()
}

func DeleteSession(ctx context.Context, rdb *redis.Client, userID uint) error {
	return rdb.Del(ctx, sessionKey(userID)).Err()
}

// OnlineUserCount counts users with a live session.
func OnlineUserCount(ctx context.Context, rdb *redis.Client) (int, error) {
	var cursor uint64
	online := make(map[string]struct{})
	for {
		keys, next, err := rdb.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			if id := strings.TrimPrefix(key, sessionKeyPrefix); id != "" && id != key {
				online[id] = struct{}{}
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return len(online), nil
}
