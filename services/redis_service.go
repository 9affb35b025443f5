package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const unreadCacheTTL = 5 * time.Minute

// GetFromRedis decodes key into target. found is false on a cache miss.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (bool, error) {
	cachedData, err := rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(cachedData), target); err != nil {
		return false, err
	}
	return true, nil
}

func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, dataJSON, ttl).Err()
}

func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}

// unreadCache keeps per-user unread counts in redis. A nil client disables it.
type unreadCache struct {
	rdb *redis.Client
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

func (c unreadCache) get(ctx context.Context, userID uint) (int64, bool) {
	if c.rdb == nil {
		return 0, false
	}
	var count int64
	found, err := GetFromRedis(ctx, c.rdb, unreadKey(userID), &count)
	if err != nil {
		return 0, false
	}
	return count, found
}

func (c unreadCache) set(ctx context.Context, userID uint, count int64) error {
	if c.rdb == nil {
		return nil
	}
	return SetToRedis(ctx, c.rdb, unreadKey(userID), count, unreadCacheTTL)
}

func (c unreadCache) invalidate(ctx context.Context, userID uint) error {
	if c.rdb == nil {
		return nil
	}
	return DeleteFromRedis(ctx, c.rdb, unreadKey(userID))
}
