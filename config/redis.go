package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil without error when REDIS_ADDR is unset
func ConnectRedis(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, live push stays in-process")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUser,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := rdb.Ping(pingCtx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}

	log.Println("Connected to Redis:", res)
	return rdb, nil
}
