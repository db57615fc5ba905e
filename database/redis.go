package database

import (
	"context"
	"time"

	"github.com/BinLe1988/stayhub/configs"

	goredis "github.com/redis/go-redis/v9"
)

// NewRedisClient 创建Redis客户端，addr为空时返回nil（使用内存缓存）
func NewRedisClient(cfg *configs.Config) (*goredis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}
