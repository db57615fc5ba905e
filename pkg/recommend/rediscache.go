package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisCache 基于Redis的推荐结果缓存
type RedisCache struct {
	rdb *goredis.Client
}

// NewRedisCache 创建Redis缓存
func NewRedisCache(rdb *goredis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (rc *RedisCache) Get(ctx context.Context, key string) ([]CombinedRecommendation, bool, error) {
	payload, err := rc.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var recs []CombinedRecommendation
	if err := json.Unmarshal(payload, &recs); err != nil {
		// 损坏的条目当作未命中，下次Set会覆盖
		return nil, false, nil
	}
	return recs, true, nil
}

func (rc *RedisCache) Set(ctx context.Context, key string, recs []CombinedRecommendation, ttl time.Duration) error {
	payload, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return rc.rdb.Set(ctx, key, payload, ttl).Err()
}

func (rc *RedisCache) Delete(ctx context.Context, key string) error {
	return rc.rdb.Del(ctx, key).Err()
}
