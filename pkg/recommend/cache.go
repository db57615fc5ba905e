package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CacheKey 生成用户推荐的缓存键
func CacheKey(userID uint) string {
	return fmt.Sprintf("recommendations:user:%d", userID)
}

// Cache 推荐结果缓存接口
// Get返回的found仅在条目存在且未过期时为true；错误表示缓存层不可用，
// 调用方按未命中降级处理
type Cache interface {
	Get(ctx context.Context, key string) (recs []CombinedRecommendation, found bool, err error)
	Set(ctx context.Context, key string, recs []CombinedRecommendation, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CacheStats 缓存统计信息
type CacheStats struct {
	Size    int
	Hits    int
	Misses  int
	HitRate float64
}

// 内存缓存条目
type memoryEntry struct {
	recs   []CombinedRecommendation
	expiry time.Time
}

// MemoryCache 内存TTL缓存，未配置Redis时的默认实现
type MemoryCache struct {
	data       map[string]memoryEntry
	maxEntries int
	mu         sync.RWMutex

	// 统计信息
	hits   int
	misses int
}

// NewMemoryCache 创建内存缓存，cleanupInterval>0时启动后台过期清理
func NewMemoryCache(maxEntries int, cleanupInterval time.Duration) *MemoryCache {
	mc := &MemoryCache{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
	}

	if cleanupInterval > 0 {
		go mc.cleanupExpired(cleanupInterval)
	}
	return mc
}

// cleanupExpired 定期清理过期条目
func (mc *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		mc.mu.Lock()
		now := time.Now()
		for key, entry := range mc.data {
			if now.After(entry.expiry) {
				delete(mc.data, key)
			}
		}
		mc.mu.Unlock()
	}
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]CombinedRecommendation, bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	entry, ok := mc.data[key]
	if !ok || time.Now().After(entry.expiry) {
		mc.misses++
		return nil, false, nil
	}

	mc.hits++
	return entry.recs, true, nil
}

func (mc *MemoryCache) Set(_ context.Context, key string, recs []CombinedRecommendation, ttl time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.data) >= mc.maxEntries {
		mc.evictOldest()
	}

	mc.data[key] = memoryEntry{
		recs:   recs,
		expiry: time.Now().Add(ttl),
	}
	return nil
}

func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	delete(mc.data, key)
	return nil
}

// evictOldest 淘汰最先过期的条目，调用方需持有写锁
func (mc *MemoryCache) evictOldest() {
	var oldestKey string
	var oldestExpiry time.Time
	first := true

	for key, entry := range mc.data {
		if first || entry.expiry.Before(oldestExpiry) {
			oldestKey = key
			oldestExpiry = entry.expiry
			first = false
		}
	}

	if oldestKey != "" {
		delete(mc.data, oldestKey)
	}
}

// Stats 获取缓存统计信息
func (mc *MemoryCache) Stats() CacheStats {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	stats := CacheStats{
		Size:   len(mc.data),
		Hits:   mc.hits,
		Misses: mc.misses,
	}
	total := mc.hits + mc.misses
	if total > 0 {
		stats.HitRate = float64(mc.hits) / float64(total)
	}
	return stats
}
