package recommend

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	cache := NewMemoryCache(10, 0)
	ctx := context.Background()

	recs := []CombinedRecommendation{
		{PropertyID: 1, Score: 70, Reasons: []Source{SourceCollaborative}},
	}
	require.NoError(t, cache.Set(ctx, CacheKey(1), recs, time.Hour))

	got, found, err := cache.Get(ctx, CacheKey(1))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, recs, got)

	// 未知键未命中
	_, found, err = cache.Get(ctx, CacheKey(2))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache(10, 0)
	ctx := context.Background()

	recs := []CombinedRecommendation{{PropertyID: 1, Score: 14, Reasons: []Source{SourcePopular}}}
	require.NoError(t, cache.Set(ctx, CacheKey(1), recs, 50*time.Millisecond))

	_, found, _ := cache.Get(ctx, CacheKey(1))
	assert.True(t, found)

	time.Sleep(100 * time.Millisecond)

	// TTL过后条目视为不存在
	_, found, _ = cache.Get(ctx, CacheKey(1))
	assert.False(t, found)
}

func TestMemoryCacheDelete(t *testing.T) {
	cache := NewMemoryCache(10, 0)
	ctx := context.Background()

	recs := []CombinedRecommendation{{PropertyID: 1, Score: 14, Reasons: []Source{SourcePopular}}}
	require.NoError(t, cache.Set(ctx, CacheKey(1), recs, time.Hour))
	require.NoError(t, cache.Delete(ctx, CacheKey(1)))

	_, found, _ := cache.Get(ctx, CacheKey(1))
	assert.False(t, found)
}

func TestMemoryCacheEviction(t *testing.T) {
	cache := NewMemoryCache(3, 0)
	ctx := context.Background()

	// 写满后继续写入触发淘汰，优先淘汰最先过期的条目
	for i := uint(1); i <= 3; i++ {
		recs := []CombinedRecommendation{{PropertyID: i, Score: 14, Reasons: []Source{SourcePopular}}}
		require.NoError(t, cache.Set(ctx, CacheKey(i), recs, time.Duration(i)*time.Hour))
	}
	recs := []CombinedRecommendation{{PropertyID: 4, Score: 14, Reasons: []Source{SourcePopular}}}
	require.NoError(t, cache.Set(ctx, CacheKey(4), recs, 4*time.Hour))

	stats := cache.Stats()
	assert.Equal(t, 3, stats.Size)

	_, found, _ := cache.Get(ctx, CacheKey(1))
	assert.False(t, found, "earliest-expiring entry should be evicted")
	_, found, _ = cache.Get(ctx, CacheKey(4))
	assert.True(t, found)
}

func TestMemoryCacheStats(t *testing.T) {
	cache := NewMemoryCache(100, 0)
	ctx := context.Background()

	for i := uint(1); i <= 5; i++ {
		recs := []CombinedRecommendation{{PropertyID: i, Score: 14, Reasons: []Source{SourcePopular}}}
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("key%d", i), recs, time.Hour))
	}

	for i := 1; i <= 5; i++ {
		_, found, _ := cache.Get(ctx, fmt.Sprintf("key%d", i))
		assert.True(t, found)
	}
	_, found, _ := cache.Get(ctx, "missing")
	assert.False(t, found)

	stats := cache.Stats()
	assert.Equal(t, 5, stats.Size)
	assert.Equal(t, 5, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
	assert.InDelta(t, 5.0/6.0, stats.HitRate, 1e-9)
}
