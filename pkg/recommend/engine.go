package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BinLe1988/stayhub/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Engine 混合推荐引擎
// 调用链：缓存 → 画像构建 → 三路打分（并行）→ 加权合并 → 持久化 → 回填缓存
type Engine struct {
	store    DataStore
	recStore RecommendationStore
	cache    Cache
	opts     Options
	log      *zap.SugaredLogger

	profiles      *ProfileBuilder
	collaborative *CollaborativeScorer
	content       *ContentScorer
	popularity    *PopularityScorer
	combiner      *Combiner

	// 保证同一用户同一时刻至多一次完整计算
	flight singleflight.Group
}

// NewEngine 创建推荐引擎
func NewEngine(store DataStore, recStore RecommendationStore, cache Cache, opts Options, log *zap.SugaredLogger) *Engine {
	return &Engine{
		store:         store,
		recStore:      recStore,
		cache:         cache,
		opts:          opts,
		log:           log.With("component", "recommend.Engine"),
		profiles:      NewProfileBuilder(store, opts.ProfileWindow),
		collaborative: NewCollaborativeScorer(store, opts),
		content:       NewContentScorer(store, opts),
		popularity:    NewPopularityScorer(store, opts),
		combiner:      NewCombiner(opts),
	}
}

// GetRecommendations 获取用户推荐，缓存命中直接返回，未命中触发一次完整计算
// 同一用户的并发请求共享同一次计算结果
func (e *Engine) GetRecommendations(ctx context.Context, userID uint) ([]CombinedRecommendation, error) {
	key := CacheKey(userID)

	if recs, ok := e.cacheGet(ctx, key); ok {
		return recs, nil
	}

	return e.computeShared(ctx, userID, key, false)
}

// Refresh 主动刷新用户推荐，force为true时绕过未过期的缓存
func (e *Engine) Refresh(ctx context.Context, userID uint, force bool) ([]CombinedRecommendation, error) {
	if !force {
		return e.GetRecommendations(ctx, userID)
	}
	return e.computeShared(ctx, userID, CacheKey(userID), true)
}

// RefreshAll 批量刷新时间窗口内有行为记录的用户，单个用户失败只记录不中断
// 返回成功刷新的用户数
func (e *Engine) RefreshAll(ctx context.Context, force bool) (int, error) {
	since := time.Now().Add(-e.opts.ProfileWindow)
	userIDs, err := e.store.ListEligibleUserIDs(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("list eligible users: %w", err)
	}

	refreshed := 0
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return refreshed, ctx.Err()
		}
		if _, err := e.Refresh(ctx, userID, force); err != nil {
			e.log.Warnw("refresh user failed", "userID", userID, "error", err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// computeShared 通过singleflight执行计算，并发的同键调用等待同一次执行
// 计算运行在与发起方解耦的上下文上，单个调用方取消只中断它自己的等待，
// 不影响共享同一次计算的其他等待者
func (e *Engine) computeShared(ctx context.Context, userID uint, key string, force bool) ([]CombinedRecommendation, error) {
	ch := e.flight.DoChan(key, func() (interface{}, error) {
		cctx := context.WithoutCancel(ctx)
		if e.opts.ComputeTimeout > 0 {
			var cancel context.CancelFunc
			cctx, cancel = context.WithTimeout(cctx, e.opts.ComputeTimeout)
			defer cancel()
		}

		// 拿到执行权后再查一次缓存，等待期间可能已被填充；强制刷新跳过
		if !force {
			if recs, ok := e.cacheGet(cctx, key); ok {
				return recs, nil
			}
		}

		recs, err := e.compute(cctx, userID)
		if err != nil {
			return nil, err
		}

		if err := e.cache.Set(cctx, key, recs, e.opts.CacheTTL); err != nil {
			e.log.Warnw("cache set failed, serving uncached", "key", key, "error", err)
		}
		return recs, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]CombinedRecommendation), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// compute 执行一次完整的推荐流水线
func (e *Engine) compute(ctx context.Context, userID uint) ([]CombinedRecommendation, error) {
	exists, err := e.store.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	profile, err := e.profiles.Build(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}

	// 三路打分相互独立，并行执行；单路失败或超时降级为空结果
	var collabScores, contentScores, popularScores []ScoredCandidate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		collabScores = e.runScorer(gctx, SourceCollaborative, profile, e.collaborative.Score)
		return nil
	})
	g.Go(func() error {
		contentScores = e.runScorer(gctx, SourceContent, profile, e.content.Score)
		return nil
	})
	g.Go(func() error {
		popularScores = e.runScorer(gctx, SourcePopular, profile, e.popularity.Score)
		return nil
	})
	_ = g.Wait()

	// 以固定来源顺序合并，保证reasons的首见顺序确定
	recs := e.combiner.Combine(collabScores, contentScores, popularScores)

	// 计算预算耗尽时丢弃结果，不做任何部分写入
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	e.persist(ctx, userID, recs)
	return recs, nil
}

// runScorer 在时间预算内执行单个打分器，失败降级为空结果
func (e *Engine) runScorer(ctx context.Context, source Source, profile *UserProfile,
	score func(context.Context, *UserProfile) ([]ScoredCandidate, error)) []ScoredCandidate {

	sctx := ctx
	if e.opts.ScorerTimeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, e.opts.ScorerTimeout)
		defer cancel()
	}

	results, err := score(sctx, profile)
	if err != nil {
		e.log.Warnw("scorer degraded to empty result", "source", source, "error", err)
		return nil
	}
	return results
}

// 持久化记录的factors字段内容
type recommendationFactors struct {
	Reasons    []Source  `json:"reasons"`
	ComputedAt time.Time `json:"computed_at"`
}

// persist 持久化推荐结果：先清理过期行再覆盖写入
// 持久化失败不影响返回结果，只记录日志
func (e *Engine) persist(ctx context.Context, userID uint, recs []CombinedRecommendation) {
	now := time.Now()

	if err := e.recStore.DeleteExpired(ctx, userID, now); err != nil {
		e.log.Warnw("delete expired recommendations failed", "userID", userID, "error", err)
		return
	}

	rows := make([]models.Recommendation, 0, len(recs))
	for _, rec := range recs {
		factors, err := json.Marshal(recommendationFactors{
			Reasons:    rec.Reasons,
			ComputedAt: now,
		})
		if err != nil {
			e.log.Warnw("marshal factors failed", "userID", userID, "error", err)
			continue
		}
		rows = append(rows, models.Recommendation{
			UserID:     userID,
			PropertyID: rec.PropertyID,
			Score:      rec.Score,
			Reason:     string(rec.Reasons[0]),
			Factors:    string(factors),
			ValidUntil: now.Add(e.opts.ResultValidity),
		})
	}

	if err := e.recStore.Upsert(ctx, rows); err != nil {
		e.log.Warnw("persist recommendations failed", "userID", userID, "error", err)
	}
}

// cacheGet 查询缓存，缓存层错误按未命中降级
func (e *Engine) cacheGet(ctx context.Context, key string) ([]CombinedRecommendation, bool) {
	recs, found, err := e.cache.Get(ctx, key)
	if err != nil {
		e.log.Warnw("cache get failed, falling back to compute", "key", key, "error", err)
		return nil, false
	}
	return recs, found
}
