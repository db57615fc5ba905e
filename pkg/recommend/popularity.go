package recommend

import (
	"context"
	"fmt"
)

// popularBaseScore 热门兜底推荐的固定基准分
const popularBaseScore = 0.7

// PopularityScorer 热门度打分器，个性化信号不足时的兜底来源
type PopularityScorer struct {
	store DataStore
	opts  Options
}

// NewPopularityScorer 创建热门度打分器
func NewPopularityScorer(store DataStore, opts Options) *PopularityScorer {
	return &PopularityScorer{store: store, opts: opts}
}

// Score 按全局预订量和评分取热门房源，统一给基准分
func (s *PopularityScorer) Score(ctx context.Context, profile *UserProfile) ([]ScoredCandidate, error) {
	stats, err := s.store.PopularProperties(ctx, PopularQuery{
		MinBookings: s.opts.MinPopularBookings,
		ExcludeIDs:  profile.ExcludedIDs(),
		Limit:       s.opts.TopPerSource,
	})
	if err != nil {
		return nil, fmt.Errorf("popular properties: %w", err)
	}

	results := make([]ScoredCandidate, 0, len(stats))
	for _, stat := range stats {
		results = append(results, ScoredCandidate{
			PropertyID: stat.PropertyID,
			RawScore:   popularBaseScore,
			Source:     SourcePopular,
		})
	}
	return results, nil
}
