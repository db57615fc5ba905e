package recommend

import (
	"sort"
)

// Combiner 多来源分数合并器
type Combiner struct {
	// 各来源的固定权重
	weights struct {
		collaborative float64
		content       float64
		popularity    float64
	}
	maxResults int
}

// NewCombiner 创建合并器
func NewCombiner(opts Options) *Combiner {
	c := &Combiner{maxResults: opts.MaxResults}
	c.weights.collaborative = opts.CollaborativeWeight
	c.weights.content = opts.ContentWeight
	c.weights.popularity = opts.PopularityWeight
	return c
}

func (c *Combiner) weightOf(source Source) float64 {
	switch source {
	case SourceCollaborative:
		return c.weights.collaborative
	case SourceContent:
		return c.weights.content
	case SourcePopular:
		return c.weights.popularity
	}
	return 0
}

// 合并过程的累加状态
type accumulated struct {
	score   float64
	reasons []Source
}

// Combine 将各来源的打分结果合并为最终排名
// 按房源ID累加加权分数，来源贡献非零分时记入reasons（首次出现顺序）；
// 累加对来源顺序可交换，排序按总分降序、同分按ID升序，截断至上限后换算为0-100
func (c *Combiner) Combine(lists ...[]ScoredCandidate) []CombinedRecommendation {
	acc := make(map[uint]*accumulated)

	for _, list := range lists {
		for _, candidate := range list {
			delta := candidate.RawScore * c.weightOf(candidate.Source)

			entry, ok := acc[candidate.PropertyID]
			if !ok {
				entry = &accumulated{}
				acc[candidate.PropertyID] = entry
			}
			entry.score += delta
			if delta > 0 {
				entry.reasons = appendIfAbsent(entry.reasons, candidate.Source)
			}
		}
	}

	results := make([]CombinedRecommendation, 0, len(acc))
	for propertyID, entry := range acc {
		if len(entry.reasons) == 0 {
			continue
		}
		results = append(results, CombinedRecommendation{
			PropertyID: propertyID,
			Score:      entry.score,
			Reasons:    entry.reasons,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].PropertyID < results[j].PropertyID
	})

	if len(results) > c.maxResults {
		results = results[:c.maxResults]
	}

	// 换算为0-100展示分
	for i := range results {
		results[i].Score *= 100
	}
	return results
}

func appendIfAbsent(reasons []Source, source Source) []Source {
	for _, r := range reasons {
		if r == source {
			return reasons
		}
	}
	return append(reasons, source)
}
