package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/BinLe1988/stayhub/models"
)

// ContentScorer 基于内容的打分器
// 核心思想：用户预订/收藏过某类房源，推荐特征相似的其他房源
type ContentScorer struct {
	store DataStore
	opts  Options
}

// NewContentScorer 创建内容打分器
func NewContentScorer(store DataStore, opts Options) *ContentScorer {
	return &ContentScorer{store: store, opts: opts}
}

// Score 以预订+收藏的房源为参照集，为活跃房源计算特征相似度
func (s *ContentScorer) Score(ctx context.Context, profile *UserProfile) ([]ScoredCandidate, error) {
	refIDs := make([]uint, 0, len(profile.BookedIDs)+len(profile.BookmarkedIDs))
	for id := range profile.BookedIDs {
		refIDs = append(refIDs, id)
	}
	for id := range profile.BookmarkedIDs {
		if !profile.BookedIDs[id] {
			refIDs = append(refIDs, id)
		}
	}
	if len(refIDs) == 0 {
		return nil, nil
	}

	references, err := s.store.GetProperties(ctx, refIDs)
	if err != nil {
		return nil, fmt.Errorf("get reference properties: %w", err)
	}
	if len(references) == 0 {
		return nil, nil
	}

	candidates, err := s.store.ListActiveProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active properties: %w", err)
	}

	results := make([]ScoredCandidate, 0)
	for _, candidate := range candidates {
		if profile.Excluded(candidate.ID) {
			continue
		}

		// 对参照集中每个房源计算相似度后取平均
		total := 0.0
		for _, ref := range references {
			total += similarity(&candidate, &ref)
		}
		avg := total / float64(len(references))

		if avg > s.opts.SimilarityCutoff {
			results = append(results, ScoredCandidate{
				PropertyID: candidate.ID,
				RawScore:   avg,
				Source:     SourceContent,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].RawScore != results[j].RawScore {
			return results[i].RawScore > results[j].RawScore
		}
		return results[i].PropertyID < results[j].PropertyID
	})
	if len(results) > s.opts.TopPerSource {
		results = results[:s.opts.TopPerSource]
	}
	return results, nil
}

// similarity 计算两个房源的特征相似度，5个子项等权平均，结果0-1
func similarity(candidate, ref *models.Property) float64 {
	score := 0.0

	// 类型相同
	if candidate.Type == ref.Type {
		score += 1
	}

	// 价格在参照价的30%以内
	if ref.PricePerNight > 0 &&
		math.Abs(candidate.PricePerNight-ref.PricePerNight) <= ref.PricePerNight*0.3 {
		score += 1
	}

	// 同城
	if candidate.City != "" && candidate.City == ref.City {
		score += 1
	}

	// 可住人数相差不超过2
	if abs(candidate.MaxGuests-ref.MaxGuests) <= 2 {
		score += 1
	}

	// 设施重合度，分母至少为1防止无设施房源除零
	overlap := 0
	refAmenities := make(map[uint]bool, len(ref.Amenities))
	for _, a := range ref.Amenities {
		refAmenities[a.ID] = true
	}
	for _, a := range candidate.Amenities {
		if refAmenities[a.ID] {
			overlap++
		}
	}
	denom := len(candidate.Amenities)
	if denom < 1 {
		denom = 1
	}
	amenityScore := float64(overlap) / float64(denom)
	if amenityScore > 1 {
		amenityScore = 1
	}
	score += amenityScore

	return score / 5
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
