package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/BinLe1988/stayhub/models"
)

// CollaborativeScorer 协同过滤打分器
// 核心思想：预订过相同房源的用户，偏好相似的房源
type CollaborativeScorer struct {
	store DataStore
	opts  Options
}

// NewCollaborativeScorer 创建协同过滤打分器
func NewCollaborativeScorer(store DataStore, opts Options) *CollaborativeScorer {
	return &CollaborativeScorer{store: store, opts: opts}
}

// Score 基于相似用户的预订行为为候选房源打分
// 流程：找同房源预订者 → 统计其预订频次 → 频次与评分加权
func (s *CollaborativeScorer) Score(ctx context.Context, profile *UserProfile) ([]ScoredCandidate, error) {
	// 协同过滤至少需要一条预订信号
	if len(profile.BookedIDs) == 0 {
		return nil, nil
	}

	bookedIDs := make([]uint, 0, len(profile.BookedIDs))
	for id := range profile.BookedIDs {
		bookedIDs = append(bookedIDs, id)
	}

	peers, err := s.store.FindPeerUserIDs(ctx, bookedIDs, profile.UserID, s.opts.MaxPeers)
	if err != nil {
		return nil, fmt.Errorf("find peers: %w", err)
	}
	if len(peers) == 0 {
		return nil, nil
	}

	peerBookings, err := s.store.ListCompletedBookingsByUsers(ctx, peers)
	if err != nil {
		return nil, fmt.Errorf("list peer bookings: %w", err)
	}

	// 统计相似用户对候选房源的预订频次，排除目标用户已浏览/已预订的
	counts := make(map[uint]int)
	for _, booking := range peerBookings {
		if profile.Excluded(booking.PropertyID) {
			continue
		}
		counts[booking.PropertyID]++
	}
	if len(counts) == 0 {
		return nil, nil
	}

	allIDs := make([]uint, 0, len(counts))
	for id := range counts {
		allIDs = append(allIDs, id)
	}

	properties, err := s.store.GetProperties(ctx, allIDs)
	if err != nil {
		return nil, fmt.Errorf("get candidate properties: %w", err)
	}
	byID := make(map[uint]models.Property, len(properties))
	for _, prop := range properties {
		byID[prop.ID] = prop
	}

	// 非活跃房源先出局，再按频次取TopN，不让它们占用名额
	candidateIDs := make([]uint, 0, len(allIDs))
	for _, id := range allIDs {
		if prop, ok := byID[id]; ok && prop.Status == models.PropertyActive {
			candidateIDs = append(candidateIDs, id)
		}
	}

	// 频次相同时按ID升序保证确定性
	sort.Slice(candidateIDs, func(i, j int) bool {
		if counts[candidateIDs[i]] != counts[candidateIDs[j]] {
			return counts[candidateIDs[i]] > counts[candidateIDs[j]]
		}
		return candidateIDs[i] < candidateIDs[j]
	})
	if len(candidateIDs) > s.opts.TopPerSource {
		candidateIDs = candidateIDs[:s.opts.TopPerSource]
	}

	results := make([]ScoredCandidate, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		// 预订热度与评分各占一半，封顶1.0
		score := float64(counts[id])/10*0.5 + byID[id].Rating/5*0.5
		if score > 1.0 {
			score = 1.0
		}
		results = append(results, ScoredCandidate{
			PropertyID: id,
			RawScore:   score,
			Source:     SourceCollaborative,
		})
	}
	return results, nil
}
