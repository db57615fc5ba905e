package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/BinLe1988/stayhub/models"
)

// maxPreferredAmenities 画像保留的偏好设施数量
const maxPreferredAmenities = 10

// ProfileBuilder 用户画像构建器
type ProfileBuilder struct {
	store  DataStore
	window time.Duration // 行为时间窗口
}

// NewProfileBuilder 创建画像构建器
func NewProfileBuilder(store DataStore, window time.Duration) *ProfileBuilder {
	return &ProfileBuilder{store: store, window: window}
}

// Build 构建用户画像：时间窗口内的行为记录 + 全量预订历史
// 相同输入产出相同画像，零历史用户产出空画像
func (b *ProfileBuilder) Build(ctx context.Context, userID uint) (*UserProfile, error) {
	since := time.Now().Add(-b.window)

	behaviors, err := b.store.ListBehaviors(ctx, BehaviorQuery{
		UserID:  userID,
		Actions: []models.BehaviorAction{models.ActionView, models.ActionBookmark},
		Since:   since,
	})
	if err != nil {
		return nil, fmt.Errorf("list behaviors: %w", err)
	}

	bookings, err := b.store.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	profile := &UserProfile{
		UserID:        userID,
		ViewedIDs:     make(map[uint]bool),
		BookmarkedIDs: make(map[uint]bool),
		BookedIDs:     make(map[uint]bool),
	}

	// 每个房源ID的浏览次数，用于设施偏好加权
	viewCounts := make(map[uint]int)
	for _, beh := range behaviors {
		if beh.PropertyID == 0 {
			continue
		}
		switch beh.Action {
		case models.ActionView:
			profile.ViewedIDs[beh.PropertyID] = true
			viewCounts[beh.PropertyID]++
		case models.ActionBookmark:
			profile.BookmarkedIDs[beh.PropertyID] = true
		}
	}
	for _, booking := range bookings {
		profile.BookedIDs[booking.PropertyID] = true
	}

	if profile.IsEmpty() {
		return profile, nil
	}

	// 汇总涉及的房源详情，提取偏好特征
	idSet := make(map[uint]bool)
	for id := range profile.ViewedIDs {
		idSet[id] = true
	}
	for id := range profile.BookmarkedIDs {
		idSet[id] = true
	}
	for id := range profile.BookedIDs {
		idSet[id] = true
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	properties, err := b.store.GetProperties(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get properties: %w", err)
	}

	b.extractPreferences(profile, properties, viewCounts)
	return profile, nil
}

// extractPreferences 从房源详情中提取类型、价格、设施、地域偏好
func (b *ProfileBuilder) extractPreferences(profile *UserProfile, properties []models.Property, viewCounts map[uint]int) {
	typeCounts := make(map[models.PropertyType]int)
	cityCounts := make(map[string]int)
	amenityCounts := make(map[uint]int)
	var bookedPrices []float64
	var allPrices []float64

	for _, prop := range properties {
		weight := viewCounts[prop.ID]
		if profile.BookedIDs[prop.ID] || profile.BookmarkedIDs[prop.ID] {
			weight++
		}

		typeCounts[prop.Type] += weight
		if prop.City != "" {
			cityCounts[prop.City] += weight
		}
		for _, a := range prop.Amenities {
			amenityCounts[a.ID] += viewCounts[prop.ID]
		}

		allPrices = append(allPrices, prop.PricePerNight)
		if profile.BookedIDs[prop.ID] {
			bookedPrices = append(bookedPrices, prop.PricePerNight)
		}
	}

	profile.PreferredTypes = sortedByCount(typeCounts, func(a, b models.PropertyType) bool { return a < b })
	profile.PreferredLocations = sortedByCount(cityCounts, func(a, b string) bool { return a < b })

	amenities := sortedByCount(amenityCounts, func(a, b uint) bool { return a < b })
	if len(amenities) > maxPreferredAmenities {
		amenities = amenities[:maxPreferredAmenities]
	}
	profile.PreferredAmenityIDs = amenities

	// 价格区间优先取预订过的房源，没有预订时退化为浏览过的
	prices := bookedPrices
	if len(prices) == 0 {
		prices = allPrices
	}
	profile.PriceRange = priceRangeOf(prices)
}

// sortedByCount 按计数降序排序key，计数相同时按key升序保证确定性
func sortedByCount[K comparable](counts map[K]int, less func(a, b K) bool) []K {
	keys := make([]K, 0, len(counts))
	for k := range counts {
		if counts[k] > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return less(keys[i], keys[j])
	})
	return keys
}

func priceRangeOf(prices []float64) PriceRange {
	if len(prices) == 0 {
		return PriceRange{}
	}

	pr := PriceRange{Min: prices[0], Max: prices[0]}
	sum := 0.0
	for _, p := range prices {
		if p < pr.Min {
			pr.Min = p
		}
		if p > pr.Max {
			pr.Max = p
		}
		sum += p
	}
	pr.Avg = sum / float64(len(prices))
	return pr
}
