package recommend

import (
	"errors"
	"time"

	"github.com/BinLe1988/stayhub/models"
)

// ErrUserNotFound 用户不存在，唯一向调用方暴露的硬错误
var ErrUserNotFound = errors.New("recommend: user not found")

// Source 推荐信号来源
type Source string

const (
	SourceCollaborative Source = "collaborative"
	SourceContent       Source = "content"
	SourcePopular       Source = "popular"
)

// PriceRange 价格区间
type PriceRange struct {
	Min float64
	Max float64
	Avg float64
}

// UserProfile 用户行为画像，每次计算时重新构建，不持久化
type UserProfile struct {
	UserID        uint
	ViewedIDs     map[uint]bool
	BookmarkedIDs map[uint]bool
	BookedIDs     map[uint]bool

	// 偏好特征，按频次降序
	PreferredTypes      []models.PropertyType
	PriceRange          PriceRange
	PreferredAmenityIDs []uint // 按浏览频次取前10
	PreferredLocations  []string
}

// IsEmpty 判断画像是否无任何行为信号
func (p *UserProfile) IsEmpty() bool {
	return len(p.ViewedIDs) == 0 && len(p.BookmarkedIDs) == 0 && len(p.BookedIDs) == 0
}

// Excluded 判断房源是否应从候选中排除（已浏览或已预订）
func (p *UserProfile) Excluded(propertyID uint) bool {
	return p.ViewedIDs[propertyID] || p.BookedIDs[propertyID]
}

// ExcludedIDs 返回排除集合的ID列表
func (p *UserProfile) ExcludedIDs() []uint {
	ids := make([]uint, 0, len(p.ViewedIDs)+len(p.BookedIDs))
	for id := range p.ViewedIDs {
		ids = append(ids, id)
	}
	for id := range p.BookedIDs {
		if !p.ViewedIDs[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// ScoredCandidate 单一来源的打分结果
type ScoredCandidate struct {
	PropertyID uint
	RawScore   float64 // 0-1
	Source     Source
}

// CombinedRecommendation 合并后的最终推荐项
type CombinedRecommendation struct {
	PropertyID uint     `json:"propertyId"`
	Score      float64  `json:"score"` // 0-100
	Reasons    []Source `json:"reasons"`
}

// Options 推荐引擎参数
type Options struct {
	CollaborativeWeight float64
	ContentWeight       float64
	PopularityWeight    float64

	MaxPeers           int     // 协同过滤相似用户上限
	SimilarityCutoff   float64 // 内容相似度阈值
	TopPerSource       int     // 单一来源候选数量上限
	MaxResults         int     // 最终推荐数量上限
	MinPopularBookings int     // 热门候选的最低预订数

	ProfileWindow  time.Duration // 行为画像时间窗口
	CacheTTL       time.Duration
	ResultValidity time.Duration // 持久化结果有效期
	ScorerTimeout  time.Duration // 单个打分器时间预算
	ComputeTimeout time.Duration // 单次完整计算的时间预算
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{
		CollaborativeWeight: 0.4,
		ContentWeight:       0.4,
		PopularityWeight:    0.2,
		MaxPeers:            50,
		SimilarityCutoff:    0.5,
		TopPerSource:        10,
		MaxResults:          20,
		MinPopularBookings:  5,
		ProfileWindow:       6 * 30 * 24 * time.Hour,
		CacheTTL:            time.Hour,
		ResultValidity:      24 * time.Hour,
		ScorerTimeout:       3 * time.Second,
		ComputeTimeout:      10 * time.Second,
	}
}
