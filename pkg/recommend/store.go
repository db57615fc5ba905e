package recommend

import (
	"context"
	"time"

	"github.com/BinLe1988/stayhub/models"
)

// BehaviorQuery 行为记录查询条件
type BehaviorQuery struct {
	UserID  uint
	Actions []models.BehaviorAction // 为空时不限制行为类型
	Since   time.Time               // 零值时不限制起始时间
}

// PopularQuery 热门房源查询条件
type PopularQuery struct {
	MinBookings int    // 最低预订数（不含）
	ExcludeIDs  []uint // 排除的房源ID
	Limit       int
}

// PropertyStats 房源的全局统计信息
type PropertyStats struct {
	PropertyID   uint
	BookingCount int
	AvgRating    float64
}

// DataStore 推荐引擎的数据读取接口
type DataStore interface {
	// UserExists 判断用户是否存在
	UserExists(ctx context.Context, userID uint) (bool, error)

	// ListBehaviors 按条件查询用户行为记录
	ListBehaviors(ctx context.Context, q BehaviorQuery) ([]models.UserBehavior, error)

	// ListBookingsByUser 查询用户的全部预订记录（不含已取消）
	ListBookingsByUser(ctx context.Context, userID uint) ([]models.Booking, error)

	// FindPeerUserIDs 查找预订过指定房源的其他用户
	FindPeerUserIDs(ctx context.Context, propertyIDs []uint, excludeUserID uint, limit int) ([]uint, error)

	// ListCompletedBookingsByUsers 查询一组用户的已完成预订
	ListCompletedBookingsByUsers(ctx context.Context, userIDs []uint) ([]models.Booking, error)

	// GetProperties 按ID批量查询房源（含设施）
	GetProperties(ctx context.Context, ids []uint) ([]models.Property, error)

	// ListActiveProperties 查询全部活跃房源（含设施）
	ListActiveProperties(ctx context.Context) ([]models.Property, error)

	// PopularProperties 按预订量和评分查询热门活跃房源
	PopularProperties(ctx context.Context, q PopularQuery) ([]PropertyStats, error)

	// ListEligibleUserIDs 查询时间窗口内有行为记录的用户，用于批量刷新
	ListEligibleUserIDs(ctx context.Context, since time.Time) ([]uint, error)
}

// RecommendationStore 推荐结果持久化接口
type RecommendationStore interface {
	// DeleteExpired 删除用户已过期的推荐记录
	DeleteExpired(ctx context.Context, userID uint, before time.Time) error

	// Upsert 按(user_id, property_id)插入或更新推荐记录
	Upsert(ctx context.Context, recs []models.Recommendation) error
}
