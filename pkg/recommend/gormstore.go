package recommend

import (
	"context"
	"time"

	"github.com/BinLe1988/stayhub/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 基于gorm的数据访问实现
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建gorm存储实例
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ListBehaviors(ctx context.Context, q BehaviorQuery) ([]models.UserBehavior, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", q.UserID)
	if len(q.Actions) > 0 {
		query = query.Where("action IN ?", q.Actions)
	}
	if !q.Since.IsZero() {
		query = query.Where("created_at >= ?", q.Since)
	}

	var behaviors []models.UserBehavior
	if err := query.Find(&behaviors).Error; err != nil {
		return nil, err
	}
	return behaviors, nil
}

func (s *GormStore) ListBookingsByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, models.BookingCancelled).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormStore) FindPeerUserIDs(ctx context.Context, propertyIDs []uint, excludeUserID uint, limit int) ([]uint, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}

	var userIDs []uint
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Distinct("user_id").
		Where("property_id IN ? AND status = ? AND user_id <> ?",
			propertyIDs, models.BookingCompleted, excludeUserID).
		Order("user_id").
		Limit(limit).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (s *GormStore) ListCompletedBookingsByUsers(ctx context.Context, userIDs []uint) ([]models.Booking, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("user_id IN ? AND status = ?", userIDs, models.BookingCompleted).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormStore) GetProperties(ctx context.Context, ids []uint) ([]models.Property, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var properties []models.Property
	err := s.db.WithContext(ctx).
		Preload("Amenities").
		Where("id IN ?", ids).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *GormStore) ListActiveProperties(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := s.db.WithContext(ctx).
		Preload("Amenities").
		Where("status = ?", models.PropertyActive).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *GormStore) PopularProperties(ctx context.Context, q PopularQuery) ([]PropertyStats, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.property_id, COUNT(*) AS booking_count, properties.rating AS avg_rating").
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("bookings.status = ? AND properties.status = ?",
			models.BookingCompleted, models.PropertyActive)
	if len(q.ExcludeIDs) > 0 {
		query = query.Where("bookings.property_id NOT IN ?", q.ExcludeIDs)
	}

	var stats []PropertyStats
	err := query.
		Group("bookings.property_id, properties.rating").
		Having("COUNT(*) > ?", q.MinBookings).
		Order("booking_count DESC, avg_rating DESC").
		Limit(q.Limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *GormStore) ListEligibleUserIDs(ctx context.Context, since time.Time) ([]uint, error) {
	var userIDs []uint
	err := s.db.WithContext(ctx).
		Model(&models.UserBehavior{}).
		Distinct("user_id").
		Where("created_at >= ?", since).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (s *GormStore) DeleteExpired(ctx context.Context, userID uint, before time.Time) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND valid_until < ?", userID, before).
		Delete(&models.Recommendation{}).Error
}

func (s *GormStore) Upsert(ctx context.Context, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "property_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "reason", "factors", "valid_until", "updated_at"}),
		}).
		Create(&recs).Error
}
