package models

import (
	"time"
)

// Recommendation 推荐结果持久化记录
// (user_id, property_id) 唯一，重复计算时覆盖更新
type Recommendation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_property" json:"userId"`
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_user_property" json:"propertyId"`
	Score      float64   `gorm:"not null" json:"score"`
	Reason     string    `gorm:"size:20;not null" json:"reason"` // 主要推荐来源
	Factors    string    `gorm:"type:text" json:"factors"`       // 全部来源及计算时间(JSON)
	ValidUntil time.Time `gorm:"not null;index" json:"validUntil"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
