package models

import (
	"time"
)

// 行为类型
type BehaviorAction string

const (
	ActionView     BehaviorAction = "view"
	ActionBookmark BehaviorAction = "bookmark"
	ActionSearch   BehaviorAction = "search"
)

// UserBehavior 用户行为记录
type UserBehavior struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"userId"`
	Action     BehaviorAction `gorm:"size:20;not null" json:"action"`
	PropertyID uint           `gorm:"index" json:"propertyId"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
}
