package models

import (
	"gorm.io/gorm"
)

// Review 评价记录
type Review struct {
	gorm.Model
	BookingID  uint   `gorm:"not null;uniqueIndex" json:"bookingId"`
	UserID     uint   `gorm:"not null;index" json:"userId"`
	PropertyID uint   `gorm:"not null;index" json:"propertyId"`
	Rating     int    `gorm:"not null" json:"rating"` // 1-5
	Comment    string `gorm:"type:text" json:"comment"`
}

// ReviewRequest 评价请求
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
