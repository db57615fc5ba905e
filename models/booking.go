package models

import (
	"time"

	"gorm.io/gorm"
)

// 预订状态
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking 预订记录
type Booking struct {
	gorm.Model
	OrderNo    string        `gorm:"size:50;not null;unique" json:"orderNo"`
	UserID     uint          `gorm:"not null;index" json:"userId"`
	PropertyID uint          `gorm:"not null;index" json:"propertyId"`
	CheckIn    time.Time     `gorm:"not null" json:"checkIn"`
	CheckOut   time.Time     `gorm:"not null" json:"checkOut"`
	Guests     int           `gorm:"not null;default:1" json:"guests"`
	TotalPrice float64       `gorm:"not null" json:"totalPrice"`
	Status     BookingStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
}

// BookingRequest 创建预订请求
type BookingRequest struct {
	PropertyID uint      `json:"propertyId" binding:"required"`
	CheckIn    time.Time `json:"checkIn" binding:"required"`
	CheckOut   time.Time `json:"checkOut" binding:"required"`
	Guests     int       `json:"guests" binding:"required,min=1"`
}
