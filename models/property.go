package models

import (
	"gorm.io/gorm"
)

// 房源类型
type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyVilla     PropertyType = "villa"
	PropertyStudio    PropertyType = "studio"
	PropertyRoom      PropertyType = "room"
)

// 房源状态
type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyInactive PropertyStatus = "inactive"
	PropertyPending  PropertyStatus = "pending"
)

// Property 房源模型
type Property struct {
	gorm.Model
	HostID        uint           `gorm:"not null;index" json:"hostId"`
	Title         string         `gorm:"size:200;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Type          PropertyType   `gorm:"size:20;not null;index" json:"type"`
	City          string         `gorm:"size:100;not null;index" json:"city"`
	Address       string         `gorm:"size:255" json:"address"`
	PricePerNight float64        `gorm:"not null" json:"pricePerNight"`
	MaxGuests     int            `gorm:"not null;default:1" json:"maxGuests"`
	Rating        float64        `gorm:"default:0" json:"rating"`
	Status        PropertyStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Amenities     []Amenity      `gorm:"many2many:property_amenities" json:"amenities"`
}

// Amenity 设施模型
type Amenity struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;unique" json:"name"`
}

// AmenityIDs 返回房源的设施ID列表
func (p *Property) AmenityIDs() []uint {
	ids := make([]uint, 0, len(p.Amenities))
	for _, a := range p.Amenities {
		ids = append(ids, a.ID)
	}
	return ids
}

// PropertyListRequest 房源列表查询请求
type PropertyListRequest struct {
	City     string  `form:"city"`
	Type     string  `form:"type"`
	MaxPrice float64 `form:"maxPrice"`
	Guests   int     `form:"guests"`
	Page     int     `form:"page,default=1"`
	PageSize int     `form:"pageSize,default=20"`
}
