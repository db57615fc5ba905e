package handlers

import (
	"net/http"
	"time"

	"github.com/BinLe1988/stayhub/database"
	"github.com/BinLe1988/stayhub/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateBooking 创建预订
func CreateBooking(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.CheckOut.After(req.CheckIn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Check-out must be after check-in"})
		return
	}

	var property models.Property
	if err := database.DB.First(&property, req.PropertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if property.Status != models.PropertyActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Property is not available"})
		return
	}
	if req.Guests > property.MaxGuests {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many guests for this property"})
		return
	}

	nights := int(req.CheckOut.Sub(req.CheckIn).Hours() / 24)
	orderNo := "B" + time.Now().Format("20060102") + uuid.New().String()[:8]

	booking := models.Booking{
		OrderNo:    orderNo,
		UserID:     userID.(uint),
		PropertyID: property.ID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
		TotalPrice: float64(nights) * property.PricePerNight,
		Status:     models.BookingPending,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GetBookings 查询当前用户的预订记录
func GetBookings(c *gin.Context) {
	userID, _ := c.Get("userID")

	var bookings []models.Booking
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
