package handlers

import (
	"net/http"
	"strconv"

	"github.com/BinLe1988/stayhub/database"
	"github.com/BinLe1988/stayhub/models"

	"github.com/gin-gonic/gin"
)

// CreateReview 对已完成的预订提交评价，并更新房源平均评分
func CreateReview(c *gin.Context) {
	userID, _ := c.Get("userID")

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if booking.UserID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		return
	}
	if booking.Status != models.BookingCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only completed bookings can be reviewed"})
		return
	}

	review := models.Review{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		PropertyID: booking.PropertyID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := database.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Booking already reviewed"})
		return
	}

	// 重算房源平均评分，供打分器读取
	var avg float64
	database.DB.Model(&models.Review{}).
		Where("property_id = ?", booking.PropertyID).
		Select("AVG(rating)").
		Scan(&avg)
	database.DB.Model(&models.Property{}).
		Where("id = ?", booking.PropertyID).
		Update("rating", avg)

	c.JSON(http.StatusCreated, gin.H{"review": review})
}
