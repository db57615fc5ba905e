package handlers

import (
	"net/http"
	"strconv"

	"github.com/BinLe1988/stayhub/database"
	"github.com/BinLe1988/stayhub/models"
	"github.com/BinLe1988/stayhub/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ListProperties 查询房源列表
func ListProperties(c *gin.Context) {
	var req models.PropertyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := database.DB.Preload("Amenities").Where("status = ?", models.PropertyActive)
	if req.City != "" {
		query = query.Where("city = ?", req.City)
	}
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if req.MaxPrice > 0 {
		query = query.Where("price_per_night <= ?", req.MaxPrice)
	}
	if req.Guests > 0 {
		query = query.Where("max_guests >= ?", req.Guests)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	var properties []models.Property
	if err := query.
		Order("rating DESC, id ASC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&properties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

// GetProperty 查询房源详情，已登录用户记录一次浏览行为
func GetProperty(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	var property models.Property
	if err := database.DB.Preload("Amenities").First(&property, propertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	// 详情页开放匿名访问，带令牌访问时记录浏览行为作为推荐信号
	if userID, ok := currentUserID(c); ok {
		behavior := models.UserBehavior{
			UserID:     userID,
			Action:     models.ActionView,
			PropertyID: property.ID,
		}
		database.DB.Create(&behavior)
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// BookmarkProperty 收藏房源
func BookmarkProperty(c *gin.Context) {
	userID, _ := c.Get("userID")

	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	var property models.Property
	if err := database.DB.First(&property, propertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	behavior := models.UserBehavior{
		UserID:     userID.(uint),
		Action:     models.ActionBookmark,
		PropertyID: property.ID,
	}
	if err := database.DB.Create(&behavior).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bookmark property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property bookmarked"})
}

// currentUserID 从公共路由的请求头中解析用户ID
func currentUserID(c *gin.Context) (uint, bool) {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(uint); ok {
			return id, true
		}
	}

	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		if claims, err := utils.ParseToken(authHeader[7:]); err == nil {
			return claims.UserID, true
		}
	}
	return 0, false
}
