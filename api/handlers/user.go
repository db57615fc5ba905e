package handlers

import (
	"net/http"

	"github.com/BinLe1988/stayhub/database"
	"github.com/BinLe1988/stayhub/models"

	"github.com/gin-gonic/gin"
)

// GetCurrentUser 获取当前登录用户信息
func GetCurrentUser(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}
