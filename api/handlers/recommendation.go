package handlers

import (
	"errors"
	"net/http"

	"github.com/BinLe1988/stayhub/models"
	"github.com/BinLe1988/stayhub/pkg/recommend"

	"github.com/gin-gonic/gin"
)

// 全局推荐引擎实例
var engine *recommend.Engine

// InitRecommendation 初始化推荐引擎
func InitRecommendation(e *recommend.Engine) {
	engine = e
}

// GetRecommendations 获取当前用户的个性化推荐
func GetRecommendations(c *gin.Context) {
	userID, _ := c.Get("userID")

	recs, err := engine.GetRecommendations(c.Request.Context(), userID.(uint))
	if err != nil {
		if errors.Is(err, recommend.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// RefreshRecommendations 主动触发推荐重算
// force=true绕过未过期的缓存；all=true为管理员批量刷新
func RefreshRecommendations(c *gin.Context) {
	userID, _ := c.Get("userID")
	force := c.Query("force") == "true"

	if c.Query("all") == "true" {
		user, _ := c.Get("user")
		if u, ok := user.(models.User); !ok || u.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}

		refreshed, err := engine.RefreshAll(c.Request.Context(), force)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Batch refresh failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"refreshed": refreshed})
		return
	}

	recs, err := engine.Refresh(c.Request.Context(), userID.(uint), force)
	if err != nil {
		if errors.Is(err, recommend.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
