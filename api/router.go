package api

import (
	"github.com/BinLe1988/stayhub/api/handlers"
	"github.com/BinLe1988/stayhub/api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter 设置API路由
func SetupRouter(router *gin.Engine) {
	router.Use(cors.Default())

	// 公共API
	public := router.Group("/api")
	{
		// 认证相关
		public.POST("/auth/login", handlers.Login)
		public.POST("/auth/register", handlers.Register)

		// 房源浏览
		public.GET("/properties", handlers.ListProperties)
		public.GET("/properties/:id", handlers.GetProperty)
	}

	// 需要认证的API
	authorized := router.Group("/api")
	authorized.Use(middleware.Auth())
	{
		// 用户相关
		authorized.GET("/user", handlers.GetCurrentUser)
		authorized.POST("/auth/logout", handlers.Logout)

		// 房源收藏
		authorized.POST("/properties/:id/bookmark", handlers.BookmarkProperty)

		// 预订相关
		authorized.POST("/bookings", handlers.CreateBooking)
		authorized.GET("/bookings", handlers.GetBookings)
		authorized.POST("/bookings/:id/review", handlers.CreateReview)

		// 推荐相关
		authorized.GET("/recommendations", handlers.GetRecommendations)
		authorized.POST("/recommendations/refresh", handlers.RefreshRecommendations)
	}
}
