package main

import (
	"log"

	"github.com/BinLe1988/stayhub/api"
	"github.com/BinLe1988/stayhub/api/handlers"
	"github.com/BinLe1988/stayhub/configs"
	"github.com/BinLe1988/stayhub/database"
	"github.com/BinLe1988/stayhub/jobs"
	"github.com/BinLe1988/stayhub/pkg/logger"
	"github.com/BinLe1988/stayhub/pkg/recommend"
	"github.com/BinLe1988/stayhub/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Init(cfg.Server.Mode); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 初始化JWT
	utils.InitJWT(cfg)

	// 初始化数据库连接
	if err := database.Initialize(cfg); err != nil {
		logger.L().Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// 初始化推荐引擎，未配置Redis时退化为内存缓存
	var cache recommend.Cache
	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.L().Fatalf("Failed to connect redis: %v", err)
	}
	if rdb != nil {
		cache = recommend.NewRedisCache(rdb)
		defer rdb.Close()
	} else {
		cache = recommend.NewMemoryCache(10000, cfg.Recommend.CacheTTL/2)
		logger.L().Info("Redis not configured, using in-memory recommendation cache")
	}

	store := recommend.NewGormStore(database.DB)
	engine := recommend.NewEngine(store, store, cache, engineOptions(cfg), logger.L())
	handlers.InitRecommendation(engine)

	// 启动推荐批量刷新任务
	scheduler := jobs.NewRefreshScheduler(engine, cfg.Recommend.RefreshCron, logger.L())
	if err := scheduler.Start(); err != nil {
		logger.L().Fatalf("Failed to start refresh scheduler: %v", err)
	}
	defer scheduler.Stop()

	// 创建Gin实例
	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()

	// 设置路由
	api.SetupRouter(router)

	// 启动服务器
	logger.L().Infof("Server starting on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.L().Fatalf("Failed to start server: %v", err)
	}
}

// engineOptions 将配置映射为推荐引擎参数，缺省项使用默认值
func engineOptions(cfg *configs.Config) recommend.Options {
	opts := recommend.DefaultOptions()
	rc := cfg.Recommend

	if rc.CollaborativeWeight > 0 {
		opts.CollaborativeWeight = rc.CollaborativeWeight
	}
	if rc.ContentWeight > 0 {
		opts.ContentWeight = rc.ContentWeight
	}
	if rc.PopularityWeight > 0 {
		opts.PopularityWeight = rc.PopularityWeight
	}
	if rc.MaxPeers > 0 {
		opts.MaxPeers = rc.MaxPeers
	}
	if rc.SimilarityCutoff > 0 {
		opts.SimilarityCutoff = rc.SimilarityCutoff
	}
	if rc.MaxResults > 0 {
		opts.MaxResults = rc.MaxResults
	}
	if rc.CacheTTL > 0 {
		opts.CacheTTL = rc.CacheTTL
	}
	if rc.ResultValidity > 0 {
		opts.ResultValidity = rc.ResultValidity
	}
	if rc.ScorerTimeout > 0 {
		opts.ScorerTimeout = rc.ScorerTimeout
	}
	if rc.ComputeTimeout > 0 {
		opts.ComputeTimeout = rc.ComputeTimeout
	}
	return opts
}
