package jobs

import (
	"context"
	"time"

	"github.com/BinLe1988/stayhub/pkg/recommend"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// refreshTimeout 单轮批量刷新的总时间预算
const refreshTimeout = 10 * time.Minute

// RefreshScheduler 按计划批量刷新推荐结果
type RefreshScheduler struct {
	engine *recommend.Engine
	cron   *cron.Cron
	spec   string
	log    *zap.SugaredLogger
}

// NewRefreshScheduler 创建推荐刷新调度器
func NewRefreshScheduler(engine *recommend.Engine, spec string, log *zap.SugaredLogger) *RefreshScheduler {
	return &RefreshScheduler{
		engine: engine,
		cron:   cron.New(),
		spec:   spec,
		log:    log.With("component", "jobs.RefreshScheduler"),
	}
}

// Start 启动调度
func (s *RefreshScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infow("recommendation refresh scheduled", "spec", s.spec)
	return nil
}

// Stop 停止调度，等待进行中的任务结束
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// runOnce 执行一轮批量刷新，强制重算以更新过期画像
func (s *RefreshScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	refreshed, err := s.engine.RefreshAll(ctx, true)
	if err != nil {
		s.log.Errorw("batch refresh failed", "refreshed", refreshed, "error", err)
		return
	}
	s.log.Infow("batch refresh finished", "refreshed", refreshed, "elapsed", time.Since(start))
}
