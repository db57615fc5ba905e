package logger

import (
	"go.uber.org/zap"
)

// 全局日志实例
var base *zap.SugaredLogger

// Init 初始化日志
func Init(mode string) error {
	var l *zap.Logger
	var err error

	if mode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}

	base = l.Sugar()
	return nil
}

// L 获取全局日志实例
func L() *zap.SugaredLogger {
	if base == nil {
		base = zap.NewNop().Sugar()
	}
	return base
}

// With 创建带组件标识的子日志
func With(args ...interface{}) *zap.SugaredLogger {
	return L().With(args...)
}

// Sync 刷新缓冲的日志
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}
