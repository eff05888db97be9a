// Package logx 提供全局的 printf 风格日志函数，底层使用 zap
package logx

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = newSugared("info", "console")
)

// Init 按级别和格式初始化全局日志
// format 为 json 时使用生产配置，否则使用开发(console)配置
func Init(level, format string) {
	l := newSugared(level, format)

	mu.Lock()
	old := logger
	logger = l
	mu.Unlock()

	_ = old.Sync()
}

// SetLogger 替换底层 zap logger (测试中可传入 zaptest 或 zap.NewNop)
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l.Sugar()
}

// Sync 刷新缓冲区
func Sync() error {
	return current().Sync()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug 调试日志
func Debug(format string, args ...any) {
	current().Debugf(format, args...)
}

// Info 信息日志
func Info(format string, args ...any) {
	current().Infof(format, args...)
}

// Warn 警告日志
func Warn(format string, args ...any) {
	current().Warnf(format, args...)
}

// Error 错误日志
func Error(format string, args ...any) {
	current().Errorf(format, args...)
}

func newSugared(levelStr, format string) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	switch strings.ToLower(levelStr) {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}
