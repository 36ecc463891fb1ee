package logger

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init 按级别初始化全局 logger
func Init(level string) error {
    lvl, err := zapcore.ParseLevel(level)
    if err != nil {
        lvl = zapcore.InfoLevel
    }
    cfg := zap.NewProductionConfig()
    cfg.Level = zap.NewAtomicLevelAt(lvl)
    l, err := cfg.Build(zap.AddCallerSkip(1))
    if err != nil {
        return err
    }
    log = l
    return nil
}

func L() *zap.Logger { return log }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }

func Sync() { _ = log.Sync() }
