package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SlowQueryThreshold marks archive queries that are logged as slow.
const SlowQueryThreshold = 200 * time.Millisecond

// GormZapLogger routes GORM logging for the archive through zap.
type GormZapLogger struct {
	ZapLogger *zap.Logger
	LogLevel  logger.LogLevel
}

// NewGormZapLogger creates a GORM logger at the named level ("silent",
// "error", "warn" or "info"; anything else means warn).
func NewGormZapLogger(zapLogger *zap.Logger, level string) *GormZapLogger {
	return &GormZapLogger{
		ZapLogger: zapLogger.Named("archive"),
		LogLevel:  ParseGormLevel(level),
	}
}

// ParseGormLevel maps a config string to a GORM log level.
func ParseGormLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// LogMode sets the log level.
func (l *GormZapLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info logs informational messages.
func (l *GormZapLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Info {
		l.ZapLogger.Sugar().Infof(msg, data...)
	}
}

// Warn logs warning messages.
func (l *GormZapLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Warn {
		l.ZapLogger.Sugar().Warnf(msg, data...)
	}
}

// Error logs error messages.
func (l *GormZapLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Error {
		l.ZapLogger.Sugar().Errorf(msg, data...)
	}
}

// Trace logs archive statements and their execution details.
func (l *GormZapLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	// "record not found" is a normal lookup miss
	case err != nil && l.LogLevel >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.ZapLogger.Error("Archive query failed",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		)
	case elapsed > SlowQueryThreshold && l.LogLevel >= logger.Warn:
		sql, rows := fc()
		l.ZapLogger.Warn("Archive query slow",
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		)
	case l.LogLevel >= logger.Info:
		sql, rows := fc()
		l.ZapLogger.Debug("Archive query",
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		)
	}
}
