package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// GormLogger writes catalog queries to zap. Unless pinned with LogMode, the
// verbosity follows the zap logger's level, so a log.level reload also
// changes what SQL is logged.
type GormLogger struct {
	logger    *zap.Logger
	pinned    bool
	level     gormlogger.LogLevel
	slowQuery time.Duration
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a query is logged as slow.
// Zero disables slow query logging.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.slowQuery = threshold
	}
}

// NewGormLogger creates a GORM logger backed by zap
func NewGormLogger(zapLogger *zap.Logger, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		logger:    zapLogger.Named("catalog.sql"),
		slowQuery: defaultSlowQuery,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode pins the GORM level regardless of the zap level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	pinned := *l
	pinned.pinned = true
	pinned.level = level
	return &pinned
}

// effectiveLevel maps the zap level onto GORM's scale: debug logs every
// query, info and warn only slow ones, error only failures.
func (l *GormLogger) effectiveLevel() gormlogger.LogLevel {
	if l.pinned {
		return l.level
	}
	core := l.logger.Core()
	switch {
	case core.Enabled(zapcore.DebugLevel):
		return gormlogger.Info
	case core.Enabled(zapcore.WarnLevel):
		return gormlogger.Warn
	case core.Enabled(zapcore.ErrorLevel):
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.effectiveLevel() >= gormlogger.Info {
		l.logger.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.effectiveLevel() >= gormlogger.Warn {
		l.logger.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.effectiveLevel() >= gormlogger.Error {
		l.logger.Sugar().Errorf(msg, data...)
	}
}

// Trace logs one executed statement. A missing product is an expected answer
// to a label request and is never logged as an error.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	level := l.effectiveLevel()
	if level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	slow := l.slowQuery > 0 && elapsed > l.slowQuery
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)

	switch {
	case failed && level >= gormlogger.Error:
	case slow && level >= gormlogger.Warn:
	case level >= gormlogger.Info:
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}

	switch {
	case failed:
		l.logger.Error("Catalog query failed", append(fields, zap.Error(err))...)
	case slow:
		l.logger.Warn("Slow catalog query", append(fields, zap.Duration("threshold", l.slowQuery))...)
	default:
		l.logger.Debug("Catalog query", fields...)
	}
}
