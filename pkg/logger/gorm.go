package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger sends gorm's query log to the request-scoped slog logger. Statements are logged
// at debug level, slow ones at warn, failures at error.
type GormLogger struct {
	logger.Config
}

func NewGormLogger(cfg logger.Config) *GormLogger {
	return &GormLogger{Config: cfg}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.log(ctx, logger.Info, slog.LevelInfo, fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.log(ctx, logger.Warn, slog.LevelWarn, fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.log(ctx, logger.Error, slog.LevelError, fmt.Sprintf(msg, data...))
}

func (l *GormLogger) log(ctx context.Context, enabled logger.LogLevel, level slog.Level, msg string, attrs ...slog.Attr) {
	if l.LogLevel < enabled {
		return
	}
	WithContext(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
		slog.String("caller", utils.FileWithLineNum()),
	}

	switch {
	case err != nil && (!errors.Is(err, gorm.ErrRecordNotFound) || !l.IgnoreRecordNotFoundError):
		l.log(ctx, logger.Error, slog.LevelError, "SQL Error", append(attrs, slog.String("error", err.Error()))...)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		l.log(ctx, logger.Warn, slog.LevelWarn, "Slow SQL", append(attrs, slog.Duration("threshold", l.SlowThreshold))...)
	default:
		l.log(ctx, logger.Info, slog.LevelDebug, "SQL", attrs...)
	}
}

// ParamsFilter drops bound values from logged statements when ParameterizedQueries is set
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if l.ParameterizedQueries {
		return sql, nil
	}
	return sql, params
}
