package utils

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// FilteredGormLogger wraps a GORM logger and drops trace output for queries
// matching any of the configured patterns. Used to silence the reminder
// worker's per-tick polling, which would otherwise flood the log.
type FilteredGormLogger struct {
	logger.Interface
	ignoredQueryPatterns []string
}

// NewFilteredGormLogger creates a logger that skips queries matching the given patterns
func NewFilteredGormLogger(l logger.Interface, ignoredPatterns ...string) *FilteredGormLogger {
	return &FilteredGormLogger{
		Interface:            l,
		ignoredQueryPatterns: ignoredPatterns,
	}
}

// LogMode implements logger.Interface
func (l *FilteredGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &FilteredGormLogger{
		Interface:            l.Interface.LogMode(level),
		ignoredQueryPatterns: l.ignoredQueryPatterns,
	}
}

// Trace implements logger.Interface
func (l *FilteredGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	sql, _ := fc()
	for _, pattern := range l.ignoredQueryPatterns {
		if strings.Contains(sql, pattern) {
			return
		}
	}
	l.Interface.Trace(ctx, begin, fc, err)
}
