package database

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm/logger"
)

// QueryLog represents a single SQL query log entry
type QueryLog struct {
	ID        int           `json:"id"`
	SQL       string        `json:"sql"`
	Duration  time.Duration `json:"duration"`
	Rows      int64         `json:"rows"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// QueryLogger keeps the most recent SQL statements in a fixed-size ring
type QueryLogger struct {
	mu      sync.RWMutex
	entries []QueryLog
	next    int
	full    bool
	counter int
}

// SQLLogger is the query log every connection opened by Open feeds
var SQLLogger = NewQueryLogger(100)

// NewQueryLogger creates a query logger retaining up to size entries
func NewQueryLogger(size int) *QueryLogger {
	if size < 1 {
		size = 1
	}
	return &QueryLogger{entries: make([]QueryLog, size)}
}

// LogQuery records a SQL statement, evicting the oldest when full
func (ql *QueryLogger) LogQuery(sql string, duration time.Duration, rows int64, err error) {
	ql.mu.Lock()
	defer ql.mu.Unlock()

	ql.counter++
	entry := QueryLog{
		ID:        ql.counter,
		SQL:       sql,
		Duration:  duration,
		Rows:      rows,
		Timestamp: time.Now(),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	ql.entries[ql.next] = entry
	ql.next = (ql.next + 1) % len(ql.entries)
	if ql.next == 0 {
		ql.full = true
	}
}

// GetQueries returns all retained queries, newest first
func (ql *QueryLogger) GetQueries() []QueryLog {
	return ql.GetRecentQueries(len(ql.entries))
}

// GetRecentQueries returns up to n of the most recent queries, newest first
func (ql *QueryLogger) GetRecentQueries(n int) []QueryLog {
	ql.mu.RLock()
	defer ql.mu.RUnlock()

	size := ql.next
	if ql.full {
		size = len(ql.entries)
	}
	if n > size {
		n = size
	}
	if n < 0 {
		n = 0
	}

	result := make([]QueryLog, n)
	for i := 0; i < n; i++ {
		idx := (ql.next - 1 - i + len(ql.entries)) % len(ql.entries)
		result[i] = ql.entries[idx]
	}
	return result
}

// Clear removes all logged queries
func (ql *QueryLogger) Clear() {
	ql.mu.Lock()
	defer ql.mu.Unlock()
	ql.next = 0
	ql.full = false
}

// CustomGormLogger forwards to the wrapped GORM logger and records every
// traced statement in Queries
type CustomGormLogger struct {
	logger.Interface
	Queries *QueryLogger
}

// LogMode keeps the query recorder when GORM derives a logger with a new level
func (l *CustomGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &CustomGormLogger{Interface: l.Interface.LogMode(level), Queries: l.Queries}
}

// Trace implements the logger.Interface
func (l *CustomGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.Interface != nil {
		l.Interface.Trace(ctx, begin, fc, err)
	}

	if l.Queries == nil {
		return
	}
	sql, rows := fc()
	l.Queries.LogQuery(sql, time.Since(begin), rows, err)
}
