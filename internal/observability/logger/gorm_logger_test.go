package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observedGlobals(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestGormLoggerSlowQueryWarns(t *testing.T) {
	logs := observedGlobals(t, zapcore.DebugLevel)
	l := NewGormLogger(DefaultGormLoggerConfig())

	began := time.Now().Add(-time.Second)
	l.Trace(context.Background(), began, func() (string, int64) {
		return "SELECT * FROM products WHERE tenant_id = ?", 3
	}, nil)

	entries := logs.FilterMessage("db.query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "SELECT", fields["verb"])
	assert.Equal(t, int64(3), fields["rows_affected"])
	assert.GreaterOrEqual(t, fields["duration_ms"], int64(1000))
}

func TestGormLoggerFastQuerySilentAtWarn(t *testing.T) {
	logs := observedGlobals(t, zapcore.DebugLevel)
	l := NewGormLogger(DefaultGormLoggerConfig())

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	assert.Empty(t, logs.FilterMessage("db.query").All())
}

func TestGormLoggerRecordMissSuppressed(t *testing.T) {
	logs := observedGlobals(t, zapcore.DebugLevel)
	l := NewGormLogger(DefaultGormLoggerConfig())
	began := time.Now()

	l.Trace(context.Background(), began, func() (string, int64) {
		return "SELECT * FROM plans WHERE id = ?", 0
	}, gormlogger.ErrRecordNotFound)
	assert.Empty(t, logs.FilterMessage("db.query").All())

	l.Trace(context.Background(), began, func() (string, int64) {
		return "INSERT INTO plans VALUES (?)", 0
	}, errors.New("constraint violated"))
	entries := logs.FilterMessage("db.query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "INSERT", entries[0].ContextMap()["verb"])
}

func TestSQLVerb(t *testing.T) {
	cases := []struct {
		sql  string
		want string
	}{
		{"SELECT id FROM orders", "SELECT"},
		{"  update invoices set status = ?", "UPDATE"},
		{"WITH due AS (SELECT 1) SELECT *", "SELECT"},
		{"DELETE FROM notifications", "DELETE"},
		{"PRAGMA foreign_keys = ON", "OTHER"},
		{"", "OTHER"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sqlVerb(tc.sql), tc.sql)
	}
}
