package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"usersvc/config"
	deliverycontext "usersvc/internal/delivery/context"
	"usersvc/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newCapturingGormLogger(debug bool) (*gormSlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return newGormSlogLogger(base, cfg).(*gormSlogLogger), &buf
}

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormSlogLogger_LogsFailedQueryWithRequestID(t *testing.T) {
	l, buf := newCapturingGormLogger(false)
	ctx := deliverycontext.WithRequestID(context.Background(), "req-1")

	l.Trace(ctx, time.Now(), sqlFn(`INSERT INTO "users"`), errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "GORM query failed")
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "error=boom")
}

func TestGormSlogLogger_IgnoresRecordNotFound(t *testing.T) {
	l, buf := newCapturingGormLogger(false)

	l.Trace(context.Background(), time.Now(), sqlFn(`SELECT * FROM "users"`), gorm.ErrRecordNotFound)

	assert.Zero(t, buf.Len())
}

func TestGormSlogLogger_EchoesStatementsOnlyInDebug(t *testing.T) {
	quiet, quietBuf := newCapturingGormLogger(false)
	quiet.Trace(context.Background(), time.Now(), sqlFn(`SELECT 1`), nil)
	assert.Zero(t, quietBuf.Len())

	verbose, verboseBuf := newCapturingGormLogger(true)
	verbose.Trace(context.Background(), time.Now(), sqlFn(`SELECT 1`), nil)
	assert.Contains(t, verboseBuf.String(), "GORM query")
}

func TestGormSlogLogger_SlowQuery(t *testing.T) {
	l, buf := newCapturingGormLogger(false)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn(`SELECT pg_sleep(1)`), nil)

	assert.Contains(t, buf.String(), "GORM slow query")
}
