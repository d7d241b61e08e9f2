package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/asynctask/pkg/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("batch", slog.String("worker", "a"), slog.Int("n", 2))
	require.Equal(t, "batch", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "worker", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestWorkerAttrs(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want any
	}{
		{name: "worker", attr: logger.Worker("fetch"), key: "worker", want: "fetch"},
		{name: "worker id", attr: logger.WorkerID(id), key: "worker_id", want: id.String()},
		{name: "duration", attr: logger.Duration(time.Second), key: "duration", want: time.Second},
		{name: "timeout", attr: logger.Timeout(50 * time.Millisecond), key: "timeout", want: 50 * time.Millisecond},
		{name: "component", attr: logger.Component("async"), key: "component", want: "async"},
		{name: "panic", attr: logger.Panic("boom"), key: "panic", want: "boom"},
		{name: "stack", attr: logger.Stack([]byte("goroutine 1")), key: "stack", want: "goroutine 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}
}

func TestEmptyAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.WorkerID(uuid.Nil).Equal(slog.Attr{}))
	assert.True(t, logger.Panic(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Stack(nil).Equal(slog.Attr{}))
}
