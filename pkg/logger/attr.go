package logger

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". Nil errors produce an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", keyed by their position
// in errs.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Timeout records a wait budget under "timeout".
func Timeout(d time.Duration) slog.Attr {
	return slog.Duration("timeout", d)
}

// Worker records a worker's display name under "worker".
func Worker(name string) slog.Attr {
	return slog.String("worker", name)
}

// WorkerID records a worker's identifier under "worker_id".
func WorkerID(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("worker_id", id.String())
}

// Panic records a recovered panic value under "panic".
func Panic(v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any("panic", v)
}

// Stack records a goroutine stack dump under "stack".
func Stack(stack []byte) slog.Attr {
	if len(stack) == 0 {
		return slog.Attr{}
	}
	return slog.String("stack", string(stack))
}
