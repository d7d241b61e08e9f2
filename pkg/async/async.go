package async

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"strings"
)

// Func is the shape of a function that can run asynchronously.
// Use a struct for several arguments and struct{} for none.
type Func[A, T any] func(ctx context.Context, arg A) (T, error)

// Launch runs f on a new worker with the zero value of A, naming the worker
// after the function.
func (f Func[A, T]) Launch(ctx context.Context) *Worker[T] {
	return New[A, T](f).Launch(ctx)
}

// Launcher starts a worker without an explicit argument. It is implemented
// by *Task and Func so Run can take a mix of both.
type Launcher[T any] interface {
	Launch(ctx context.Context) *Worker[T]
}

// Option configures a Task.
type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
}

// WithName overrides the display name derived from the function symbol.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger used for worker lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(fn any, opts []Option) *options {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.name == "" {
		o.name = funcName(fn)
	}
	return o
}

// Task wraps a function so every call starts it on a dedicated goroutine.
// A Task is immutable and safe for concurrent use. Workers of a zero Task
// fail with ErrNilFunc.
type Task[A, T any] struct {
	fn     Func[A, T]
	name   string
	logger *slog.Logger
}

// New wraps fn. It panics with ErrNilFunc when fn is nil.
func New[A, T any](fn func(context.Context, A) (T, error), opts ...Option) *Task[A, T] {
	if fn == nil {
		panic(ErrNilFunc)
	}
	o := newOptions(fn, opts)
	return &Task[A, T]{fn: fn, name: o.name, logger: o.logger}
}

// Name returns the display name given to workers of this task.
func (t *Task[A, T]) Name() string { return t.name }

// Go starts fn(ctx, arg) on a new goroutine and returns its worker without
// waiting.
func (t *Task[A, T]) Go(ctx context.Context, arg A) *Worker[T] {
	return start(ctx, t.fn, t.name, t.logger, arg)
}

// Launch is Go with the zero value of A.
func (t *Task[A, T]) Launch(ctx context.Context) *Worker[T] {
	var arg A
	return t.Go(ctx, arg)
}

// Async executes fn asynchronously with param and returns its worker.
func Async[A, T any](ctx context.Context, param A, fn func(context.Context, A) (T, error)) *Worker[T] {
	return New(fn).Go(ctx, param)
}

// funcName resolves the last segment of a function's symbol name,
// e.g. "pkg.(*T).Method-fm" becomes "Method".
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() == reflect.Func && !v.IsNil() {
		if f := runtime.FuncForPC(v.Pointer()); f != nil {
			name := strings.TrimSuffix(f.Name(), "-fm")
			name = strings.ReplaceAll(name, "[...]", "")
			if i := strings.LastIndex(name, "."); i >= 0 {
				name = name[i+1:]
			}
			if name != "" {
				return name
			}
		}
	}
	return fmt.Sprint(fn)
}
