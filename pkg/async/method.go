package async

import (
	"context"
	"fmt"
	"log/slog"
)

// Method wraps a method expression so it can be bound to receivers later.
//
// When R is an interface and fn is the interface method expression
// (for example Shape.Area), the call dispatches on the bound receiver's
// dynamic type, so types that provide their own implementation are honoured.
type Method[R, A, T any] struct {
	fn     func(R, context.Context, A) (T, error)
	name   string
	logger *slog.Logger
}

// NewMethod wraps fn. It panics with ErrNilFunc when fn is nil.
func NewMethod[R, A, T any](fn func(R, context.Context, A) (T, error), opts ...Option) *Method[R, A, T] {
	if fn == nil {
		panic(ErrNilFunc)
	}
	o := newOptions(fn, opts)
	return &Method[R, A, T]{fn: fn, name: o.name, logger: o.logger}
}

// Name returns the unqualified method name.
func (m *Method[R, A, T]) Name() string { return m.name }

// For binds the method to recv. The task is named "<recv>.<name>".
// Binding a zero Method yields a task whose workers fail with ErrNilFunc.
func (m *Method[R, A, T]) For(recv R) *Task[A, T] {
	t := &Task[A, T]{
		name:   fmt.Sprintf("%v.%s", recv, m.name),
		logger: m.logger,
	}
	if fn := m.fn; fn != nil {
		t.fn = func(ctx context.Context, arg A) (T, error) {
			return fn(recv, ctx, arg)
		}
	}
	return t
}
