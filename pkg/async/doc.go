// Package async runs ordinary functions on dedicated goroutines and lets the
// caller collect their outcome later.
//
// A Task wraps a function. Every call to Task.Go starts a new goroutine and
// immediately returns a *Worker, the handle of that single invocation. The
// worker stores either the value the function returned or the failure it
// produced, and hands it to whoever waits on it.
//
// There is no pool, queue or concurrency limit: each invocation owns its
// goroutine, and nothing ever stops a running function. Timeouts only bound
// how long the caller is willing to wait.
//
// # Usage
//
//	import (
//	    "context"
//	    "time"
//	    "github.com/dmitrymomot/asynctask/pkg/async"
//	)
//
//	fetch := async.New(func(ctx context.Context, id int) (string, error) {
//	    time.Sleep(100 * time.Millisecond)
//	    return fmt.Sprintf("user %d", id), nil
//	})
//
//	w := fetch.Go(ctx, 42)
//	// do other work …
//	name, err := w.Result()
//
// Methods are wrapped once and bound per receiver:
//
//	area := async.NewMethod(Shape.Area)
//	w := area.For(square).Go(ctx, struct{}{}) // runs square.Area, named "<square>.Area"
//
// # Waiting
//
// Worker.Wait blocks until the function returns. Worker.WaitTimeout gives up
// after the given duration with a *TimeoutError; the goroutine keeps running and
// a later Wait observes its real outcome. Worker.Result and
// Worker.ResultTimeout return the value as well.
//
// WaitAllTimeout waits on many workers under one shared budget: workers are
// visited in order and each gets whatever budget is left after the previous
// ones. It never stops early. Every failure, timeouts included, is returned in
// one *AggregateError in the order the workers were passed. Run launches a mix
// of tasks and raw Func values and returns their workers in order.
// WaitEachTimeout performs the same waits but returns each worker's error by
// position; Aggregate turns such a slice into the batch error.
//
// # Error Handling
//
// Errors returned by the wrapped function reach the caller unchanged, so
// errors.Is and equality against the original value hold. A panic is
// recovered on the worker goroutine and returned as a *PanicError carrying the
// panic value and the stack of the panicking goroutine. Timeouts match
// ErrTimeout via errors.Is, and AggregateError unwraps to its components.
//
// # Logging
//
// Workers log start and finish at debug level and panics at error level
// through the logger given with WithLogger (slog.Default otherwise).
package async
