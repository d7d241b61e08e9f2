package async

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/asynctask/pkg/logger"
)

// Worker is the handle of a single invocation running on its own goroutine.
// The outcome is written once by that goroutine before done is closed and is
// only read after done has been observed closed.
type Worker[T any] struct {
	id     uuid.UUID
	name   string
	result T
	err    error
	done   chan struct{}
	logger *slog.Logger
}

func start[A, T any](ctx context.Context, fn Func[A, T], name string, log *slog.Logger, arg A) *Worker[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = slog.Default()
	}
	w := &Worker[T]{
		id:     uuid.New(),
		name:   name,
		done:   make(chan struct{}),
		logger: log,
	}
	go execute(ctx, w, fn, arg)
	return w
}

func execute[A, T any](ctx context.Context, w *Worker[T], fn Func[A, T], arg A) {
	started := time.Now()
	returned := false

	defer close(w.done)
	defer func() {
		if r := recover(); r != nil {
			perr := &PanicError{Worker: w.name, Value: r, Stack: debug.Stack()}
			var zero T
			w.result, w.err = zero, perr
			w.logger.ErrorContext(ctx, "worker panicked",
				logger.Worker(w.name),
				logger.WorkerID(w.id),
				logger.Panic(r),
				logger.Stack(perr.Stack),
			)
			return
		}
		if !returned {
			// runtime.Goexit unwound the goroutine.
			w.err = ErrAborted
		}
		w.logger.DebugContext(ctx, "worker finished",
			logger.Worker(w.name),
			logger.WorkerID(w.id),
			logger.Duration(time.Since(started)),
			logger.Error(w.err),
		)
	}()

	w.logger.DebugContext(ctx, "worker started",
		logger.Worker(w.name),
		logger.WorkerID(w.id),
	)

	if fn == nil {
		w.err = ErrNilFunc
		returned = true
		return
	}

	// A context cancelled before launch completes the worker without calling fn.
	if err := ctx.Err(); err != nil {
		w.err = err
		returned = true
		return
	}

	w.result, w.err = fn(ctx, arg)
	returned = true
}

// ID returns the unique identifier assigned at launch.
func (w *Worker[T]) ID() uuid.UUID { return w.id }

// Name returns the display name of the task that launched the worker.
func (w *Worker[T]) Name() string { return w.name }

func (w *Worker[T]) String() string { return "async worker " + w.name }

// Done returns a channel that is closed once the outcome is captured.
func (w *Worker[T]) Done() <-chan struct{} { return w.done }

// IsComplete reports whether the worker has finished without blocking.
func (w *Worker[T]) IsComplete() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the worker finishes and returns the error it produced.
func (w *Worker[T]) Wait() error {
	<-w.done
	return w.err
}

// WaitTimeout is like Wait but gives up after timeout with a *TimeoutError.
// A non-positive timeout checks for completion once without blocking.
// Giving up does not stop the worker; a later wait observes its real outcome.
func (w *Worker[T]) WaitTimeout(timeout time.Duration) error {
	select {
	case <-w.done:
		return w.err
	default:
	}
	if timeout <= 0 {
		return &TimeoutError{Worker: w.name, Budget: timeout}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-w.done:
		return w.err
	case <-timer.C:
		return &TimeoutError{Worker: w.name, Budget: timeout}
	}
}

// WaitContext blocks until the worker finishes or ctx is done, in which case
// ctx.Err() is returned.
func (w *Worker[T]) WaitContext(ctx context.Context) error {
	select {
	case <-w.done:
		return w.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Result waits for the worker and returns its value and error.
func (w *Worker[T]) Result() (T, error) {
	if err := w.Wait(); err != nil {
		var zero T
		return zero, err
	}
	return w.result, nil
}

// ResultTimeout is Result bounded by timeout.
func (w *Worker[T]) ResultTimeout(timeout time.Duration) (T, error) {
	if err := w.WaitTimeout(timeout); err != nil {
		var zero T
		return zero, err
	}
	return w.result, nil
}
