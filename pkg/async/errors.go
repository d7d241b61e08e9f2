package async

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrTimeout   = errors.New("async: timed out waiting for worker completion")
	ErrNoWorkers = errors.New("async: WaitAny called with no workers")
	ErrNilFunc   = errors.New("async: nil function")
	ErrAborted   = errors.New("async: worker goroutine exited without returning")
)

// TimeoutError reports that a wait gave up before the worker finished.
// The worker itself keeps running.
type TimeoutError struct {
	Worker string
	Budget time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("async: worker %q did not complete within %s", e.Worker, e.Budget)
}

// Is makes errors.Is(err, ErrTimeout) hold.
func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// Timeout mirrors net.Error so callers can treat it like any other timeout.
func (e *TimeoutError) Timeout() bool { return true }

// PanicError holds a panic recovered inside a worker goroutine together with
// the stack captured at the panic site.
type PanicError struct {
	Worker string
	Value  any
	Stack  []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("async: worker %q panicked: %v", e.Worker, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// AggregateError collects the failures of a batch wait in the order the
// workers were passed in.
type AggregateError struct {
	Errors []error
}

// newAggregateError returns nil for an empty list.
func newAggregateError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "async: %d worker(s) failed", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n\t")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error { return e.Errors }
