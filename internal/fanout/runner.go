package fanout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/asynctask/pkg/async"
	"github.com/dmitrymomot/asynctask/pkg/logger"
)

// Status is the observed state of a job once the batch wait returns.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusPanic   Status = "panic"
	StatusTimeout Status = "timeout"
)

// Outcome reports one job of a run.
type Outcome struct {
	Job    string
	Status Status
	Value  string
	Err    error
}

// runIDKey carries the identifier of one Execute call in its context.
type runIDKey struct{}

// Execute launches every job of the plan on its own worker and waits for
// them under a single timeout budget, or without limit when timeout is zero.
// Each outcome is the error the wait observed for that job, so the report and
// the returned *async.AggregateError always agree. Outcomes are in plan order.
func Execute(ctx context.Context, plan *Plan, timeout time.Duration, log *slog.Logger) ([]Outcome, error) {
	runID := uuid.New()
	ctx = context.WithValue(ctx, runIDKey{}, runID.String())

	launchers := make([]async.Launcher[string], len(plan.Jobs))
	for i, job := range plan.Jobs {
		launchers[i] = async.New(
			func(ctx context.Context, _ struct{}) (string, error) { return runJob(ctx, job) },
			async.WithName(job.Name),
			async.WithLogger(log),
		)
	}

	started := time.Now()
	workers := async.Run(ctx, launchers...)

	waiters := make([]async.Waiter, len(workers))
	for i, w := range workers {
		waiters[i] = w
	}

	var errs []error
	if timeout > 0 {
		errs = async.WaitEachTimeout(timeout, waiters...)
	} else {
		errs = async.WaitEach(waiters...)
	}

	outcomes := make([]Outcome, len(workers))
	for i, w := range workers {
		outcomes[i] = Outcome{Job: w.Name(), Status: classify(errs[i]), Err: errs[i]}
		if errs[i] == nil {
			// Already finished, so this does not block.
			outcomes[i].Value, _ = w.Result()
		}
	}

	err := async.Aggregate(errs...)
	attrs := []any{
		logger.Component("fanout"),
		slog.Int("jobs", len(workers)),
		logger.Timeout(timeout),
		logger.Duration(time.Since(started)),
	}
	var agg *async.AggregateError
	if errors.As(err, &agg) {
		attrs = append(attrs, slog.Int("failed", len(agg.Errors)), logger.Errors(agg.Errors...))
	}
	log.InfoContext(ctx, "batch finished", attrs...)

	return outcomes, err
}

func classify(err error) Status {
	var perr *async.PanicError
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, async.ErrTimeout):
		return StatusTimeout
	case errors.As(err, &perr):
		return StatusPanic
	default:
		return StatusFailed
	}
}

func runJob(ctx context.Context, job Job) (string, error) {
	if job.Sleep > 0 {
		timer := time.NewTimer(job.Sleep)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if job.Panic != "" {
		panic(job.Panic)
	}
	if job.Fail != "" {
		return "", errors.New(job.Fail)
	}
	return job.Value, nil
}
