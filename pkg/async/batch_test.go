package async_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/asynctask/pkg/async"
)

func TestWaitAllTimeout(t *testing.T) {
	t.Parallel()

	t.Run("single timeout with zero budget", func(t *testing.T) {
		t.Parallel()

		err := async.WaitAllTimeout(0, async.New(sleep).Go(context.Background(), 100*time.Millisecond))

		var agg *async.AggregateError
		require.ErrorAs(t, err, &agg)
		require.Len(t, agg.Errors, 1)
		assert.ErrorIs(t, agg.Errors[0], async.ErrTimeout)
	})

	t.Run("aggregates in input order", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		errExpected := errors.New("expected")

		timesOut := async.New(sleep).Go(ctx, 200*time.Millisecond)
		succeeds := async.New(sleep).Go(ctx, 0)
		fails := async.New(func(context.Context, struct{}) (int, error) {
			return 0, errExpected
		}).Launch(ctx)

		err := async.WaitAllTimeout(50*time.Millisecond, timesOut, succeeds, fails)

		var agg *async.AggregateError
		require.ErrorAs(t, err, &agg)
		require.Len(t, agg.Errors, 2)
		assert.ErrorIs(t, agg.Errors[0], async.ErrTimeout)
		assert.Same(t, errExpected, agg.Errors[1])

		// Components stay reachable through the aggregate.
		assert.ErrorIs(t, err, errExpected)
		assert.ErrorIs(t, err, async.ErrTimeout)
	})

	t.Run("budget is shared across workers", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		first := async.New(sleep).Go(ctx, 100*time.Millisecond)
		second := async.New(sleep).Go(ctx, 100*time.Millisecond)

		started := time.Now()
		err := async.WaitAllTimeout(50*time.Millisecond, first, second)
		elapsed := time.Since(started)

		var agg *async.AggregateError
		require.ErrorAs(t, err, &agg)
		assert.Len(t, agg.Errors, 2)
		assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
		assert.Less(t, elapsed, 90*time.Millisecond)
	})

	t.Run("combined timeout counts", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		raise := async.New(func(context.Context, struct{}) (int, error) {
			return 0, errors.New("expected")
		})

		err := async.WaitAllTimeout(50*time.Millisecond,
			async.New(sleep).Go(ctx, 0),
			async.New(sleep).Go(ctx, 100*time.Millisecond),
			async.New(sleep).Go(ctx, 100*time.Millisecond),
			raise.Launch(ctx),
		)

		var agg *async.AggregateError
		require.ErrorAs(t, err, &agg)
		timeouts := 0
		for _, e := range agg.Errors {
			if errors.Is(e, async.ErrTimeout) {
				timeouts++
			}
		}
		assert.Len(t, agg.Errors, 3)
		assert.Equal(t, 2, timeouts)
	})

	t.Run("all succeed", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		err := async.WaitAllTimeout(time.Second,
			async.New(sleep).Go(ctx, 10*time.Millisecond),
			async.New(add).Go(ctx, [2]int{1, 1}),
		)
		require.NoError(t, err)
	})

	t.Run("no workers", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, async.WaitAllTimeout(0))
	})
}

func TestWaitAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	errFirst := errors.New("first")
	errSecond := errors.New("second")

	// Workers of different value types share one batch.
	err := async.WaitAll(
		async.New(func(context.Context, struct{}) (int, error) { return 0, errFirst }).Launch(ctx),
		async.New(sleep).Go(ctx, 20*time.Millisecond),
		async.New(func(context.Context, struct{}) (string, error) { return "", errSecond }).Launch(ctx),
	)

	var agg *async.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, []error{errFirst, errSecond}, agg.Errors)
	assert.Contains(t, err.Error(), "2 worker(s) failed")
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")

	require.NoError(t, async.WaitAll())
}

func TestRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var mu sync.Mutex
	var items []int
	appendItem := func(context.Context, struct{}) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		items = append(items, 0)
		return len(items), nil
	}

	constant := func(v int) async.Func[struct{}, int] {
		return func(context.Context, struct{}) (int, error) {
			time.Sleep(time.Duration(10-v) * time.Millisecond)
			return v, nil
		}
	}

	workers := async.Run[int](ctx,
		async.Func[struct{}, int](appendItem),
		async.New(appendItem, async.WithName("append")),
	)
	require.Len(t, workers, 2)
	assert.Equal(t, "append", workers[1].Name())

	raw := async.Run[int](ctx, async.Func[[2]int, int](add))
	assert.Equal(t, "add", raw[0].Name())
	require.NoError(t, raw[0].Wait())

	require.NoError(t, async.WaitAll(workers[0], workers[1]))
	assert.Equal(t, []int{0, 0}, items)

	ordered := async.Run[int](ctx, constant(1), constant(2), constant(3))
	values, err := async.Collect(ordered...)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)
}

func TestCollect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	errExpected := errors.New("expected")
	double := async.New(func(_ context.Context, n int) (int, error) {
		if n < 0 {
			return 0, errExpected
		}
		return n * 2, nil
	})

	values, err := async.Collect(double.Go(ctx, 1), double.Go(ctx, -1), double.Go(ctx, 3))
	assert.Equal(t, []int{2, 0, 6}, values)

	var agg *async.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, []error{errExpected}, agg.Errors)
}

func TestWaitAny(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	label := async.New(func(_ context.Context, d time.Duration) (string, error) {
		time.Sleep(d)
		return d.String(), nil
	})

	started := time.Now()
	index, result, err := async.WaitAny(
		label.Go(ctx, 150*time.Millisecond),
		label.Go(ctx, 20*time.Millisecond),
		label.Go(ctx, 100*time.Millisecond),
	)
	elapsed := time.Since(started)

	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, "20ms", result)
	assert.Less(t, elapsed, 100*time.Millisecond)

	_, _, err = async.WaitAny[string]()
	require.ErrorIs(t, err, async.ErrNoWorkers)
}

func TestWaitEachTimeout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	errBroken := errors.New("broken")

	nap := async.New(sleep)
	fail := async.New(func(context.Context, struct{}) (struct{}, error) {
		return struct{}{}, errBroken
	})

	errs := async.WaitEachTimeout(30*time.Millisecond,
		nap.Go(ctx, time.Second),
		nap.Go(ctx, 0),
		fail.Launch(ctx),
	)
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], async.ErrTimeout)
	assert.NoError(t, errs[1])
	assert.Same(t, errBroken, errs[2])

	// The aggregate holds exactly the failed slots, in order.
	var agg *async.AggregateError
	require.ErrorAs(t, async.Aggregate(errs...), &agg)
	require.Len(t, agg.Errors, 2)
	assert.Same(t, errs[0], agg.Errors[0])
	assert.Same(t, errBroken, agg.Errors[1])
}

func TestWaitEach(t *testing.T) {
	t.Parallel()

	errs := async.WaitEach(
		async.New(sleep).Go(context.Background(), 10*time.Millisecond),
		async.New(explode).Go(context.Background(), "boom"),
	)
	require.Len(t, errs, 2)
	assert.NoError(t, errs[0])

	var perr *async.PanicError
	assert.ErrorAs(t, errs[1], &perr)
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, async.Aggregate())
	assert.NoError(t, async.Aggregate(nil, nil))

	errA := errors.New("a")
	err := async.Aggregate(nil, errA, nil)
	require.ErrorIs(t, err, errA)
	assert.Equal(t, "async: 1 worker(s) failed\n\ta", err.Error())
}
