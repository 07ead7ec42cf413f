package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky")

func TestDoWithResultSucceedsAfterRetries(t *testing.T) {
	calls := 0
	got, err := DoWithResult(testContext(t), Config{
		MaxAttempts: 3,
		Backoff:     ConstantBackoff(time.Millisecond),
	}, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errFlaky
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDoWithResultSingleAttemptByDefault(t *testing.T) {
	calls := 0
	err := Do(testContext(t), Config{}, func() error {
		calls++
		return errFlaky
	})

	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, calls)
}

func TestDoWithResultStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	err := Do(testContext(t), Config{
		MaxAttempts: 5,
		Backoff:     ConstantBackoff(time.Millisecond),
		ShouldRetry: func(err error) bool { return !errors.Is(err, permanent) },
	}, func() error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoWithResultHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	calls := 0
	err := Do(ctx, Config{
		MaxAttempts: 5,
		Backoff:     ConstantBackoff(time.Hour),
	}, func() error {
		calls++
		cancel()
		return errFlaky
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, calls)
}

func TestDoWithResultCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	err := Do(ctx, Config{}, func() error {
		t.Fatal("fn must not be called")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExponentialBackoffGrows(t *testing.T) {
	b := ExponentialBackoff(10 * time.Millisecond)
	first := b(1)
	second := b(2)

	assert.GreaterOrEqual(t, first, 20*time.Millisecond)
	assert.Less(t, first, 31*time.Millisecond)
	assert.GreaterOrEqual(t, second, 40*time.Millisecond)
}

// testContext mirrors testing.T.Context (Go 1.24+): a context canceled
// when the test finishes.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
