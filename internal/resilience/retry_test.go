package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    maxAttempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	val, err := Do(context.Background(), fastConfig(3), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	val, err := Do(context.Background(), fastConfig(3), func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, NewTransientError(errors.New("overloaded"), 529)
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("invalid api key")

	calls := 0
	_, err := Do(context.Background(), fastConfig(3), func(ctx context.Context) (int, error) {
		calls++
		return 0, permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(3), func(ctx context.Context) (int, error) {
		calls++
		return 0, NewTransientError(errors.New("rate limit"), 429)
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ContextCancelStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Do(ctx, fastConfig(5), func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, NewTransientError(errors.New("timeout"), 504)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_OnRetryCallback(t *testing.T) {
	cfg := fastConfig(3)
	var attempts []int
	cfg.OnRetry = func(attempt int, err error) {
		attempts = append(attempts, attempt)
	}

	Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		return 0, NewTransientError(errors.New("overloaded"), 529)
	})

	assert.Equal(t, []int{1, 2}, attempts)
}

func TestDo_ShouldRetryOverride(t *testing.T) {
	cfg := fastConfig(3)
	cfg.ShouldRetry = func(err error) bool { return true }

	calls := 0
	Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("normally permanent")
	})

	assert.Equal(t, 3, calls)
}

func TestComputeBackoff_GrowsAndCaps(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     300 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}

	assert.Equal(t, 100*time.Millisecond, computeBackoff(0, cfg))
	assert.Equal(t, 200*time.Millisecond, computeBackoff(1, cfg))
	assert.Equal(t, 300*time.Millisecond, computeBackoff(2, cfg))
	assert.Equal(t, 300*time.Millisecond, computeBackoff(5, cfg))
}
