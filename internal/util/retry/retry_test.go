package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast() Option { return WithInitialDelay(time.Millisecond) }

func TestWithExponentialBackoff_Success(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithExponentialBackoff_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("Throttling")
		}
		return nil
	}, fast())

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithExponentialBackoff_MaxRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	cause := errors.New("persistent error")

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		return cause
	}, fast(), WithMaxRetries(2))

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gave up after 3 attempts")
	assert.Equal(t, 3, attempts)
}

func TestWithExponentialBackoff_FatalReturnedUnwrapped(t *testing.T) {
	t.Parallel()
	attempts := 0
	cause := errors.New("stack does not exist")

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		return Fatal(cause)
	}, fast())

	assert.Same(t, cause, err)
	assert.Equal(t, 1, attempts)
}

func TestWithExponentialBackoff_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cause := errors.New("throttled")
	attempts := 0

	err := WithExponentialBackoff(ctx, func() error {
		attempts++
		cancel()
		return cause
	}, WithInitialDelay(time.Hour))

	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts)
}

func TestWithExponentialBackoff_DelayCapped(t *testing.T) {
	t.Parallel()
	var stamps []time.Time

	err := WithExponentialBackoff(context.Background(), func() error {
		stamps = append(stamps, time.Now())
		if len(stamps) < 4 {
			return errors.New("again")
		}
		return nil
	}, WithInitialDelay(5*time.Millisecond), WithMaxDelay(5*time.Millisecond), WithMultiplier(100))

	require.NoError(t, err)
	require.Len(t, stamps, 4)
	assert.Less(t, stamps[3].Sub(stamps[2]), time.Second)
}

func TestFatal(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Fatal(nil))

	sentinel := errors.New("sentinel")
	err := Fatal(sentinel)
	assert.True(t, IsFatal(err))
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "sentinel", err.Error())

	assert.True(t, IsFatal(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsFatal(sentinel))
}
