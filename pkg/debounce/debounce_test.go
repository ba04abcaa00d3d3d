package debounce

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRunsAfterQuietWindow(t *testing.T) {
	d := New(time.Millisecond)

	got, err := Do(context.Background(), d, func() (string, error) {
		return "ran", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ran", got)
}

func TestDoSupersedesOlderCalls(t *testing.T) {
	d := New(50 * time.Millisecond)

	var ran atomic.Int64
	errs := make([]error, 3)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			time.Sleep(time.Duration(i) * 10 * time.Millisecond)
			_, errs[i] = Do(context.Background(), d, func() (int, error) {
				ran.Add(1)
				return i, nil
			})
		}(i)
	}
	wg.Wait()

	assert.ErrorIs(t, errs[0], ErrSuperseded)
	assert.ErrorIs(t, errs[1], ErrSuperseded)
	assert.NoError(t, errs[2])
	assert.Equal(t, int64(1), ran.Load())
}

func TestDoCallsSpacedWiderThanWindowBothRun(t *testing.T) {
	d := New(5 * time.Millisecond)

	var ran atomic.Int64
	for i := 0; i < 2; i++ {
		_, err := Do(context.Background(), d, func() (int, error) {
			ran.Add(1)
			return 0, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2), ran.Load())
}

func TestDoHonorsContextCancellation(t *testing.T) {
	d := New(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do(ctx, d, func() (int, error) { return 0, nil })
	assert.ErrorIs(t, err, context.Canceled)
}
