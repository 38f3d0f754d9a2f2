package batch

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Process(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	double := func(ctx context.Context, index int, item int) (int, error) {
		return item * 2, nil
	}

	t.Run("Sequential", func(t *testing.T) {
		p, err := NewProcessor[int, int](4)
		require.NoError(t, err)

		results, err := p.Process(context.Background(), items, double)
		require.NoError(t, err)
		require.Len(t, results, 25)
		assert.Equal(t, 0, results[0])
		assert.Equal(t, 48, results[24])
	})

	t.Run("Concurrent", func(t *testing.T) {
		p, err := NewProcessor[int, int](3)
		require.NoError(t, err)

		var processedCount int32
		results, err := p.ProcessConcurrent(context.Background(), items, func(ctx context.Context, index int, item int) (int, error) {
			atomic.AddInt32(&processedCount, 1)
			return item * 2, nil
		})
		require.NoError(t, err)
		assert.Equal(t, int32(25), processedCount)

		// Results must keep input order regardless of completion order.
		for i, got := range results {
			assert.Equal(t, i*2, got)
		}
	})

	t.Run("ErrorHandling", func(t *testing.T) {
		p, err := NewProcessor[int, int](4)
		require.NoError(t, err)

		_, err = p.Process(context.Background(), items, func(ctx context.Context, index int, item int) (int, error) {
			if index == 7 {
				return 0, errors.New("fail")
			}
			return item, nil
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "item 7 failed")
	})

	t.Run("ConcurrentErrorCancels", func(t *testing.T) {
		p, err := NewProcessor[int, string](2)
		require.NoError(t, err)

		_, err = p.ProcessConcurrent(context.Background(), items, func(ctx context.Context, index int, item int) (string, error) {
			if index == 0 {
				return "", errors.New("boom")
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(10 * time.Millisecond):
			}
			return strconv.Itoa(item), nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "item 0 failed")
	})

	t.Run("EmptyItems", func(t *testing.T) {
		p := NewProcessorWithDefaults[int, int]()
		_, err := p.Process(context.Background(), nil, nil)
		assert.Equal(t, ErrEmptyItems, err)

		_, err = p.ProcessConcurrent(context.Background(), nil, nil)
		assert.Equal(t, ErrEmptyItems, err)
	})

	t.Run("NilMapper", func(t *testing.T) {
		p := NewProcessorWithDefaults[int, int]()
		_, err := p.Process(context.Background(), items, nil)
		assert.Equal(t, ErrNilMapper, err)
	})

	t.Run("InvalidConcurrency", func(t *testing.T) {
		_, err := NewProcessor[int, int](0)
		assert.ErrorIs(t, err, ErrInvalidConcurrency)
		_, err = NewProcessor[int, int](200)
		assert.ErrorIs(t, err, ErrInvalidConcurrency)
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		p := NewProcessorWithDefaults[int, int]()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.Process(ctx, items, double)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestProcessor_ProgressCallback(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	var updates int32
	p := NewProcessorWithDefaults[string, string]().
		WithProgressCallback(func(progress *Progress) {
			atomic.AddInt32(&updates, 1)
		})

	results, err := p.Process(context.Background(), items, func(ctx context.Context, index int, item string) (string, error) {
		return item + item, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "bb", "cc", "dd"}, results)
	assert.Equal(t, int32(4), updates)
	assert.GreaterOrEqual(t, NewProcessorWithDefaults[string, string]().Concurrency(), MinConcurrency)
}

func TestProgress(t *testing.T) {
	p := NewProgress(100)

	assert.Equal(t, 0.0, p.PercentComplete())
	assert.False(t, p.IsComplete())

	p.AddProcessed(10)
	assert.Equal(t, 10.0, p.PercentComplete())
	assert.Equal(t, 10, p.ProcessedItems)

	p.AddProcessed(90)
	assert.Equal(t, 100.0, p.PercentComplete())
	assert.True(t, p.IsComplete())
	assert.Greater(t, p.ElapsedTime(), time.Duration(0))

	t.Run("Estimates", func(t *testing.T) {
		p.Reset()
		p.AddProcessed(50)
		assert.Greater(t, p.ItemsPerSecond(), 0.0)
		// Half done, so some remaining time estimate should exist.
		assert.GreaterOrEqual(t, p.EstimatedTimeRemaining(), time.Duration(0))
	})

	t.Run("Snapshot", func(t *testing.T) {
		snap := p.Snapshot()
		assert.Equal(t, p.TotalItems, snap.TotalItems)
		assert.Equal(t, p.ProcessedItems, snap.ProcessedItems)
	})

	t.Run("ZeroTotal", func(t *testing.T) {
		empty := NewProgress(0)
		assert.Equal(t, 0.0, empty.PercentComplete())
		assert.True(t, empty.IsComplete())
	})
}
