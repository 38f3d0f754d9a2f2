package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Worker pool bounds.
const (
	// MinConcurrency is the minimum allowed worker count.
	MinConcurrency = 1

	// MaxConcurrency is the maximum allowed worker count.
	MaxConcurrency = 64
)

// Common processing errors.
var (
	ErrInvalidConcurrency = errors.New("concurrency must be between 1 and 64")
	ErrNilMapper          = errors.New("mapper callback cannot be nil")
	ErrEmptyItems         = errors.New("items slice cannot be empty")
)

// Mapper transforms one input item into its result. It receives the 0-based
// position of the item in the original slice alongside the item itself.
type Mapper[In, Out any] func(ctx context.Context, index int, item In) (Out, error)

// ProgressCallback is an optional callback invoked after each item completes.
// It receives progress information for UI updates or logging.
type ProgressCallback func(progress *Progress)

// Processor maps a slice of inputs to a slice of outputs, item by item.
// Results always keep input order regardless of completion order.
type Processor[In, Out any] struct {
	// concurrency is the maximum number of in-flight items.
	concurrency int

	// onProgress is an optional callback for progress updates.
	onProgress ProgressCallback
}

// NewProcessor creates a processor with the given worker count.
func NewProcessor[In, Out any](concurrency int) (*Processor[In, Out], error) {
	if concurrency < MinConcurrency || concurrency > MaxConcurrency {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, concurrency)
	}

	return &Processor[In, Out]{
		concurrency: concurrency,
	}, nil
}

// NewProcessorWithDefaults creates a processor sized to the host CPU count.
func NewProcessorWithDefaults[In, Out any]() *Processor[In, Out] {
	concurrency := runtime.NumCPU()
	if concurrency > MaxConcurrency {
		concurrency = MaxConcurrency
	}

	return &Processor[In, Out]{
		concurrency: concurrency,
	}
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[In, Out]) WithProgressCallback(callback ProgressCallback) *Processor[In, Out] {
	p.onProgress = callback
	return p
}

// Process maps items sequentially and stops on the first error.
func (p *Processor[In, Out]) Process(ctx context.Context, items []In, mapper Mapper[In, Out]) ([]Out, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	if mapper == nil {
		return nil, ErrNilMapper
	}

	progress := NewProgress(len(items))
	results := make([]Out, len(items))

	for i, item := range items {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := mapper(ctx, i, item)
		if err != nil {
			return nil, fmt.Errorf("item %d failed: %w", i, err)
		}
		results[i] = out

		progress.AddProcessed(1)
		if p.onProgress != nil {
			p.onProgress(progress)
		}
	}

	return results, nil
}

// ProcessConcurrent maps items with at most the configured number of workers.
// The first error cancels the remaining work and is returned; completed
// results are discarded in that case.
func (p *Processor[In, Out]) ProcessConcurrent(ctx context.Context, items []In, mapper Mapper[In, Out]) ([]Out, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	if mapper == nil {
		return nil, ErrNilMapper
	}

	progress := NewProgress(len(items))
	results := make([]Out, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, item := range items {
		g.Go(func() error {
			out, err := mapper(gctx, i, item)
			if err != nil {
				return fmt.Errorf("item %d failed: %w", i, err)
			}

			// Each goroutine owns exactly one slot, so no lock is needed.
			results[i] = out

			progress.AddProcessed(1)
			if p.onProgress != nil {
				p.onProgress(progress)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Concurrency returns the configured worker count.
func (p *Processor[In, Out]) Concurrency() int {
	return p.concurrency
}
