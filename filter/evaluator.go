package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator implements Evaluator, switching to chunked concurrent
// evaluation for large inputs
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Filter returns the entries matching f in their original order. The first
// evaluation error aborts the run.
func (e *ConcurrentEvaluator) Filter(ctx context.Context, f CompiledFilter, entries []Entry) ([]Entry, error) {
	if len(entries) == 0 {
		return []Entry{}, nil
	}

	// For small lists, don't bother with concurrency
	if len(entries) < e.batchSize {
		return evaluateChunk(ctx, f, entries)
	}

	return e.evaluateConcurrent(ctx, f, entries)
}

// evaluateConcurrent splits entries into ordered chunks evaluated in parallel
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, f CompiledFilter, entries []Entry) ([]Entry, error) {
	chunkSize := max(len(entries)/e.workerCount, e.batchSize)
	chunks := (len(entries) + chunkSize - 1) / chunkSize
	results := make([][]Entry, chunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(entries))
		g.Go(func() error {
			matches, err := evaluateChunk(ctx, f, entries[start:end])
			if err != nil {
				return err
			}
			results[i] = matches
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	matches := make([]Entry, 0, total)
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches, nil
}

func evaluateChunk(ctx context.Context, f CompiledFilter, chunk []Entry) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches := make([]Entry, 0, len(chunk)/4)
	for _, entry := range chunk {
		ok, err := f.Evaluate(entry)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}
