package resolver

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runBounded fans items out over at most numThreads concurrent goroutines
// and returns their results in the same order as items, regardless of
// completion order (§5: "results are collected in submission order (not
// completion order)"). A numThreads <= 0 means unbounded.
func runBounded[T any, R any](ctx context.Context, numThreads int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}
	if numThreads <= 0 {
		numThreads = len(items)
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, numThreads)

	for i, item := range items {
		i, item := i, item
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			return nil, g.Wait()
		}
		g.Go(func() error {
			defer func() { <-sem }()
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// chunk splits items into slices of at most size, preserving order. A
// non-positive size yields a single chunk.
func chunk[T any](items []T, size int) [][]T {
	if size <= 0 || size >= len(items) {
		if len(items) == 0 {
			return nil
		}
		return [][]T{items}
	}
	var chunks [][]T
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}
