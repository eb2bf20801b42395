package pool

import (
	"context"
	"sync"
)

// WorkerFunc processes one item and may return an error.
type WorkerFunc[T any] func(ctx context.Context, item T) error

// Run fans a slice of items out over numWorkers goroutines and waits for all
// of them. Cancelling the context stops feeding new items; items already
// picked up run to completion. The returned slice holds every error the
// workers produced, in no particular order.
func Run[T any](ctx context.Context, items []T, numWorkers int, workerFunc WorkerFunc[T]) []error {
	if numWorkers < 1 {
		numWorkers = 1
	}

	tasks := make(chan T, numWorkers)
	errs := make(chan error, len(items))

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for item := range tasks {
				if ctx.Err() != nil {
					return
				}
				if err := workerFunc(ctx, item); err != nil {
					errs <- err
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case tasks <- item:
		case <-ctx.Done():
			break feed
		}
	}
	close(tasks)

	wg.Wait()
	close(errs)

	var allErrors []error
	for err := range errs {
		allErrors = append(allErrors, err)
	}
	return allErrors
}
