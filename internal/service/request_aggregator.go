package service

import (
	"context"
	"sync"
	"time"
)

type FetchResult[T any] struct {
	Value T
	Err   error
}

type FetchFunc[T any] func(ctx context.Context) (T, error)

// RequestAggregator coalesces concurrent cache misses for the same key so the
// provider is called once and every waiter gets the same result.
type RequestAggregator[T any] interface {
	AddRequest(ctx context.Context, key string, fetch FetchFunc[T]) <-chan FetchResult[T]
	Shutdown()
}

type keyQueue[T any] struct {
	channels []chan FetchResult[T]
}

type requestAggregator[T any] struct {
	queues     map[string]*keyQueue[T]
	queueMutex sync.Mutex
	timeout    time.Duration
	inFlight   sync.WaitGroup
}

func NewRequestAggregator[T any](timeout time.Duration) RequestAggregator[T] {
	return &requestAggregator[T]{
		queues:  make(map[string]*keyQueue[T]),
		timeout: timeout,
	}
}

func (a *requestAggregator[T]) AddRequest(ctx context.Context, key string, fetch FetchFunc[T]) <-chan FetchResult[T] {
	// buffered so processQueue never blocks on a waiter that gave up
	responseChan := make(chan FetchResult[T], 1)

	a.queueMutex.Lock()
	queue, exists := a.queues[key]
	if !exists {
		queue = &keyQueue[T]{}
		a.queues[key] = queue
	}
	queue.channels = append(queue.channels, responseChan)
	a.queueMutex.Unlock()

	// first waiter for the key starts the fetch, everybody else just queues up
	if !exists {
		a.inFlight.Add(1)
		go a.processQueue(context.WithoutCancel(ctx), key, fetch)
	}

	return responseChan
}

func (a *requestAggregator[T]) processQueue(ctx context.Context, key string, fetch FetchFunc[T]) {
	defer a.inFlight.Done()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	value, err := fetch(ctx)

	a.queueMutex.Lock()
	queue, exists := a.queues[key]
	delete(a.queues, key)
	a.queueMutex.Unlock()

	if !exists {
		return
	}

	for _, ch := range queue.channels {
		ch <- FetchResult[T]{Value: value, Err: err}
		close(ch)
	}
}

// Shutdown waits for in-flight fetches to hand their results out.
func (a *requestAggregator[T]) Shutdown() {
	a.inFlight.Wait()
}

// await blocks until the aggregated fetch answers or ctx is done.
func await[T any](ctx context.Context, ch <-chan FetchResult[T]) (T, error) {
	select {
	case result := <-ch:
		return result.Value, result.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
