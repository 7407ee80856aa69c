package async

import (
	"context"
	"fmt"
	"sync"
)

// Handle is an in-flight operation that eventually resolves to a value or an error.
type Handle[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// Go runs fn on its own goroutine and returns a handle for its result.
// A panic inside fn resolves the handle with an error.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Handle[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	h := newHandle[T]()
	go func() {
		var (
			v   T
			err error
		)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				h.resolve(zero, fmt.Errorf("async operation panicked: %v", r))
				return
			}
			h.resolve(v, err)
		}()
		v, err = fn(ctx)
	}()
	return h
}

// Resolved returns a handle that is already settled with v and err.
func Resolved[T any](v T, err error) *Handle[T] {
	h := newHandle[T]()
	h.resolve(v, err)
	return h
}

func newHandle[T any]() *Handle[T] {
	return &Handle[T]{done: make(chan struct{})}
}

func (h *Handle[T]) resolve(v T, err error) {
	h.once.Do(func() {
		h.value = v
		h.err = err
		close(h.done)
	})
}

// Done is closed once the handle resolves.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Await blocks until the handle resolves or ctx is done.
func (h *Handle[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		return h.value, h.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the outcome without blocking; ok is false while pending.
func (h *Handle[T]) Result() (value T, err error, ok bool) {
	select {
	case <-h.done:
		return h.value, h.err, true
	default:
		var zero T
		return zero, nil, false
	}
}
