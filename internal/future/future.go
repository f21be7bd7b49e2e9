// Package future provides a cancelable asynchronous result with detachable
// listeners.
//
// Listeners run on whichever goroutine completes the future (or on the
// caller of AddListener when the future is already complete). Callers that
// own single-threaded state must marshal from inside the listener.
package future

import (
	"context"
	"errors"
	"sync"
)

// ErrCanceled is the failure delivered when a future is canceled before it completes.
var ErrCanceled = errors.New("future canceled")

// Listener receives exactly one of the two outcomes.
type Listener[T any] struct {
	OnSuccess func(T)
	OnFailure func(error)
}

// ListenerID identifies a registered listener. The zero value is never issued.
type ListenerID uint64

// Future is a single-assignment result.
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	completed bool
	value     T
	err       error
	listeners map[ListenerID]Listener[T]
	order     []ListenerID
	nextID    ListenerID
	cancel    context.CancelFunc
}

// New returns an incomplete future that is completed with Complete.
func New[T any]() *Future[T] {
	return &Future[T]{
		done:      make(chan struct{}),
		listeners: make(map[ListenerID]Listener[T]),
	}
}

// Go runs fn on its own goroutine and completes the future with its result.
// Cancel cancels the context passed to fn.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	ctx, cancel := context.WithCancel(ctx)
	f := New[T]()
	f.cancel = cancel
	go func() {
		defer cancel()
		v, err := fn(ctx)
		f.Complete(v, err)
	}()
	return f
}

// Complete settles the future. Only the first call has any effect; it
// reports whether this call settled it.
func (f *Future[T]) Complete(v T, err error) bool {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return false
	}
	f.completed = true
	f.value, f.err = v, err
	close(f.done)
	ids := append([]ListenerID(nil), f.order...)
	f.order = nil
	f.mu.Unlock()

	for _, id := range ids {
		f.mu.Lock()
		l, ok := f.listeners[id]
		delete(f.listeners, id)
		f.mu.Unlock()
		if ok {
			deliver(l, v, err)
		}
	}
	return true
}

// Cancel stops the underlying work (for futures from Go) and fails the
// future with ErrCanceled if it has not completed yet.
func (f *Future[T]) Cancel() {
	if f.cancel != nil {
		f.cancel()
	}
	var zero T
	f.Complete(zero, ErrCanceled)
}

// AddListener registers l. If the future is already complete, l is invoked
// before AddListener returns.
func (f *Future[T]) AddListener(l Listener[T]) ListenerID {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	if f.completed {
		v, err := f.value, f.err
		f.mu.Unlock()
		deliver(l, v, err)
		return id
	}
	f.listeners[id] = l
	f.order = append(f.order, id)
	f.mu.Unlock()
	return id
}

// RemoveListener detaches a listener. A listener that has not started
// running by the time RemoveListener returns will never run.
func (f *Future[T]) RemoveListener(id ListenerID) {
	f.mu.Lock()
	delete(f.listeners, id)
	f.mu.Unlock()
}

// Done is closed once the future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future completes or ctx ends.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func deliver[T any](l Listener[T], v T, err error) {
	if err != nil {
		if l.OnFailure != nil {
			l.OnFailure(err)
		}
		return
	}
	if l.OnSuccess != nil {
		l.OnSuccess(v)
	}
}
