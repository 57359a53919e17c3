// Package observable provides a latest-value holder that fans every update out
// to any number of subscribers, in publication order.
//
// A new subscriber first receives the current value, then each later value.
// Delivery never blocks the publisher: every subscriber owns an unbounded
// queue drained by its own goroutine, so a slow reader delays only itself.
package observable

import (
	"context"
	"sync"
)

// Value holds the latest value of type T
type Value[T any] struct {
	mu      sync.Mutex
	current T
	subs    map[*subscriber[T]]struct{}
}

type subscriber[T any] struct {
	mu      sync.Mutex
	pending []T
	signal  chan struct{}
	out     chan T
}

// New creates a Value holding initial
func New[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[*subscriber[T]]struct{}),
	}
}

// Load returns the latest value
func (v *Value[T]) Load() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Store replaces the current value and queues it for every subscriber
func (v *Value[T]) Store(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = value
	for sub := range v.subs {
		sub.push(value)
	}
}

// Subscribe returns a channel that yields the current value followed by every
// later value. The channel is closed once ctx is done.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	sub := &subscriber[T]{
		signal: make(chan struct{}, 1),
		out:    make(chan T),
	}

	v.mu.Lock()
	sub.push(v.current)
	v.subs[sub] = struct{}{}
	v.mu.Unlock()

	go func() {
		defer close(sub.out)
		defer v.unsubscribe(sub)
		sub.run(ctx)
	}()

	return sub.out
}

// Subscribers returns the number of live subscriptions
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

func (v *Value[T]) unsubscribe(sub *subscriber[T]) {
	v.mu.Lock()
	delete(v.subs, sub)
	v.mu.Unlock()
}

func (s *subscriber[T]) push(value T) {
	s.mu.Lock()
	s.pending = append(s.pending, value)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *subscriber[T]) pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if len(s.pending) == 0 {
		return zero, false
	}
	value := s.pending[0]
	s.pending[0] = zero
	s.pending = s.pending[1:]
	return value, true
}

func (s *subscriber[T]) run(ctx context.Context) {
	for {
		for {
			value, ok := s.pop()
			if !ok {
				break
			}
			select {
			case s.out <- value:
			case <-ctx.Done():
				return
			}
		}

		select {
		case <-s.signal:
		case <-ctx.Done():
			return
		}
	}
}
