// Package store holds the client's observable state containers: a current
// value plus a registry of subscribers notified synchronously on every write.
// Only the latest value is visible; there is no buffering for slow observers.
package store

import "sync"

// Store is an observable container for a single value.
type Store[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

// New creates a store holding the given initial value.
func New[T any](initial T) *Store[T] {
	return &Store[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Get returns the current value without subscribing.
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the current value and notifies all subscribers.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Update applies fn to the current value and stores the result.
// fn must treat its argument as immutable and return a fresh value.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	subs := s.snapshot()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(v)
	}
}

// Subscribe registers fn, invokes it immediately with the current value, and
// returns a function that removes the subscription.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	v := s.value
	s.mu.Unlock()

	fn(v)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshot copies the subscriber list so notifications run outside the lock.
// Callers must hold s.mu.
func (s *Store[T]) snapshot() []func(T) {
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}
