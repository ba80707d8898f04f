// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package buffer implements a bounded multi-producer single-consumer FIFO
// queue. When full, Put fails closed instead of blocking or resizing: the
// producer hot path must never wait on the consumer.
package buffer

import (
	"sync"

	"go.uber.org/atomic"
)

// Queue is a fixed-capacity FIFO ring. Put may be called from any number of
// goroutines; Drain is expected to be called by a single consumer. The
// critical section covers only the index bookkeeping, never the element
// construction or the consumer's send path.
type Queue[T any] struct {
	mu      sync.Mutex
	ring    []T
	head    int
	count   int
	dropped atomic.Int64
}

// New creates a queue with the given fixed capacity. Capacity must be
// positive; it never changes afterwards.
func New[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		panic("buffer: capacity must be positive")
	}
	return &Queue[T]{ring: make([]T, capacity)}
}

// Put appends v to the queue. It returns false, and counts a drop, when the
// queue is at capacity.
func (q *Queue[T]) Put(v T) bool {
	q.mu.Lock()
	if q.count == len(q.ring) {
		q.mu.Unlock()
		q.dropped.Inc()
		return false
	}
	q.ring[(q.head+q.count)%len(q.ring)] = v
	q.count++
	q.mu.Unlock()
	return true
}

// Drain atomically removes and returns up to max elements in FIFO order.
// It never blocks: an empty queue yields nil.
func (q *Queue[T]) Drain(max int) []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := q.count
	if max > 0 && n > max {
		n = max
	}
	if n == 0 {
		return nil
	}
	out := make([]T, n)
	var zero T
	for i := 0; i < n; i++ {
		out[i] = q.ring[q.head]
		q.ring[q.head] = zero
		q.head = (q.head + 1) % len(q.ring)
	}
	q.count -= n
	return out
}

// Len returns the number of buffered elements.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the fixed capacity.
func (q *Queue[T]) Cap() int {
	return len(q.ring)
}

// Full reports whether the queue is at capacity.
func (q *Queue[T]) Full() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count == len(q.ring)
}

// Dropped returns the total number of elements rejected by Put.
func (q *Queue[T]) Dropped() int64 {
	return q.dropped.Load()
}
