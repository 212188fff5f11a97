// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package microtbx

import (
	"fmt"
	"sync"
)

// Pool is a generic object pool interface. It is the teacher library's
// own Pool[T] contract (code.hybscloud.com/iobuf's pool.go), kept as the
// shape every object pool in this package implements.
type Pool[T any] interface {
	// Put returns the item to the pool.
	Put(item T) error
	// Get acquires an item from the pool.
	Get() (item T, err error)
}

// ObjectPool is a GC-safe free/used object pool for Go values that may
// themselves contain pointers (list nodes, list handles). Unlike
// PoolRegistry, which carves fixed-size blocks out of a raw byte arena,
// ObjectPool holds its free and used items as ordinary Go-allocated
// values, so the garbage collector can still see and trace any pointers
// T embeds — see DESIGN.md's "generic list nodes vs. byte-block pool"
// resolution.
//
// ObjectPool guards its free stack with its own mutex rather than the
// package-wide critical section: List keeps a node's pool acquisition
// nested inside its own critical-section-guarded link update, and the
// critical section's single saved-state slot is not reentrant (spec
// §4.3). A private lock here, instead of the shared one, is what makes
// that nesting safe.
//
// ObjectPool otherwise mirrors PoolRegistry's discipline exactly: a LIFO
// free stack, growth-by-extend via newFunc, and conserved
// |free|+|used| == capacity.
type ObjectPool[T any] struct {
	_ noCopy

	mu       sync.Mutex
	newFunc  func() T
	free     []T
	capacity int
}

// NewObjectPool creates an ObjectPool whose items are produced by
// newFunc, pre-filled with capacity items.
func NewObjectPool[T any](capacity int, newFunc func() T) *ObjectPool[T] {
	Assert(capacity > 0)
	Assert(newFunc != nil)
	p := &ObjectPool[T]{newFunc: newFunc}
	p.growLocked(capacity)
	return p
}

// Grow extends the pool by n more freshly constructed items.
func (p *ObjectPool[T]) Grow(n int) {
	Assert(n > 0)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.growLocked(n)
}

func (p *ObjectPool[T]) growLocked(n int) {
	for i := 0; i < n; i++ {
		p.free = append(p.free, p.newFunc())
	}
	p.capacity += n
}

// Get pops one item from the free stack, growing the pool by one and
// retrying exactly once if it was empty (spec §4.6 "node-pool
// exhaustion" retry-once rule). It returns iox-style ErrExhausted if the
// pool is still empty after the retry.
func (p *ObjectPool[T]) Get() (item T, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) == 0 {
		p.growLocked(1)
	}
	if len(p.free) == 0 {
		return item, ErrExhausted
	}
	last := len(p.free) - 1
	item = p.free[last]
	p.free = p.free[:last]
	return item, nil
}

// Put pushes item back onto the free stack.
func (p *ObjectPool[T]) Put(item T) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, item)
	return nil
}

// Len returns the number of items currently on the free stack.
func (p *ObjectPool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Cap returns the pool's total capacity (free + in-use items).
func (p *ObjectPool[T]) Cap() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capacity
}

// ErrExhausted is returned by ObjectPool.Get when the pool could not be
// grown to satisfy the request (backing allocator exhaustion).
var ErrExhausted = fmt.Errorf("microtbx: pool exhausted")

var _ Pool[int] = (*ObjectPool[int])(nil)
