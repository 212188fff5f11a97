// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package microtbx_test

import (
	"sync"
	"testing"

	"github.com/feaser/microtbx"
)

func TestObjectPool_BasicGetPut(t *testing.T) {
	const capacity = 8
	counter := 0
	pool := microtbx.NewObjectPool(capacity, func() int {
		counter++
		return counter
	})

	items := make([]int, 0, capacity)
	for i := 0; i < capacity; i++ {
		item, err := pool.Get()
		if err != nil {
			t.Fatalf("Get() #%d failed: %v", i, err)
		}
		items = append(items, item)
	}

	for _, item := range items {
		if err := pool.Put(item); err != nil {
			t.Fatalf("Put(%d) failed: %v", item, err)
		}
	}

	if got := pool.Len(); got != capacity {
		t.Errorf("Len() = %d, want %d", got, capacity)
	}
}

func TestObjectPool_GrowsOnExhaustion(t *testing.T) {
	pool := microtbx.NewObjectPool(1, func() *int {
		v := 0
		return &v
	})

	first, err := pool.Get()
	if err != nil {
		t.Fatalf("first Get() failed: %v", err)
	}
	if first == nil {
		t.Fatalf("first Get() returned nil item")
	}

	// The pool started with capacity 1 and that one item is now out; a
	// second Get must grow the pool by one rather than report exhaustion.
	second, err := pool.Get()
	if err != nil {
		t.Fatalf("second Get() failed: %v, want auto-grow", err)
	}
	if second == first {
		t.Errorf("second Get() returned the same item as the first")
	}
	if got := pool.Cap(); got != 2 {
		t.Errorf("Cap() after auto-grow = %d, want 2", got)
	}
}

func TestObjectPool_Grow(t *testing.T) {
	pool := microtbx.NewObjectPool(2, func() int { return 0 })
	pool.Grow(3)
	if got := pool.Cap(); got != 5 {
		t.Errorf("Cap() after Grow(3) = %d, want 5", got)
	}
	if got := pool.Len(); got != 5 {
		t.Errorf("Len() after Grow(3) with nothing taken = %d, want 5", got)
	}
}

func TestObjectPool_LIFO(t *testing.T) {
	n := 0
	pool := microtbx.NewObjectPool(3, func() int {
		n++
		return n
	})

	a, _ := pool.Get()
	b, _ := pool.Get()
	_ = pool.Put(a)
	_ = pool.Put(b)

	// Put pushes onto the same LIFO free stack Get pops from: the most
	// recently returned item (b) comes back first.
	got, err := pool.Get()
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != b {
		t.Errorf("Get() after Put(a) then Put(b) = %d, want %d (b)", got, b)
	}
}

func TestObjectPool_Concurrent(t *testing.T) {
	const goroutines = 16
	const iterations = 2000

	pool := microtbx.NewObjectPool(goroutines, func() int { return 0 })

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				item, err := pool.Get()
				if err != nil {
					t.Errorf("Get() failed under concurrent load: %v", err)
					return
				}
				if err := pool.Put(item); err != nil {
					t.Errorf("Put() failed under concurrent load: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewObjectPool_PanicZeroCapacity(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewObjectPool(0, ...) did not assert")
		}
	}()
	_ = microtbx.NewObjectPool(0, func() int { return 0 })
}
