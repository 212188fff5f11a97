// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package microtbx is a Go port of the MicroTBX core: a bump heap, a
// best-fit pool allocator layered on it, and a pool-backed doubly-linked
// list, plus the critical-section and assertion substrate that the three
// of them share.
//
// The package targets the same two deployment shapes as the original C
// library:
//
//   - a single-goroutine, single-process "bare metal" style program that
//     never wants an allocation to trigger a GC pause or fragment a heap,
//     and
//   - a hosted program with multiple goroutines sharing one heap, one
//     pool registry, and any number of lists.
//
// # Critical section
//
// Heap and PoolRegistry acquire the process-wide critical section around
// each of their mutations:
//
//	microtbx.EnterCriticalSection()
//	defer microtbx.ExitCriticalSection()
//
// The underlying implementation is selected at compile time: the default
// build simulates interrupt masking with a host mutex; the
// microtbx_multicore build tag swaps in a spin-lock claim, modeled after
// the original library's RP2040 port. Neither variant has a re-entrance
// guard: a goroutine that enters the critical section again before
// exiting it deadlocks.
//
// Because the critical section's saved-state slot is a single,
// non-reentrant value, no caller ever holds it across a call that itself
// acquires it — PoolRegistry.Create takes it once to look up or register
// the pool, then, for each block, once inside Heap.Allocate and once to
// push the block onto the pool's free stack, never two at once. List and ObjectPool guard their own node
// storage with a private lock instead of this shared one for the same
// reason.
//
// # Heap
//
// Heap is a one-shot bump allocator over a fixed-size byte arena. It
// never frees; the pool layer below is what gives the library dynamic
// behavior without fragmentation:
//
//	h := microtbx.NewHeap(1024)
//	p := h.Allocate(37) // returns a pointer-width aligned block
//	free := h.FreeBytes()
//
// # Memory pool
//
// PoolRegistry holds an ascending-by-block-size set of fixed-block pools,
// all backed by a Heap, and serves best-fit allocation in bounded time:
//
//	reg := microtbx.NewPoolRegistry(h)
//	reg.Create(10, 8)
//	reg.Create(10, 16)
//	ptr := reg.Allocate(9) // drawn from the 16-byte pool
//	reg.Release(ptr)
//
// Package-level convenience functions (PoolCreate, PoolAllocate,
// PoolRelease) operate on a package-level default registry backed by a
// package-level default heap, mirroring the original library's global
// call surface.
//
// # List
//
// List is a generic doubly-linked list whose nodes are drawn from a
// GC-safe ObjectPool rather than from the byte-oriented Heap/PoolRegistry
// arena — see DESIGN.md for why. Every positional operation of the
// original library is available: InsertFront, InsertBack, InsertBefore,
// InsertAfter, RemoveItem, GetFirst, GetLast, GetNext, GetPrev, Swap, and
// a comparator-driven Sort.
//
//	l := microtbx.NewList[*Item]()
//	l.InsertFront(itemA)
//	l.Sort(func(a, b *Item) bool { return a.ID < b.ID })
//
// # Assertions
//
// Assert checks a boolean invariant and, on failure, invokes the
// installed AssertionHandler (default: print file/line to stderr and
// block forever). Assertions guard programmer errors only — resource
// exhaustion and benign lookup misses are always reported through return
// values, never through Assert.
//
// # Dependencies
//
// microtbx depends on:
//   - iox: the ErrWouldBlock sentinel used internally by the pool
//     registry's best-fit scan
//   - spin: spinlock and spin-wait primitives backing the
//     microtbx_multicore Port variant
package microtbx
