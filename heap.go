// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package microtbx

import (
	"sync"
	"unsafe"
)

// pointerWidth is the alignment every Heap allocation is rounded up to,
// matching the original library's "align to sizeof(void *)" rule so
// returned memory works for any pointer-typed access on the target.
const pointerWidth = unsafe.Sizeof(uintptr(0))

// Heap is a one-shot bump allocator over a fixed-size byte arena. It
// never frees memory; the PoolRegistry layered on top is what gives this
// library dynamic behavior without fragmentation (spec §4.4).
//
// Heap holds the arena slice alive for the lifetime of the process: every
// pointer ever returned by Allocate remains valid as long as the Heap
// itself is reachable.
type Heap struct {
	_ noCopy

	arena []byte
	used  uintptr
}

// NewHeap creates a Heap with the given byte capacity. size must be
// greater than zero.
func NewHeap(size int) *Heap {
	Assert(size > 0)
	return &Heap{arena: make([]byte, size)}
}

// Allocate reserves size bytes from the heap, rounded up to pointer-width
// alignment, and returns a pointer to the start of the reserved region.
// It returns nil when the heap does not have enough remaining capacity;
// this is the only failure mode (spec §4.4) and is never reported via
// Assert.
func (h *Heap) Allocate(size int) unsafe.Pointer {
	Assert(size > 0)
	if size <= 0 {
		return nil
	}
	aligned := alignUp(uintptr(size), pointerWidth)

	EnterCriticalSection()
	defer ExitCriticalSection()

	if h.used+aligned > uintptr(len(h.arena)) {
		return nil
	}
	base := unsafe.Pointer(unsafe.SliceData(h.arena))
	ptr := unsafe.Add(base, h.used)
	h.used += aligned
	return ptr
}

// FreeBytes returns the number of bytes still available on the heap.
func (h *Heap) FreeBytes() int {
	EnterCriticalSection()
	defer ExitCriticalSection()
	return len(h.arena) - int(h.used)
}

// Size returns the heap's total byte capacity.
func (h *Heap) Size() int {
	return len(h.arena)
}

// alignUp rounds size up to the next multiple of align, where align is a
// power of two.
func alignUp(size, align uintptr) uintptr {
	return (size + align - 1) &^ (align - 1)
}

// HeapSize is the byte capacity used to create DefaultHeap on first use.
// Set it with SetHeapSize before any package-level pool operation runs; the original library's equivalent is the compile-time HEAP_SIZE
// constant.
var HeapSize = 64 * 1024

var (
	defaultHeapOnce sync.Once
	defaultHeap     *Heap
)

// DefaultHeap returns the package-level heap backing the package-level
// PoolRegistry (PoolCreate/PoolAllocate/PoolRelease). List does not use
// it. It is created lazily, sized by HeapSize, on first use.
func DefaultHeap() *Heap {
	defaultHeapOnce.Do(func() {
		defaultHeap = NewHeap(HeapSize)
	})
	return defaultHeap
}

// SetHeapSize configures the byte capacity DefaultHeap will use. It must
// be called before DefaultHeap is first used (directly, or indirectly via
// PoolCreate/PoolAllocate/PoolRelease); calling it afterward is a
// precondition violation, since the original HEAP_SIZE macro is fixed at
// compile time and this port's dynamic analogue only makes sense before
// the arena has been carved.
func SetHeapSize(size int) {
	Assert(size > 0)
	Assert(defaultHeap == nil)
	HeapSize = size
}
