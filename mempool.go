// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package microtbx

import (
	"fmt"
	"sort"
	"sync"
	"unsafe"

	"code.hybscloud.com/iox"

	"github.com/feaser/microtbx/internal"
)

// blockHeaderSize is the size, in bytes, of the hidden header that
// precedes every block's payload. The header stores the block's payload
// size so Release can locate the owning pool from the payload pointer
// alone (spec §3 "Pool block").
//
// The header is padded up to internal.CacheLineSize bytes, so the
// payload starts one full cache line's worth of bytes after the block
// base. Blocks themselves are only pointer-width aligned (Heap.Allocate
// rounds to pointer width), so a block's header can still share a cache
// line with the tail of the previous block's payload.
var blockHeaderSize = alignUp(unsafe.Sizeof(uintptr(0)), uintptr(internal.CacheLineSize))

// blockNode is one entry of a pool's intrusive singly-linked free/used
// list. It never moves once allocated: release/allocate only relink it
// between the two lists (spec §4.5 "node reuse discipline").
type blockNode struct {
	block unsafe.Pointer // points at the block's header, not its payload
	next  *blockNode
}

// blockPayload returns the caller-visible payload pointer for a block
// whose header starts at base.
func blockPayload(base unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(base, blockHeaderSize)
}

// blockBase recovers a block's header address from its payload pointer.
func blockBase(payload unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(payload, -int(blockHeaderSize))
}

func blockSizeOf(base unsafe.Pointer) uintptr {
	return *(*uintptr)(base)
}

func setBlockSize(base unsafe.Pointer, size uintptr) {
	*(*uintptr)(base) = size
}

// Pool is a set of blocks that all have the same blockSize, arranged as
// two intrusive singly-linked stacks: free (available blocks) and used
// (spare node cells pointing at currently allocated blocks). See spec
// §4.5 for why used is a node-cell pool rather than an allocation log.
type Pool struct {
	blockSize uintptr
	free      *blockNode
	used      *blockNode
	capacity  int
}

// PoolRegistry is an ordered set of Pools, strictly ascending by
// blockSize, backed by a single Heap for growth (spec §3 "PoolRegistry").
type PoolRegistry struct {
	_ noCopy

	heap  *Heap
	pools []*Pool // ascending blockSize, no duplicates
}

// NewPoolRegistry creates an empty registry that grows pools from heap.
func NewPoolRegistry(heap *Heap) *PoolRegistry {
	Assert(heap != nil)
	return &PoolRegistry{heap: heap}
}

// poolFor returns the pool with exactly blockSize, or nil.
func (r *PoolRegistry) poolFor(blockSize uintptr) *Pool {
	i := sort.Search(len(r.pools), func(i int) bool { return r.pools[i].blockSize >= blockSize })
	if i < len(r.pools) && r.pools[i].blockSize == blockSize {
		return r.pools[i]
	}
	return nil
}

// insertPool inserts p at the position that keeps r.pools ascending.
func (r *PoolRegistry) insertPool(p *Pool) {
	i := sort.Search(len(r.pools), func(i int) bool { return r.pools[i].blockSize >= p.blockSize })
	r.pools = append(r.pools, nil)
	copy(r.pools[i+1:], r.pools[i:])
	r.pools[i] = p
}

// grow allocates numBlocks fresh blocks of blockSize from the heap and
// pushes them onto pool's free stack. It stops and reports an error as
// soon as the heap is exhausted, leaving every block already created
// usable (spec §4.5 "create").
//
// Each iteration acquires the critical section on its own, around the
// free-stack splice only; r.heap.Allocate claims and releases the same
// critical section internally for the byte-arena bump. Wrapping the
// whole loop in one critical section would nest two
// EnterCriticalSection calls on the same non-reentrant saved-state slot
// (spec §4.3) and deadlock the first time a pool had to grow.
func (r *PoolRegistry) grow(p *Pool, numBlocks int) error {
	for i := 0; i < numBlocks; i++ {
		base := r.heap.Allocate(int(blockHeaderSize + p.blockSize))
		if base == nil {
			return fmt.Errorf("microtbx: heap exhausted growing pool of block size %d: %w", p.blockSize, iox.ErrWouldBlock)
		}
		setBlockSize(base, p.blockSize)

		EnterCriticalSection()
		p.free = &blockNode{block: base, next: p.free}
		p.capacity++
		ExitCriticalSection()
	}
	return nil
}

// Create allocates (or grows) a pool whose blocks are exactly blockSize
// bytes of user payload, pushing numBlocks fresh blocks onto its free
// stack (spec §4.5). It is safe to call Create again with the same
// blockSize to extend an existing pool rather than creating a new one.
func (r *PoolRegistry) Create(numBlocks, blockSize int) error {
	Assert(numBlocks > 0)
	Assert(blockSize > 0)
	if numBlocks <= 0 || blockSize <= 0 {
		return fmt.Errorf("microtbx: numBlocks and blockSize must be > 0")
	}

	EnterCriticalSection()
	p := r.poolFor(uintptr(blockSize))
	if p == nil {
		p = &Pool{blockSize: uintptr(blockSize)}
		r.insertPool(p)
	}
	ExitCriticalSection()

	return r.grow(p, numBlocks)
}

// Allocate scans the registry in ascending blockSize order for the
// first pool with blockSize >= size, pops a free block from it, and
// returns the block's payload pointer. It returns nil only when every
// pool of sufficient size is empty (spec §4.5 "allocate"); this is never
// reported via Assert.
func (r *PoolRegistry) Allocate(size int) unsafe.Pointer {
	Assert(size > 0)
	if size <= 0 {
		return nil
	}

	EnterCriticalSection()
	defer ExitCriticalSection()

	ptr, err := r.tryAllocateLocked(uintptr(size))
	if err != nil {
		return nil
	}
	return ptr
}

func (r *PoolRegistry) tryAllocateLocked(size uintptr) (unsafe.Pointer, error) {
	i := sort.Search(len(r.pools), func(i int) bool { return r.pools[i].blockSize >= size })
	for ; i < len(r.pools); i++ {
		p := r.pools[i]
		if p.free == nil {
			continue
		}
		node := p.free
		p.free = node.next
		node.next = p.used
		p.used = node
		return blockPayload(node.block), nil
	}
	return nil, iox.ErrWouldBlock
}

// Release returns a block previously obtained from Allocate to its
// owning pool. ptr must be a payload pointer Allocate actually returned;
// anything else is a programmer error surfaced through Assert (spec
// §4.5 "release").
func (r *PoolRegistry) Release(ptr unsafe.Pointer) {
	Assert(ptr != nil)
	if ptr == nil {
		return
	}

	EnterCriticalSection()
	defer ExitCriticalSection()

	base := blockBase(ptr)
	size := blockSizeOf(base)
	p := r.poolFor(size)
	Assert(p != nil)
	if p == nil {
		return
	}
	Assert(p.used != nil)
	if p.used == nil {
		return
	}

	node := p.used
	p.used = node.next
	node.block = base
	node.next = p.free
	p.free = node
}

// --- package-level default registry, mirroring the original library's
// global TbxMemPoolCreate/Allocate/Release call surface. ---

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *PoolRegistry
)

// DefaultPoolRegistry returns the package-level pool registry, backed by
// DefaultHeap, created lazily on first use.
func DefaultPoolRegistry() *PoolRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewPoolRegistry(DefaultHeap())
	})
	return defaultRegistry
}

// PoolCreate allocates (or grows) a pool of the given block size on the
// package-level default registry.
func PoolCreate(numBlocks, blockSize int) error {
	return DefaultPoolRegistry().Create(numBlocks, blockSize)
}

// PoolAllocate allocates size bytes from the package-level default
// registry.
func PoolAllocate(size int) unsafe.Pointer {
	return DefaultPoolRegistry().Allocate(size)
}

// PoolRelease releases ptr back to the package-level default registry.
func PoolRelease(ptr unsafe.Pointer) {
	DefaultPoolRegistry().Release(ptr)
}

// BlockSizes returns the registry's pool block sizes in ascending order,
// letting a caller (or a test) confirm the registry-order invariant of
// spec §8.
func (r *PoolRegistry) BlockSizes() []int {
	EnterCriticalSection()
	defer ExitCriticalSection()

	sizes := make([]int, len(r.pools))
	for i, p := range r.pools {
		sizes[i] = int(p.blockSize)
	}
	return sizes
}

// Stats reports the free-block count, used-node count, and total
// capacity of the pool with the given block size. ok is false if no such
// pool exists.
func (r *PoolRegistry) Stats(blockSize int) (free, used, capacity int, ok bool) {
	EnterCriticalSection()
	defer ExitCriticalSection()

	p := r.poolFor(uintptr(blockSize))
	if p == nil {
		return 0, 0, 0, false
	}
	for n := p.free; n != nil; n = n.next {
		free++
	}
	for n := p.used; n != nil; n = n.next {
		used++
	}
	return free, used, p.capacity, true
}
