// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package microtbx

// listNode is one element of a List[T]'s doubly-linked chain. Nodes are
// obtained from an ObjectPool[*listNode[T]] rather than the byte-oriented
// PoolRegistry, because a node holds a T (which may itself hold pointers
// or interfaces) and prev/next pointers: the garbage collector must be
// able to trace it, which rules out carving it from a []byte arena (spec
// §2 "Supplemental module C7").
type listNode[T comparable] struct {
	item T
	prev *listNode[T]
	next *listNode[T]
}

// listNodePoolSize is the number of nodes each List's backing ObjectPool
// starts with. When the pool runs dry, ObjectPool.Get grows it by one
// node at a time.
const listNodePoolSize = 8

// List is a generic doubly-linked list, the Go counterpart of the
// original library's singly-typed linked-list module generalized with Go
// generics (spec §4.6). Every exported method acquires the package-level
// critical section exactly once, so a List's internal links are never
// observed mid-mutation by a concurrent caller.
type List[T comparable] struct {
	_ noCopy

	nodes *ObjectPool[*listNode[T]]
	head  *listNode[T]
	tail  *listNode[T]
	size  int
}

// NewList creates an empty list. Its node storage is drawn from a
// dedicated ObjectPool that starts with listNodePoolSize nodes.
func NewList[T comparable]() *List[T] {
	return &List[T]{
		nodes: NewObjectPool[*listNode[T]](listNodePoolSize, func() *listNode[T] {
			return &listNode[T]{}
		}),
	}
}

// Size returns the number of items currently in the list.
func (l *List[T]) Size() int {
	EnterCriticalSection()
	defer ExitCriticalSection()
	return l.size
}

// newNode acquires a node from the backing pool and stashes item in it.
// Callers must already hold the critical section. The bool result is
// false only when the backing pool could not be grown to satisfy the
// request (spec §4.5 resource exhaustion, never a precondition
// violation, so it is reported here rather than asserted).
func (l *List[T]) newNode(item T) (*listNode[T], bool) {
	n, err := l.nodes.Get()
	if err != nil {
		return nil, false
	}
	n.item = item
	n.prev = nil
	n.next = nil
	return n, true
}

// InsertFront inserts item at the head of the list. It returns false if
// node storage could not be obtained from the backing pool (spec §4.6
// "Returns OK/ERROR").
func (l *List[T]) InsertFront(item T) bool {
	EnterCriticalSection()
	defer ExitCriticalSection()

	n, ok := l.newNode(item)
	if !ok {
		return false
	}
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.size++
	return true
}

// InsertBack inserts item at the tail of the list. It returns false if
// node storage could not be obtained from the backing pool (spec §4.6
// "Returns OK/ERROR").
func (l *List[T]) InsertBack(item T) bool {
	EnterCriticalSection()
	defer ExitCriticalSection()

	n, ok := l.newNode(item)
	if !ok {
		return false
	}
	n.prev = l.tail
	if l.tail != nil {
		l.tail.next = n
	}
	l.tail = n
	if l.head == nil {
		l.head = n
	}
	l.size++
	return true
}

// InsertBefore inserts item immediately before the node currently holding
// before. before must be a value previously returned by GetFirst,
// GetLast, GetNext, or GetPrev on this same list. InsertBefore returns
// false, without modifying the list, if before is not currently present
// — a ref going stale under a concurrent or prior RemoveItem/Clear is a
// benign, recoverable condition (spec §4.6/§7.2), not a precondition
// violation, so it is never asserted.
func (l *List[T]) InsertBefore(before T, item T) bool {
	EnterCriticalSection()
	defer ExitCriticalSection()

	target := l.findLocked(before)
	if target == nil {
		return false
	}
	n, ok := l.newNode(item)
	if !ok {
		return false
	}
	n.prev = target.prev
	n.next = target
	if target.prev != nil {
		target.prev.next = n
	} else {
		l.head = n
	}
	target.prev = n
	l.size++
	return true
}

// InsertAfter inserts item immediately after the node currently holding
// after. after must be a value previously returned by GetFirst, GetLast,
// GetNext, or GetPrev on this same list. InsertAfter returns false,
// without modifying the list, if after is not currently present — the
// same benign "ref is stale" condition InsertBefore reports rather than
// asserts.
func (l *List[T]) InsertAfter(after T, item T) bool {
	EnterCriticalSection()
	defer ExitCriticalSection()

	target := l.findLocked(after)
	if target == nil {
		return false
	}
	n, ok := l.newNode(item)
	if !ok {
		return false
	}
	n.next = target.next
	n.prev = target
	if target.next != nil {
		target.next.prev = n
	} else {
		l.tail = n
	}
	target.next = n
	l.size++
	return true
}

// RemoveItem removes the first node found holding item from the list and
// returns the node's storage to the backing pool. It is a no-op if item
// is not present.
func (l *List[T]) RemoveItem(item T) {
	EnterCriticalSection()
	defer ExitCriticalSection()

	n := l.findLocked(item)
	if n == nil {
		return
	}
	l.unlinkLocked(n)
}

func (l *List[T]) unlinkLocked(n *listNode[T]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	l.size--
	_ = l.nodes.Put(n)
}

// findLocked returns the first node whose item equals item, if any.
// Callers must already hold the critical section.
//
// T is constrained to comparable so this is a plain == — a pointer type
// compares by identity, the Go analogue of the original library's opaque
// void* node references, and a value type compares by value. Leaving T
// unconstrained would let a non-comparable T (a struct embedding a
// slice, say) panic the first time this ran instead of failing to
// compile.
func (l *List[T]) findLocked(item T) *listNode[T] {
	for n := l.head; n != nil; n = n.next {
		if n.item == item {
			return n
		}
	}
	return nil
}

// GetFirst returns the item at the head of the list and true, or the zero
// value and false if the list is empty.
func (l *List[T]) GetFirst() (item T, ok bool) {
	EnterCriticalSection()
	defer ExitCriticalSection()
	if l.head == nil {
		return item, false
	}
	return l.head.item, true
}

// GetLast returns the item at the tail of the list and true, or the zero
// value and false if the list is empty.
func (l *List[T]) GetLast() (item T, ok bool) {
	EnterCriticalSection()
	defer ExitCriticalSection()
	if l.tail == nil {
		return item, false
	}
	return l.tail.item, true
}

// GetNext returns the item immediately after current, and true, or the
// zero value and false if current is the last item (or not found).
func (l *List[T]) GetNext(current T) (item T, ok bool) {
	EnterCriticalSection()
	defer ExitCriticalSection()
	n := l.findLocked(current)
	if n == nil || n.next == nil {
		return item, false
	}
	return n.next.item, true
}

// GetPrev returns the item immediately before current, and true, or the
// zero value and false if current is the first item (or not found).
func (l *List[T]) GetPrev(current T) (item T, ok bool) {
	EnterCriticalSection()
	defer ExitCriticalSection()
	n := l.findLocked(current)
	if n == nil || n.prev == nil {
		return item, false
	}
	return n.prev.item, true
}

// Swap exchanges the positions of items a and b in the list. It is a
// no-op if either item is not present.
func (l *List[T]) Swap(a, b T) {
	EnterCriticalSection()
	defer ExitCriticalSection()

	na := l.findLocked(a)
	nb := l.findLocked(b)
	if na == nil || nb == nil || na == nb {
		return
	}
	na.item, nb.item = nb.item, na.item
}

// Sort reorders the list's items in place according to less, using a
// stable insertion sort over the node chain (spec §4.6 "sort"; insertion
// sort keeps the operation O(1) in extra node allocations, consistent
// with this list never needing more storage than its current size).
func (l *List[T]) Sort(less func(a, b T) bool) {
	Assert(less != nil)
	EnterCriticalSection()
	defer ExitCriticalSection()

	if l.head == nil || l.head.next == nil {
		return
	}

	rest := l.head.next
	sorted := l.head
	sorted.prev = nil
	sorted.next = nil
	for n := rest; n != nil; {
		next := n.next
		n.prev, n.next = nil, nil

		switch {
		case less(n.item, sorted.item):
			n.next = sorted
			sorted.prev = n
			sorted = n
		default:
			cur := sorted
			for cur.next != nil && !less(n.item, cur.next.item) {
				cur = cur.next
			}
			n.next = cur.next
			n.prev = cur
			if cur.next != nil {
				cur.next.prev = n
			}
			cur.next = n
		}
		n = next
	}

	l.head = sorted
	for n := sorted; n != nil; n = n.next {
		l.tail = n
	}
}

// Clear removes every item from the list, returning all of their node
// storage to the backing pool.
func (l *List[T]) Clear() {
	EnterCriticalSection()
	defer ExitCriticalSection()

	for n := l.head; n != nil; {
		next := n.next
		_ = l.nodes.Put(n)
		n = next
	}
	l.head = nil
	l.tail = nil
	l.size = 0
}

// Delete clears the list, returning all of its node storage to the
// list's own ObjectPool; the pool itself is not released and is
// reclaimed by the garbage collector together with the List. The list
// must not be used again after Delete.
func (l *List[T]) Delete() {
	l.Clear()
}
