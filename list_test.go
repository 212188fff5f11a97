// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package microtbx_test

import (
	"testing"

	"github.com/feaser/microtbx"
)

func collect[T comparable](l *microtbx.List[T]) []T {
	var out []T
	item, ok := l.GetFirst()
	for ok {
		out = append(out, item)
		item, ok = l.GetNext(item)
	}
	return out
}

func TestList_InsertFrontBack(t *testing.T) {
	l := microtbx.NewList[int]()
	if !l.InsertBack(2) {
		t.Fatal("InsertBack(2) = false, want true")
	}
	if !l.InsertBack(3) {
		t.Fatal("InsertBack(3) = false, want true")
	}
	if !l.InsertFront(1) {
		t.Fatal("InsertFront(1) = false, want true")
	}

	got := collect(l)
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("collect() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collect()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if got := l.Size(); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}
}

func TestList_GetFirstLastEmpty(t *testing.T) {
	l := microtbx.NewList[string]()
	if _, ok := l.GetFirst(); ok {
		t.Error("GetFirst() on empty list reported ok")
	}
	if _, ok := l.GetLast(); ok {
		t.Error("GetLast() on empty list reported ok")
	}
	if got := l.Size(); got != 0 {
		t.Errorf("Size() on empty list = %d, want 0", got)
	}
}

func TestList_InsertBeforeAfter(t *testing.T) {
	l := microtbx.NewList[int]()
	l.InsertBack(1)
	l.InsertBack(3)

	if !l.InsertAfter(1, 2) {
		t.Fatal("InsertAfter(1, 2) = false, want true")
	}
	if !l.InsertBefore(3, 25) {
		t.Fatal("InsertBefore(3, 25) = false, want true")
	}

	got := collect(l)
	want := []int{1, 2, 25, 3}
	if len(got) != len(want) {
		t.Fatalf("collect() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collect()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestList_InsertBeforeAfter_StaleRefReturnsFalse(t *testing.T) {
	l := microtbx.NewList[int]()
	l.InsertBack(1)
	l.InsertBack(2)
	l.RemoveItem(2)

	// 2 is no longer in the list: both calls must report false and leave
	// the list untouched, rather than hang on the assertion handler.
	if l.InsertBefore(2, 99) {
		t.Error("InsertBefore(2, 99) = true, want false (2 is not in the list)")
	}
	if l.InsertAfter(2, 99) {
		t.Error("InsertAfter(2, 99) = true, want false (2 is not in the list)")
	}

	got := collect(l)
	want := []int{1}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("collect() after failed InsertBefore/InsertAfter = %v, want %v (unchanged)", got, want)
	}
	if got := l.Size(); got != 1 {
		t.Errorf("Size() after failed InsertBefore/InsertAfter = %d, want 1 (unchanged)", got)
	}
}

func TestList_RemoveItem(t *testing.T) {
	l := microtbx.NewList[int]()
	l.InsertBack(1)
	l.InsertBack(2)
	l.InsertBack(3)

	l.RemoveItem(2)

	got := collect(l)
	want := []int{1, 3}
	if len(got) != len(want) {
		t.Fatalf("collect() after RemoveItem(2) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collect()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if got := l.Size(); got != 2 {
		t.Errorf("Size() after RemoveItem = %d, want 2", got)
	}

	first, _ := l.GetFirst()
	last, _ := l.GetLast()
	if first != 1 || last != 3 {
		t.Errorf("GetFirst()/GetLast() = %d/%d, want 1/3", first, last)
	}
}

func TestList_RemoveHeadAndTail(t *testing.T) {
	l := microtbx.NewList[int]()
	l.InsertBack(1)
	l.InsertBack(2)
	l.InsertBack(3)

	l.RemoveItem(1)
	l.RemoveItem(3)

	got := collect(l)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("collect() after removing head and tail = %v, want [2]", got)
	}

	first, ok := l.GetFirst()
	if !ok || first != 2 {
		t.Errorf("GetFirst() after removing head and tail = %d, %v, want 2, true", first, ok)
	}
	last, ok := l.GetLast()
	if !ok || last != 2 {
		t.Errorf("GetLast() after removing head and tail = %d, %v, want 2, true", last, ok)
	}
}

func TestList_SwapItems(t *testing.T) {
	l := microtbx.NewList[int]()
	l.InsertBack(1)
	l.InsertBack(2)
	l.InsertBack(3)

	l.Swap(1, 3)

	got := collect(l)
	want := []int{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collect()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestList_Sort(t *testing.T) {
	l := microtbx.NewList[int]()
	for _, v := range []int{5, 3, 4, 1, 2} {
		l.InsertBack(v)
	}

	l.Sort(func(a, b int) bool { return a < b })

	got := collect(l)
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("collect() after Sort = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collect()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	last, ok := l.GetLast()
	if !ok || last != 5 {
		t.Errorf("GetLast() after Sort = %d, %v, want 5, true", last, ok)
	}
}

func TestList_SortSingleAndEmpty(t *testing.T) {
	l := microtbx.NewList[int]()
	l.Sort(func(a, b int) bool { return a < b }) // must not panic on empty

	l.InsertBack(42)
	l.Sort(func(a, b int) bool { return a < b })
	if got := collect(l); len(got) != 1 || got[0] != 42 {
		t.Errorf("collect() after sorting single-item list = %v, want [42]", got)
	}
}

func TestList_Clear(t *testing.T) {
	l := microtbx.NewList[int]()
	l.InsertBack(1)
	l.InsertBack(2)
	l.Clear()

	if got := l.Size(); got != 0 {
		t.Errorf("Size() after Clear() = %d, want 0", got)
	}
	if _, ok := l.GetFirst(); ok {
		t.Error("GetFirst() after Clear() reported ok")
	}

	// The list must remain usable after Clear.
	l.InsertBack(9)
	if got := collect(l); len(got) != 1 || got[0] != 9 {
		t.Errorf("collect() after Clear() then InsertBack(9) = %v, want [9]", got)
	}
}

func TestList_ManyItemsPreservesOrderAndNodeReuse(t *testing.T) {
	l := microtbx.NewList[int]()
	const n = 100
	for i := 0; i < n; i++ {
		l.InsertBack(i)
	}
	// Remove every other item, then add new ones, exercising node reuse
	// through the backing ObjectPool.
	for i := 0; i < n; i += 2 {
		l.RemoveItem(i)
	}
	for i := n; i < n+n/2; i++ {
		l.InsertBack(i)
	}

	if got, want := l.Size(), n/2+n/2; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}

	got := collect(l)
	for i := 1; i < n; i += 2 {
		found := false
		for _, v := range got {
			if v == i {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("odd item %d missing from list after removals", i)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Errorf("collect() = %v, not in insertion order", got)
			break
		}
	}
}
