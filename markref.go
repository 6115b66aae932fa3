package pqueue

import "sync/atomic"

// taggedPtr is the immutable pair a markRef slot swaps atomically: a
// successor pointer and the logical-deletion mark bit for the node that
// owns the slot. Go has no portable way to steal the low bit of a real
// pointer the way the reference algorithm does (no unsafe bit-tagging
// anywhere in the surveyed corpus), so the pointer and its bit are boxed
// together and swapped as one unit through atomic.Pointer — grounded on
// the markableRef/atomicMarkableRef pattern used for the same purpose in
// a lock-free skiplist from the example pack (jakub-galecki's
// lockfree_skiplist). Boxing the pair this way gives the same guarantee
// the paper wants from bit-stealing: a reader never observes a pointer
// update and a mark update as two separate, interleavable writes.
type taggedPtr[K any, V any] struct {
	next   *node[K, V]
	marked bool
}

// markRef is one next[i] slot.
type markRef[K any, V any] struct {
	word atomic.Pointer[taggedPtr[K, V]]
}

func (m *markRef[K, V]) store(next *node[K, V], marked bool) {
	m.word.Store(&taggedPtr[K, V]{next: next, marked: marked})
}

// load returns the current successor pointer and mark bit as a consistent
// pair — the Go-native equivalent of unmark(p)/is_marked(p) on a single
// tagged word.
func (m *markRef[K, V]) load() (next *node[K, V], marked bool) {
	t := m.word.Load()
	if t == nil {
		return nil, false
	}
	return t.next, t.marked
}

func (m *markRef[K, V]) loadNode() *node[K, V] {
	next, _ := m.load()
	return next
}

func (m *markRef[K, V]) isMarked() bool {
	_, marked := m.load()
	return marked
}

// casTagged compares the full (pointer, mark) pair against (expectedNext,
// expectedMarked) and, on match, swaps in (newNext, newMarked). This is the
// acquire-release CAS the tagged-pointer discipline requires on every
// next[i] slot.
func (m *markRef[K, V]) casTagged(expectedNext *node[K, V], expectedMarked bool, newNext *node[K, V], newMarked bool) bool {
	old := m.word.Load()
	if old == nil {
		if expectedNext != nil || expectedMarked {
			return false
		}
		return m.word.CompareAndSwap(nil, &taggedPtr[K, V]{next: newNext, marked: newMarked})
	}
	if old.next != expectedNext || old.marked != expectedMarked {
		return false
	}
	return m.word.CompareAndSwap(old, &taggedPtr[K, V]{next: newNext, marked: newMarked})
}

// fetchOrMark atomically sets the mark bit, leaving the pointer untouched,
// and returns the pointer and mark bit observed immediately before the
// call — the tagged-pointer analogue of an atomic fetch-or with value 1.
// If the bit was already set, the call is a no-op read of the current state.
func (m *markRef[K, V]) fetchOrMark() (prevNext *node[K, V], prevMarked bool) {
	for {
		old := m.word.Load()
		if old == nil {
			if m.word.CompareAndSwap(nil, &taggedPtr[K, V]{next: nil, marked: true}) {
				return nil, false
			}
			continue
		}
		if old.marked {
			return old.next, true
		}
		if m.word.CompareAndSwap(old, &taggedPtr[K, V]{next: old.next, marked: true}) {
			return old.next, false
		}
	}
}
