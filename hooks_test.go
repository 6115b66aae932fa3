package pqueue

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeleteMinRacesConcurrentMarkAttempt forces two DeleteMin calls to
// both reach the point of trying to mark the same node, using
// deleteMinMarkHook to pause the first until the second has also arrived.
// Exactly one of them must win the mark and report ok=true for that key;
// the other must move past it without claiming a duplicate result.
func TestDeleteMinRacesConcurrentMarkAttempt(t *testing.T) {
	q := New[int, int](8, lessInt)
	q.Insert(1, 1)
	q.Insert(2, 2)

	arrived := make(chan struct{})
	resume := make(chan struct{})
	var paused atomic.Bool

	deleteMinMarkHook = func(candidate any) {
		if paused.CompareAndSwap(false, true) {
			close(arrived)
			<-resume
		}
	}
	defer func() { deleteMinMarkHook = nil }()

	var wg sync.WaitGroup
	var k1, k2 int
	var ok1, ok2 bool

	wg.Add(1)
	go func() {
		defer wg.Done()
		k1, _, ok1 = q.DeleteMin()
	}()

	<-arrived
	k2, _, ok2 = q.DeleteMin()
	close(resume)
	wg.Wait()

	require.True(t, ok1)
	require.True(t, ok2)
	assert.NotEqual(t, k1, k2, "the two racing DeleteMin calls must not return the same key")
	assert.ElementsMatch(t, []int{1, 2}, []int{k1, k2})
}

// TestInsertLevelCASHookObservesEveryHigherLevelAttempt checks that the
// instrumentation point in spliceHigherLevels actually fires once per level
// above 0 that a sufficiently tall node reaches, and never for level 0
// itself (which Insert splices directly, not through spliceHigherLevels).
func TestInsertLevelCASHookObservesEveryHigherLevelAttempt(t *testing.T) {
	q := New[int, int](4, lessInt, WithLevelGenerator[int, int](newSeededLevelGenerator(7)))

	var mu sync.Mutex
	var levelsSeen []int
	levelsByNode := make(map[any][]int)

	insertLevelCASHook = func(level int, pred any, expectedNext any, newNode any) {
		mu.Lock()
		levelsSeen = append(levelsSeen, level)
		levelsByNode[newNode] = append(levelsByNode[newNode], level)
		mu.Unlock()
	}
	defer func() { insertLevelCASHook = nil }()

	for i := 0; i < 100; i++ {
		q.Insert(i, i)
	}

	for _, lvl := range levelsSeen {
		assert.GreaterOrEqual(t, lvl, 1, "spliceHigherLevels must never be invoked for level 0")
	}

	// Single-threaded ascending inserts never lose a CAS, so each node's
	// hook calls are exactly levels 1..height-1, once each.
	for cur := q.nextAt(q.head, 0); cur != q.tail; cur = q.nextAt(cur, 0) {
		var want []int
		for lvl := 1; lvl < len(cur.next); lvl++ {
			want = append(want, lvl)
		}
		assert.Equal(t, want, levelsByNode[cur], "hook levels for key %d", cur.key)
	}
}

// TestRestructureHookFiresTopDown checks that restructure visits levels in
// strictly descending order on each call.
func TestRestructureHookFiresTopDown(t *testing.T) {
	q := New[int, int](1, lessInt)

	var mu sync.Mutex
	var levelsSeen []int
	restructureHook = func(level int) {
		mu.Lock()
		levelsSeen = append(levelsSeen, level)
		mu.Unlock()
	}
	defer func() { restructureHook = nil }()

	for i := 0; i < 50; i++ {
		q.Insert(i, i)
	}
	for i := 0; i < 50; i++ {
		q.DeleteMin()
	}

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(levelsSeen); i++ {
		if levelsSeen[i-1] < levelsSeen[i] {
			// A fresh restructure() call always restarts at NumLevels-1, so
			// a lower level followed by a higher one is fine — it just
			// means a new call began. What must never happen is the same
			// call's sequence increasing.
			assert.Equal(t, 1, levelsSeen[i-1], "a restructure() call ended before reaching level 1")
			assert.Equal(t, NumLevels-1, levelsSeen[i], "a restructure() call did not start at the top level")
			continue
		}
		assert.Less(t, levelsSeen[i], levelsSeen[i-1], "levels within one restructure() call must strictly descend")
	}
	assert.NotEmpty(t, levelsSeen, "expected at least one restructure() call to have run")
}
