package pqueue

import "sync"

// Reclaimer is the safe-reclamation collaborator a production deployment
// plugs in to bound memory reuse under concurrent readers. Retire is called
// at most once per node, for every node a successful head
// swing has just unlinked from level 0 — by that point no live traversal
// can still be holding a reference acquired through head's reachable set,
// except one that started before the swing and is still walking a stale
// snapshot; a scheme without a tracing GC would need hazard pointers or an
// epoch to bound how long such stragglers may hold on.
type Reclaimer[K any, V any] interface {
	Retire(n *node[K, V])
}

// GCReclaimer is the default Reclaimer. Go's runtime already guarantees no
// thread can observe a use-after-free for any value still reachable from
// some goroutine's stack or registers, so once retireRange drops the last
// reference a retired node was reachable through, the collector reclaims it
// on its own — there is nothing left for Retire to do. This is the
// idiomatic Go substitute for a hazard-pointer or epoch-based reclamation
// scheme, in the same spirit as relying on sync.Pool reuse rather than a
// C-style allocator.
type GCReclaimer[K any, V any] struct{}

func (GCReclaimer[K, V]) Retire(*node[K, V]) {}

// CountingReclaimer is a Reclaimer useful in tests and diagnostics: it
// counts retirements and can assert none is ever repeated for the same
// node, exercising the "at most once per node" half of the contract that
// GCReclaimer has no way to violate observably on its own.
type CountingReclaimer[K any, V any] struct {
	mu      sync.Mutex
	seen    map[*node[K, V]]struct{}
	retired int64
}

// NewCountingReclaimer returns a CountingReclaimer ready for use.
func NewCountingReclaimer[K any, V any]() *CountingReclaimer[K, V] {
	return &CountingReclaimer[K, V]{seen: make(map[*node[K, V]]struct{})}
}

func (c *CountingReclaimer[K, V]) Retire(n *node[K, V]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.seen[n]; dup {
		panic("pqueue: node retired twice")
	}
	c.seen[n] = struct{}{}
	c.retired++
}

// Retired reports how many distinct nodes have been retired so far.
func (c *CountingReclaimer[K, V]) Retired() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retired
}
