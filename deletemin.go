package pqueue

// DeleteMin removes and returns the node holding the smallest live key. ok
// is false when the queue currently has no live key. The shape follows a
// mark-then-help-unlink protocol, batched: every node visited scanning from
// head is a real candidate, marking a node's own next[0] is what deletes
// it, and only every maxOffset calls does a winning deleter attempt to
// swing head forward and reclaim the nodes it swung past.
func (q *PQueue[K, V]) DeleteMin() (key K, value V, ok bool) {
	obsHeadNext, obsHeadMarked := q.head.next[0].load()

	x := obsHeadNext
	if x == nil {
		x = q.tail
	}

	offset := 0
	var newhead *node[K, V]

	for {
		if x == q.tail {
			var zk K
			var zv V
			return zk, zv, false
		}
		offset++

		if newhead == nil && x.inserting.Load() {
			newhead = x
		}

		next, marked := x.next[0].load()
		if marked {
			// x was already deleted by a concurrent DeleteMin; it still
			// counts towards offset (we did touch it) but we don't get to
			// claim it. Keep scanning.
			x = next
			if x == nil {
				x = q.tail
			}
			continue
		}

		if deleteMinMarkHook != nil {
			deleteMinMarkHook(x)
		}
		prevNext, wasMarked := x.next[0].fetchOrMark()
		if wasMarked {
			// Lost the race to mark x: someone else deleted it between our
			// load and our fetch-or. Move on without claiming a result.
			q.metrics.IncDeleteMinRetry()
			x = prevNext
			if x == nil {
				x = q.tail
			}
			continue
		}

		key, value = x.key, *x.val.Load()
		ok = true
		q.metrics.AddLen(-1)
		break
	}

	if offset <= q.maxOffset {
		return key, value, ok
	}

	curHeadNext, curHeadMarked := q.head.next[0].load()
	if curHeadNext != obsHeadNext || curHeadMarked != obsHeadMarked {
		// Another thread already advanced the head past our observation.
		return key, value, ok
	}

	if newhead == nil {
		newhead = x
	}

	if q.head.next[0].casTagged(obsHeadNext, obsHeadMarked, newhead, true) {
		q.metrics.IncRestructureAdvance()
		q.restructure()
		q.retireRange(obsHeadNext, newhead)
	}

	return key, value, ok
}

// retireRange hands every node from from (inclusive) up to to
// (exclusive) to the reclaimer, following unmarked next[0] pointers. These
// are exactly the nodes a successful head swing just unlinked from level 0.
func (q *PQueue[K, V]) retireRange(from, to *node[K, V]) {
	cur := from
	for cur != nil && cur != to && cur != q.tail {
		next := cur.next[0].loadNode()
		q.reclaimer.Retire(cur)
		cur = next
	}
}
