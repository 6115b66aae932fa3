package pqueue

// restructure advances head.next[i] for every level above 0 past runs of
// logically-deleted nodes, amortizing the pointer surgery batched deletions
// leave behind. Level 0 is swung by DeleteMin itself; restructure only ever
// touches levels 1..NumLevels-1. The walk-past-marked-nodes pattern
// generalizes from a single list walk to a per-level head-pointer CAS.
//
// Go's atomic package gives every load/CAS sequential consistency, which is
// strictly stronger than plain acquire/release — the full fence required
// between reading head.next[i] and pred.next[i] is therefore already
// guaranteed by the language and needs no extra barrier.
func (q *PQueue[K, V]) restructure() {
	for i := NumLevels - 1; i >= 1; i-- {
		if restructureHook != nil {
			restructureHook(i)
		}
		for {
			hNext, hMarked := q.head.next[i].load()
			h := hNext
			if h == nil {
				h = q.tail
			}

			if h == q.tail || !isDeleted(h) {
				break
			}

			pred := q.head
			cur := q.nextAt(pred, i)
			for cur != q.tail && isDeleted(cur) {
				pred = cur
				cur = q.nextAt(pred, i)
			}

			if q.head.next[i].casTagged(hNext, hMarked, cur, false) {
				break
			}
			// CAS lost the race against a concurrent restructure or
			// DeleteMin's head swing; retry this level with a fresh read.
		}
	}
}
