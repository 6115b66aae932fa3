package pqueue

// Insert adds (key, value), or, if a live node with an equal key already
// exists, overwrites its value in place. A level-0 retry loop either wins a
// duplicate-key overwrite or splices a brand-new node, followed by a
// best-effort splice at each higher level the new node's random height
// reaches.
func (q *PQueue[K, V]) Insert(key K, value V) {
	level := q.levelGen.RandomLevel()
	if level < 1 {
		level = 1
	}
	if level > NumLevels {
		level = NumLevels
	}
	n := newNode[K, V](key, value, level)

	var preds, succs [NumLevels]*node[K, V]
	var del *node[K, V]

	for {
		preds, succs, del = q.locatePreds(key)
		pred0, succ0 := preds[0], succs[0]

		if succ0 != q.tail && q.keyEqual(succ0.key, key) {
			// Duplicate-key policy: only trust this as "the" live occupant
			// if pred0's edge to it is still exactly what we just observed.
			pred0Next, pred0Marked := pred0.next[0].load()
			if !pred0Marked && pred0Next == succ0 {
				valCopy := value
				succ0.val.Store(&valCopy)
				return
			}
			q.metrics.IncInsertCASRetry()
			continue
		}

		n.next[0].store(succ0, false)
		if pred0.next[0].casTagged(succ0, false, n, false) {
			q.metrics.IncInsertCASSuccess()
			q.metrics.AddLen(1)
			break
		}
		q.metrics.IncInsertCASRetry()
	}

	q.spliceHigherLevels(key, n, level, preds, succs, del)
	n.inserting.Store(false)
}

// spliceHigherLevels attempts the best-effort splice at levels 1..level-1.
// A failed CAS re-runs the locator and resumes at the same level; any sign
// that n (or the successor we were about to link to) has already been
// deleted stops the climb early rather than linking a dead node in.
func (q *PQueue[K, V]) spliceHigherLevels(key K, n *node[K, V], level int, preds, succs [NumLevels]*node[K, V], del *node[K, V]) {
	i := 1
	for i < level {
		if isDeleted(n) {
			return
		}
		succI := succs[i]
		if succI != q.tail && isDeleted(succI) {
			return
		}
		if del != nil && del == succI {
			return
		}

		n.next[i].store(succI, false)
		if insertLevelCASHook != nil {
			insertLevelCASHook(i, preds[i], succI, n)
		}
		if preds[i].next[i].casTagged(succI, false, n, false) {
			i++
			continue
		}

		q.metrics.IncInsertCASRetry()
		newPreds, newSuccs, newDel := q.locatePreds(key)
		if newSuccs[0] != n {
			return
		}
		preds, succs, del = newPreds, newSuccs, newDel
	}
}
