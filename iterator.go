// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// Iterator walks the subtree under a prefix breadth-first, yielding every
// node that carries a value. Nothing is read from the store until the first
// call to Next. There is no ordering among siblings.
type Iterator[I comparable, K comparable, V any] struct {
	store  Store[I, K, V]
	prefix []K
	queue  []queueEntry[I, K]
	seeded bool
}

// queueEntry pairs a node identity with the full sequence leading to it.
type queueEntry[I comparable, K comparable] struct {
	seq []K
	id  I
}

// Reset rewinds the iterator to the start of the walk.
func (i *Iterator[I, K, V]) Reset() {
	i.queue = nil
	i.seeded = false
}

func (i *Iterator[I, K, V]) seed() {
	i.seeded = true
	if len(i.prefix) == 0 {
		rk, ok := i.store.(RootKeyer[K])
		if !ok {
			return
		}
		var root I
		for _, k := range rk.RootKeys() {
			if id, ok := i.store.Relation(root, k); ok {
				i.queue = append(i.queue, queueEntry[I, K]{seq: []K{k}, id: id})
			}
		}
		return
	}
	n, ok := resolve(i.store, i.prefix)
	if !ok {
		return
	}
	seq := make([]K, len(i.prefix))
	copy(seq, i.prefix)
	i.queue = append(i.queue, queueEntry[I, K]{seq: seq, id: n.id})
}

// Next returns the next valued sequence and its value. The returned slice is
// owned by the caller.
func (i *Iterator[I, K, V]) Next() ([]K, V, bool) {
	var zero V

	if !i.seeded {
		i.seed()
	}

	for len(i.queue) > 0 {
		cur := i.queue[0]
		i.queue[0] = queueEntry[I, K]{}
		i.queue = i.queue[1:]

		n, ok := i.store.Node(cur.id)
		if !ok {
			continue
		}
		// Children are queued before cur.seq is handed out.
		for _, k := range n.children {
			childID, ok := i.store.Relation(cur.id, k)
			if !ok {
				continue
			}
			i.queue = append(i.queue, queueEntry[I, K]{seq: extend(cur.seq, k), id: childID})
		}
		if v, ok := n.Value(); ok {
			return cur.seq, v, true
		}
	}
	return nil, zero, false
}
