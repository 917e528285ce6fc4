// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// frame is one step of a forward walk: the edge (parent, key) and the node
// it led to. Frames live only for the duration of a call.
type frame[I comparable, K comparable, V any] struct {
	parent I
	key    K
	node   *Node[I, K, V]
}

// frames walks seq and records every step. It returns false if any edge
// along the way is missing.
func (t *Trie[I, K, V]) frames(seq []K) ([]frame[I, K, V], bool) {
	if len(seq) == 0 {
		return nil, false
	}
	stack := make([]frame[I, K, V], 0, len(seq))
	var parent I
	for _, k := range seq {
		id, ok := t.store.Relation(parent, k)
		if !ok {
			return nil, false
		}
		n, ok := t.store.Node(id)
		if !ok {
			return nil, false
		}
		stack = append(stack, frame[I, K, V]{parent: parent, key: k, node: n})
		parent = id
	}
	return stack, true
}

// Remove deletes the value under seq. It is a no-op if seq has no value.
func (t *Trie[I, K, V]) Remove(seq []K) {
	t.TryRemove(seq, nil)
}

// TryRemove deletes the value under seq if one is present and pred accepts
// it; a nil pred accepts anything. Nodes left with neither a value nor
// children are pruned, walking up until a node that is still needed.
func (t *Trie[I, K, V]) TryRemove(seq []K, pred func(V) bool) bool {
	stack, ok := t.frames(seq)
	if !ok {
		return false
	}
	last := stack[len(stack)-1].node
	v, ok := last.Value()
	if !ok || (pred != nil && !pred(v)) {
		return false
	}
	if last.ChildCount() > 0 {
		t.store.SetNode(last.WithoutValue())
		return true
	}
	t.prune(stack)
	return true
}

// DeletePrefix removes every value whose sequence starts with prefix,
// prefix included, along with all the nodes beneath it. Returns the number
// of values removed. An empty prefix removes nothing.
func (t *Trie[I, K, V]) DeletePrefix(prefix []K) int {
	stack, ok := t.frames(prefix)
	if !ok {
		return 0
	}
	top := stack[len(stack)-1].node

	// Breadth-first collection of the subtree edges, deleted in reverse so
	// children go before their parents.
	var below []frame[I, K, V]
	deleted := 0
	if top.HasValue() {
		deleted++
	}
	queue := []*Node[I, K, V]{top}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, k := range n.children {
			id, ok := t.store.Relation(n.id, k)
			if !ok {
				continue
			}
			child, ok := t.store.Node(id)
			if !ok {
				t.store.RemoveRelation(n.id, k)
				continue
			}
			if child.HasValue() {
				deleted++
			}
			below = append(below, frame[I, K, V]{parent: n.id, key: k, node: child})
			queue = append(queue, child)
		}
	}
	for i := len(below) - 1; i >= 0; i-- {
		f := below[i]
		t.store.RemoveRelation(f.parent, f.key)
		t.store.RemoveNode(f.node.id)
	}
	t.prune(stack)
	if t.logger.IsTrace() {
		t.logger.Trace("deleted prefix", "depth", len(prefix), "values", deleted, "nodes", len(below)+1)
	}
	return deleted
}

// prune deletes the terminal frame of stack, which must be unneeded, and
// then every ancestor left with neither a value nor children. The first
// ancestor still carrying something is persisted without the removed key.
func (t *Trie[I, K, V]) prune(stack []frame[I, K, V]) {
	removed := 0
	defer func() {
		if t.logger.IsTrace() {
			t.logger.Trace("pruned nodes", "count", removed, "depth", len(stack))
		}
	}()
	for i := len(stack) - 1; i >= 0; i-- {
		f := stack[i]
		// Edge first, so no relation ever points at a deleted node.
		t.store.RemoveRelation(f.parent, f.key)
		t.store.RemoveNode(f.node.id)
		removed++
		if i == 0 {
			return
		}
		parent := stack[i-1].node.WithoutChild(f.key)
		if !parent.isPrunable() {
			t.store.SetNode(parent)
			return
		}
	}
}
